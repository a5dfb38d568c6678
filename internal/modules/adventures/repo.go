package adventures

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/slug"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Adventure, int64, error) {
	base := r.db.WithContext(ctx).Model(&Adventure{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		base = base.Where("(title LIKE ? OR location LIKE ?)", like, like)
	}
	if s := p.Filters["status"]; s != "" {
		base = base.Where("status = ?", s)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Adventure
	err := base.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Adventure, error) {
	var a Adventure
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("AddOns", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&a, "id = ?", id).Error
	return a, err
}

type CreateInput struct {
	Title       string
	Description string
	Location    string
	PriceCents  int64
	Currency    string
	Capacity    int
	StartsAt    *time.Time
	Status      string
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Adventure, error) {
	a := Adventure{
		ID:          uuid.NewString(),
		Slug:        slug.FromTitle(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		PriceCents:  in.PriceCents,
		Currency:    in.Currency,
		Capacity:    in.Capacity,
		StartsAt:    in.StartsAt,
		Status:      in.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return Adventure{}, err
	}
	return a, nil
}

func (r *Repo) Update(ctx context.Context, id string, in CreateInput) error {
	return r.db.WithContext(ctx).Model(&Adventure{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"slug":        slug.FromTitle(in.Title),
			"title":       in.Title,
			"description": in.Description,
			"location":    in.Location,
			"price_cents": in.PriceCents,
			"currency":    in.Currency,
			"capacity":    in.Capacity,
			"starts_at":   in.StartsAt,
			"status":      in.Status,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("adventure_id = ?", id).Delete(&Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("adventure_id = ?", id).Delete(&AddOn{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Adventure{}, "id = ?", id).Error
	})
}

func (r *Repo) AddImage(ctx context.Context, adventureID, storageKey, url string, position int) (Image, error) {
	im := Image{
		ID:          uuid.NewString(),
		AdventureID: adventureID,
		StorageKey:  storageKey,
		URL:         url,
		Position:    position,
		CreatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) GetImage(ctx context.Context, adventureID, imageID string) (Image, error) {
	var im Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND adventure_id = ?", imageID, adventureID).Error
	return im, err
}

func (r *Repo) DeleteImage(ctx context.Context, adventureID, imageID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND adventure_id = ?", imageID, adventureID).
		Delete(&Image{}).Error
}

func (r *Repo) AddAddOn(ctx context.Context, adventureID, name string, priceCents int64) (AddOn, error) {
	ao := AddOn{
		ID:          uuid.NewString(),
		AdventureID: adventureID,
		Name:        name,
		PriceCents:  priceCents,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&ao).Error; err != nil {
		return AddOn{}, err
	}
	return ao, nil
}

func (r *Repo) UpdateAddOn(ctx context.Context, adventureID, addOnID, name string, priceCents int64) error {
	return r.db.WithContext(ctx).Model(&AddOn{}).
		Where("id = ? AND adventure_id = ?", addOnID, adventureID).
		Updates(map[string]any{
			"name":        name,
			"price_cents": priceCents,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repo) DeleteAddOn(ctx context.Context, adventureID, addOnID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND adventure_id = ?", addOnID, adventureID).
		Delete(&AddOn{}).Error
}

// AddOnsByIDs loads the named add-ons, all of which must belong to the
// adventure; the bool reports whether every id was found.
func (r *Repo) AddOnsByIDs(ctx context.Context, adventureID string, ids []string) ([]AddOn, bool, error) {
	if len(ids) == 0 {
		return nil, true, nil
	}
	var items []AddOn
	err := r.db.WithContext(ctx).
		Where("adventure_id = ? AND id IN ?", adventureID, ids).
		Find(&items).Error
	if err != nil {
		return nil, false, err
	}
	return items, len(items) == len(ids), nil
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}

package consultations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Package, int64, error) {
	base := r.db.WithContext(ctx).Model(&Package{})

	if p.Search != "" {
		base = base.Where("title LIKE ?", "%"+p.Search+"%")
	}
	if s := p.Filters["status"]; s != "" {
		base = base.Where("status = ?", s)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Package
	err := base.
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Package, error) {
	var p Package
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

type CreateInput struct {
	Title       string
	Description string
	Sessions    int
	PriceCents  int64
	Currency    string
	Status      string
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Package, error) {
	p := Package{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Sessions:    in.Sessions,
		PriceCents:  in.PriceCents,
		Currency:    in.Currency,
		Status:      in.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Package{}, err
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, id string, in CreateInput) error {
	return r.db.WithContext(ctx).Model(&Package{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"sessions":    in.Sessions,
			"price_cents": in.PriceCents,
			"currency":    in.Currency,
			"status":      in.Status,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Package{}, "id = ?", id).Error
}

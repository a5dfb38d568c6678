package customers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Customer, int64, error) {
	base := r.db.WithContext(ctx).Model(&Customer{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		base = base.Where("(first_name LIKE ? OR last_name LIKE ? OR email LIKE ?)", like, like, like)
	}
	if g := p.Filters["gender"]; g != "" {
		base = base.Where("gender = ?", g)
	}
	if s := p.Filters["suspended"]; s != "" {
		base = base.Where("suspended = ?", s == "true")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Customer
	err := base.
		Preload("Level").
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Customer, error) {
	var cu Customer
	err := r.db.WithContext(ctx).Preload("Level").First(&cu, "id = ?", id).Error
	return cu, err
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (Customer, error) {
	var cu Customer
	err := r.db.WithContext(ctx).First(&cu, "email = ?", email).Error
	return cu, err
}

func (r *Repo) SetSuspended(ctx context.Context, id string, suspended bool) error {
	return r.db.WithContext(ctx).Model(&Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"suspended":  suspended,
			"updated_at": time.Now(),
		}).Error
}

// All returns every customer in creation order, for CSV export.
func (r *Repo) All(ctx context.Context) ([]Customer, error) {
	var items []Customer
	err := r.db.WithContext(ctx).
		Preload("Level").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

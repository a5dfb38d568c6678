package levels

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Level, int64, error) {
	base := r.db.WithContext(ctx).Model(&Level{})
	if p.Search != "" {
		base = base.Where("name LIKE ?", "%"+p.Search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Level
	err := base.
		Order("min_points ASC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Level, error) {
	var l Level
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return l, err
}

func (r *Repo) Create(ctx context.Context, name string, minPoints int, perks string) (Level, error) {
	l := Level{
		ID:        uuid.NewString(),
		Name:      name,
		MinPoints: minPoints,
		Perks:     perks,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&l).Error; err != nil {
		return Level{}, err
	}
	return l, nil
}

func (r *Repo) Update(ctx context.Context, id, name string, minPoints int, perks string) error {
	return r.db.WithContext(ctx).Model(&Level{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"min_points": minPoints,
			"perks":      perks,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Level{}, "id = ?", id).Error
}

// ForPoints returns the highest tier whose threshold the point balance meets.
func (r *Repo) ForPoints(ctx context.Context, points int) (*Level, error) {
	var l Level
	err := r.db.WithContext(ctx).
		Where("min_points <= ?", points).
		Order("min_points DESC").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

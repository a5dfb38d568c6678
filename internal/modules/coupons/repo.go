package coupons

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Coupon, int64, error) {
	base := r.db.WithContext(ctx).Model(&Coupon{})

	if p.Search != "" {
		base = base.Where("code LIKE ?", "%"+p.Search+"%")
	}
	if s := p.Filters["status"]; s != "" {
		base = base.Where("status = ?", s)
	}
	if sc := p.Filters["scope"]; sc != "" {
		base = base.Where("scope = ?", sc)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Coupon
	err := base.
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

// ListForCustomer returns a customer's coupons, active first.
func (r *Repo) ListForCustomer(ctx context.Context, customerID string) ([]Coupon, error) {
	var items []Coupon
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("status = 'active' DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id string) (Coupon, error) {
	var c Coupon
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, err
}

func (r *Repo) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var c Coupon
	err := r.db.WithContext(ctx).First(&c, "code = ?", code).Error
	return c, err
}

func (r *Repo) Create(ctx context.Context, c Coupon) (Coupon, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Coupon{}, err
	}
	return c, nil
}

// UpdateStatus transitions a coupon only out of the expected status; the
// WHERE guard keeps concurrent redeems/revokes from double-applying.
func (r *Repo) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo) All(ctx context.Context) ([]Coupon, error) {
	var items []Coupon
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}

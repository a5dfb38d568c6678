package admins

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

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Admin, int64, error) {
	base := r.db.WithContext(ctx).Model(&Admin{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		base = base.Where("(name LIKE ? OR email LIKE ?)", like, like)
	}
	if s := p.Filters["status"]; s != "" {
		base = base.Where("status = ?", s)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Admin
	err := base.
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Admin, error) {
	var a Admin
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return a, err
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error
	return a, err
}

func (r *Repo) Create(ctx context.Context, name, email, passwordHash string, invitedBy *string) (Admin, error) {
	a := Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       StatusInvited,
		InvitedBy:    invitedBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return Admin{}, err
	}
	return a, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id, status string, revokedAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&Admin{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"revoked_at": revokedAt,
			"updated_at": time.Now(),
		}).Error
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}

package bookings

import (
	"context"

	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/pagelist"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, p pagelist.Params) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{})

	if p.Search != "" {
		like := "%" + p.Search + "%"
		base = base.Where("(id LIKE ? OR customer_id LIKE ? OR ref_title LIKE ?)", like, like, like)
	}
	if s := p.Filters["status"]; s != "" {
		base = base.Where("status = ?", s)
	}
	if k := p.Filters["kind"]; k != "" {
		base = base.Where("kind = ?", k)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Booking
	err := base.
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Get(ctx context.Context, id string) (Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return b, err
}

func (r *Repo) GetWithEvents(ctx context.Context, id string) (Booking, []BookingEvent, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return Booking{}, nil, err
	}
	var ev []BookingEvent
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ev, "booking_id = ?", id).Error; err != nil {
		return Booking{}, nil, err
	}
	return b, ev, nil
}

func (r *Repo) ListForCustomer(ctx context.Context, customerID string, p pagelist.Params) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{}).Where("customer_id = ?", customerID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Booking
	err := base.
		Order("created_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *Repo) ListInvoices(ctx context.Context, p pagelist.Params) ([]Invoice, int64, error) {
	base := r.db.WithContext(ctx).Model(&Invoice{})
	if p.Search != "" {
		like := "%" + p.Search + "%"
		base = base.Where("(number LIKE ? OR booking_id LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p.Page = pagelist.ClampPage(p.Page, p.PageSize, total)

	var items []Invoice
	err := base.
		Order("issued_at DESC").
		Scopes(pagelist.Scope(p)).
		Find(&items).Error
	return items, total, err
}

func (r *Repo) All(ctx context.Context) ([]Booking, error) {
	var items []Booking
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *Repo) AllInvoices(ctx context.Context) ([]Invoice, error) {
	var items []Invoice
	err := r.db.WithContext(ctx).Order("issued_at ASC").Find(&items).Error
	return items, err
}

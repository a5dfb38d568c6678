package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrNotActionable     = errors.New("booking not actionable")
)

const (
	ActionAccept   = "accept"
	ActionReject   = "reject"
	ActionCancel   = "cancel"
	ActionMarkPaid = "mark-paid"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService { return &AdminService{db: db} }

type TransitionInput struct {
	BookingID string
	ActorID   string // admin user id
	Action    string // accept|reject|cancel|mark-paid
	Note      string
}

// Transition moves a booking through the admin state machine under a row
// lock and records the event. Marking paid also writes the invoice.
func (s *AdminService) Transition(ctx context.Context, in TransitionInput) error {
	if in.BookingID == "" || in.ActorID == "" || in.Action == "" {
		return ErrNotActionable
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b Booking

		// row lock
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", in.BookingID).Error; err != nil {
			return err
		}

		from := b.Status
		to, err := nextStatus(from, in.Action)
		if err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]any{
			"status":     to,
			"updated_at": now,
		}
		if to == StatusPaid {
			updates["paid_at"] = now
			updates["paid_cents"] = b.TotalCents
		}

		if err := tx.WithContext(ctx).
			Model(&Booking{}).
			Where("id = ? AND status = ?", b.ID, from). // optimistic guard
			Updates(updates).Error; err != nil {
			return err
		}

		if to == StatusPaid {
			if err := ensureInvoice(ctx, tx, b, now); err != nil {
				return err
			}
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := BookingEvent{
			ID:         uuid.NewString(),
			BookingID:  b.ID,
			ActorID:    in.ActorID,
			Action:     in.Action,
			FromStatus: from,
			ToStatus:   to,
			Note:       notePtr,
			CreatedAt:  now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

// MarkPaidFromProvider finalizes a booking when the payment provider
// confirms the charge. Already-paid bookings are a no-op so webhook
// redelivery stays idempotent.
func (s *AdminService) MarkPaidFromProvider(ctx context.Context, bookingID string, amountCents int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b Booking
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookingID).Error; err != nil {
			return err
		}

		if b.Status == StatusPaid {
			return nil
		}
		if b.Status != StatusPending && b.Status != StatusAccepted {
			return ErrInvalidTransition
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&Booking{}).
			Where("id = ? AND status = ?", b.ID, b.Status).
			Updates(map[string]any{
				"status":     StatusPaid,
				"paid_cents": amountCents,
				"paid_at":    now,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		if err := ensureInvoice(ctx, tx, b, now); err != nil {
			return err
		}

		ev := BookingEvent{
			ID:         uuid.NewString(),
			BookingID:  b.ID,
			ActorID:    "provider",
			Action:     "payment-confirmed",
			FromStatus: b.Status,
			ToStatus:   StatusPaid,
			CreatedAt:  now,
		}
		return tx.WithContext(ctx).Create(&ev).Error
	})
}

func nextStatus(from, action string) (string, error) {
	switch action {
	case ActionAccept:
		if from == StatusPending {
			return StatusAccepted, nil
		}
		return "", ErrInvalidTransition
	case ActionReject:
		if from == StatusPending {
			return StatusRejected, nil
		}
		return "", ErrInvalidTransition
	case ActionCancel:
		if from == StatusPending || from == StatusAccepted {
			return StatusCancelled, nil
		}
		return "", ErrInvalidTransition
	case ActionMarkPaid:
		if from == StatusAccepted {
			return StatusPaid, nil
		}
		return "", ErrInvalidTransition
	default:
		return "", ErrInvalidTransition
	}
}

func ensureInvoice(ctx context.Context, tx *gorm.DB, b Booking, now time.Time) error {
	var cnt int64
	if err := tx.WithContext(ctx).
		Model(&Invoice{}).
		Where("booking_id = ?", b.ID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	inv := Invoice{
		ID:          uuid.NewString(),
		BookingID:   b.ID,
		Number:      invoiceNumber(now),
		AmountCents: b.TotalCents,
		Currency:    b.Currency,
		IssuedAt:    now,
	}
	return tx.WithContext(ctx).Create(&inv).Error
}

func invoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

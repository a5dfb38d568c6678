package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/mailer"
)

const (
	StatusQueued  = "queued"
	StatusSending = "sending"
	StatusSent    = "sent"
	StatusFailed  = "failed"

	maxAttempts = 5
)

// Outbox rows are written in the same transaction-ish flow as the action
// that triggers them; a background worker drains the queue so a slow SMTP
// server never blocks a request.
type Outbox struct {
	ID       string `gorm:"type:char(36);primaryKey"`
	ToAddr   string `gorm:"type:varchar(255);not null"`
	Subject  string `gorm:"type:varchar(255);not null"`
	TextBody string `gorm:"type:text"`
	HTMLBody string `gorm:"type:text"`

	Status    string  `gorm:"type:varchar(16);not null;default:queued;index"`
	Attempts  int     `gorm:"not null;default:0"`
	LastError *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time  `gorm:"type:datetime(3);not null"`
	SentAt    *time.Time `gorm:"type:datetime(3)"`
}

func (Outbox) TableName() string { return "email_outbox" }

type OutboxService struct {
	db     *gorm.DB
	mailer mailer.Service
	from   string
	logger *slog.Logger
}

func NewOutboxService(db *gorm.DB, m mailer.Service, from string, logger *slog.Logger) *OutboxService {
	return &OutboxService{db: db, mailer: m, from: from, logger: logger}
}

func (s *OutboxService) Enqueue(ctx context.Context, to, subject, textBody, htmlBody string) error {
	row := Outbox{
		ID:        uuid.NewString(),
		ToAddr:    to,
		Subject:   subject,
		TextBody:  textBody,
		HTMLBody:  htmlBody,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// Run drains the queue until ctx is cancelled. Intended to be started once
// from main as a goroutine.
func (s *OutboxService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.DrainOnce(ctx, 20); err != nil {
				s.logger.ErrorContext(ctx, "email outbox drain failed", "err", err)
			}
		}
	}
}

// DrainOnce claims up to limit queued rows and tries to send each one.
// Rows that keep failing are parked as failed after maxAttempts.
func (s *OutboxService) DrainOnce(ctx context.Context, limit int) error {
	var batch []Outbox

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", StatusQueued).
			Order("created_at asc").
			Limit(limit).
			Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]string, 0, len(batch))
		for _, row := range batch {
			ids = append(ids, row.ID)
		}
		// claim: flip to sending so another worker instance can't re-claim
		// the rows once the locks release, and bump attempts up front so a
		// crash mid-send still counts
		return tx.WithContext(ctx).Model(&Outbox{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":   StatusSending,
				"attempts": gorm.Expr("attempts + 1"),
			}).Error
	})
	if err != nil || len(batch) == 0 {
		return err
	}

	for _, row := range batch {
		s.deliver(ctx, row)
	}
	return nil
}

func (s *OutboxService) deliver(ctx context.Context, row Outbox) {
	sendErr := s.mailer.Send(ctx, mailer.Email{
		From:     s.from,
		To:       []string{row.ToAddr},
		Subject:  row.Subject,
		TextBody: row.TextBody,
		HTMLBody: row.HTMLBody,
	})

	now := time.Now()
	if sendErr == nil {
		if err := s.db.WithContext(ctx).Model(&Outbox{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{"status": StatusSent, "sent_at": &now, "last_error": nil}).Error; err != nil {
			s.logger.ErrorContext(ctx, "failed to mark outbox row sent", "id", row.ID, "err", err)
		}
		return
	}

	status := StatusQueued
	if row.Attempts+1 >= maxAttempts {
		status = StatusFailed
	}
	msg := sendErr.Error()
	if len(msg) > 250 {
		msg = msg[:250]
	}
	if err := s.db.WithContext(ctx).Model(&Outbox{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{"status": status, "last_error": msg}).Error; err != nil {
		s.logger.ErrorContext(ctx, "failed to mark outbox row failed", "id", row.ID, "err", err)
	}
	s.logger.WarnContext(ctx, "email delivery failed", "id", row.ID, "to", row.ToAddr, "attempts", row.Attempts+1, "err", sendErr)
}

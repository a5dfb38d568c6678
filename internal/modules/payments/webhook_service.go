package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
)

// WebhookEvent is the normalized shape of a gateway callback.
type WebhookEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	SessionRef string `json:"session_ref"`
}

type WebhookService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{db: db, logger: slog.Default()}
}

func (s *WebhookService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handle persists the raw event, dedupes on unique(provider,event_id) and
// applies it. Returning nil for a duplicate lets the handler answer 200 so
// the gateway stops redelivering.
func (s *WebhookService) Handle(ctx context.Context, providerName string, ev WebhookEvent, rawBody []byte) error {
	payload, _ := json.RawMessage(rawBody).MarshalJSON()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		pe := ProviderEvent{
			ID:          uuid.NewString(),
			Provider:    providerName,
			EventID:     ev.EventID,
			EventType:   ev.Type,
			PayloadJSON: datatypes.JSON(payload),
			ReceivedAt:  now,
		}

		if err := tx.WithContext(ctx).Create(&pe).Error; err != nil {
			if isDup(err) {
				s.logger.InfoContext(ctx, "webhook event deduplicated", "provider", providerName, "event_id", ev.EventID, "type", ev.Type)
				return nil
			}
			s.logger.ErrorContext(ctx, "failed to persist provider event", "provider", providerName, "event_id", ev.EventID, "err", err)
			return err
		}

		var applyErr error
		switch ev.Type {
		case "session.paid":
			applyErr = s.applySessionPaid(ctx, tx, providerName, ev)
		case "session.failed":
			applyErr = s.applySessionFailed(ctx, tx, providerName, ev)
		default:
			applyErr = errors.New("unknown webhook event type")
		}

		outcome := map[string]any{"processed_at": &now, "process_error": nil}
		if applyErr != nil {
			outcome = map[string]any{"process_error": truncate(applyErr.Error(), 250)}
		}
		if err := tx.WithContext(ctx).Model(&ProviderEvent{}).
			Where("id = ?", pe.ID).
			Updates(outcome).Error; err != nil {
			return err
		}

		if applyErr != nil {
			s.logger.ErrorContext(ctx, "webhook event apply failed", "provider", providerName, "event_id", ev.EventID, "type", ev.Type, "err", applyErr)
			// propagate so the gateway retries
			return applyErr
		}
		s.logger.InfoContext(ctx, "webhook event processed", "provider", providerName, "event_id", ev.EventID, "type", ev.Type)
		return nil
	})
}

// lockBySessionRef loads the payment row the session belongs to under a row
// lock. The payment row, not the redis session record, is the source of truth
// for webhook application.
func lockBySessionRef(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) (Payment, error) {
	var p Payment
	if ev.SessionRef == "" {
		return p, errors.New("missing session_ref")
	}
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "provider = ? AND provider_ref = ?", provider, ev.SessionRef).Error
	return p, err
}

func markPayment(ctx context.Context, tx *gorm.DB, id, status string, errMsg any) error {
	return tx.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"error_message": errMsg,
			"updated_at":    time.Now(),
		}).Error
}

func (s *WebhookService) applySessionPaid(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	p, err := lockBySessionRef(ctx, tx, provider, ev)
	if err != nil {
		return err
	}

	// idempotent
	if p.Status == StatusSucceeded {
		return nil
	}
	if err := markPayment(ctx, tx, p.ID, StatusSucceeded, nil); err != nil {
		return err
	}

	return bookings.NewAdminService(tx).MarkPaidFromProvider(ctx, p.BookingID, p.AmountCents)
}

func (s *WebhookService) applySessionFailed(ctx context.Context, tx *gorm.DB, provider string, ev WebhookEvent) error {
	p, err := lockBySessionRef(ctx, tx, provider, ev)
	if err != nil {
		return err
	}
	if p.Status == StatusFailed {
		return nil
	}
	return markPayment(ctx, tx, p.ID, StatusFailed, "provider webhook: failed")
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/adventures"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/bookings"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/consultations"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/coupons"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/customers"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/email"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/payments"
	"github.com/FathomMedia/tja-portal-1229-sub000/internal/shared/money"
)

// Service owns the customer checkout flow: price the selection, create a
// pending booking, open a payment session and hand the customer the
// redirect URL. The webhook finalizes the booking once the gateway calls
// back.
type Service struct {
	db            *gorm.DB
	adventures    *adventures.Repo
	consultations *consultations.Repo
	coupons       *coupons.Service
	customers     *customers.Repo
	provider      payments.Provider
	sessions      *payments.SessionStore
	outbox        *email.OutboxService
	baseURL       string
	logger        *slog.Logger
}

func NewService(
	db *gorm.DB,
	adv *adventures.Repo,
	cons *consultations.Repo,
	cpns *coupons.Service,
	cust *customers.Repo,
	provider payments.Provider,
	sessions *payments.SessionStore,
	outbox *email.OutboxService,
	baseURL string,
) *Service {
	return &Service{
		db:            db,
		adventures:    adv,
		consultations: cons,
		coupons:       cpns,
		customers:     cust,
		provider:      provider,
		sessions:      sessions,
		outbox:        outbox,
		baseURL:       baseURL,
		logger:        slog.Default(),
	}
}

func (s *Service) SetLogger(logger *slog.Logger) { s.logger = logger }

type BookAdventureInput struct {
	AdventureID string
	AddOnIDs    []string
	CouponCode  string
	Partial     bool
}

type BookConsultationInput struct {
	PackageID  string
	CouponCode string
	Partial    bool
}

type BookResult struct {
	Booking bookings.Booking
	Quote   Quote
	Session payments.Session
}

// PreviewAdventure prices a selection without creating anything. The same
// quote logic runs again at booking time, so preview and charge agree.
func (s *Service) PreviewAdventure(ctx context.Context, customerID string, in BookAdventureInput) (Quote, error) {
	adv, addOns, cpn, err := s.resolveAdventure(ctx, customerID, in)
	if err != nil {
		return Quote{}, err
	}
	return BuildQuote(adv.PriceCents, addOnPrices(addOns), cpn, in.Partial), nil
}

func (s *Service) PreviewConsultation(ctx context.Context, customerID string, in BookConsultationInput) (Quote, error) {
	pkg, cpn, err := s.resolveConsultation(ctx, customerID, in)
	if err != nil {
		return Quote{}, err
	}
	return BuildQuote(pkg.PriceCents, nil, cpn, in.Partial), nil
}

func (s *Service) BookAdventure(ctx context.Context, customerID string, in BookAdventureInput) (BookResult, error) {
	adv, addOns, cpn, err := s.resolveAdventure(ctx, customerID, in)
	if err != nil {
		return BookResult{}, err
	}

	quote := BuildQuote(adv.PriceCents, addOnPrices(addOns), cpn, in.Partial)

	addOnsJSON, err := json.Marshal(addOns)
	if err != nil {
		return BookResult{}, err
	}

	b := bookings.Booking{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Kind:          bookings.KindAdventure,
		RefID:         adv.ID,
		RefTitle:      adv.Title,
		Status:        bookings.StatusPending,
		SubtotalCents: quote.SubtotalCents,
		DiscountCents: quote.DiscountCents,
		TotalCents:    quote.TotalCents,
		PayNowCents:   quote.PayNowCents,
		Currency:      adv.Currency,
		AddOnsJSON:    datatypes.JSON(addOnsJSON),
	}
	return s.finalize(ctx, b, quote, cpn, in.Partial)
}

func (s *Service) BookConsultation(ctx context.Context, customerID string, in BookConsultationInput) (BookResult, error) {
	pkg, cpn, err := s.resolveConsultation(ctx, customerID, in)
	if err != nil {
		return BookResult{}, err
	}

	quote := BuildQuote(pkg.PriceCents, nil, cpn, in.Partial)

	b := bookings.Booking{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Kind:          bookings.KindConsultation,
		RefID:         pkg.ID,
		RefTitle:      pkg.Title,
		Status:        bookings.StatusPending,
		SubtotalCents: quote.SubtotalCents,
		DiscountCents: quote.DiscountCents,
		TotalCents:    quote.TotalCents,
		PayNowCents:   quote.PayNowCents,
		Currency:      pkg.Currency,
	}
	return s.finalize(ctx, b, quote, cpn, in.Partial)
}

func (s *Service) resolveAdventure(ctx context.Context, customerID string, in BookAdventureInput) (adventures.Adventure, []adventures.AddOn, *coupons.Coupon, error) {
	adv, err := s.adventures.Get(ctx, in.AdventureID)
	if err != nil {
		return adventures.Adventure{}, nil, nil, err
	}
	if adv.Status != adventures.StatusActive {
		return adventures.Adventure{}, nil, nil, ErrNotBookable
	}

	addOns, allFound, err := s.adventures.AddOnsByIDs(ctx, adv.ID, in.AddOnIDs)
	if err != nil {
		return adventures.Adventure{}, nil, nil, err
	}
	if !allFound {
		return adventures.Adventure{}, nil, nil, ErrUnknownAddOns
	}

	cpn, err := s.resolveCoupon(ctx, in.CouponCode, coupons.ScopeAdventure, customerID)
	if err != nil {
		return adventures.Adventure{}, nil, nil, err
	}
	return adv, addOns, cpn, nil
}

func (s *Service) resolveConsultation(ctx context.Context, customerID string, in BookConsultationInput) (consultations.Package, *coupons.Coupon, error) {
	pkg, err := s.consultations.Get(ctx, in.PackageID)
	if err != nil {
		return consultations.Package{}, nil, err
	}
	if pkg.Status != consultations.StatusActive {
		return consultations.Package{}, nil, ErrNotBookable
	}

	cpn, err := s.resolveCoupon(ctx, in.CouponCode, coupons.ScopeConsultation, customerID)
	if err != nil {
		return consultations.Package{}, nil, err
	}
	return pkg, cpn, nil
}

func (s *Service) resolveCoupon(ctx context.Context, code, scope, customerID string) (*coupons.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	c, err := s.coupons.Resolve(ctx, code, scope, customerID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// finalize creates the pending booking, redeems the coupon, opens the
// payment session and records the initiated payment row the webhook will
// later match on provider_ref. All of it commits or none of it does: a
// provider failure must not leave a booking behind or burn the coupon.
func (s *Service) finalize(ctx context.Context, b bookings.Booking, quote Quote, cpn *coupons.Coupon, partial bool) (BookResult, error) {
	if partial {
		b.PaymentType = bookings.PaymentPartial
	} else {
		b.PaymentType = bookings.PaymentFull
	}
	if cpn != nil {
		b.CouponID = &cpn.ID
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	var sess payments.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bookings.NewRepo(tx).Create(ctx, &b); err != nil {
			return err
		}

		if cpn != nil {
			if err := coupons.NewService(coupons.NewRepo(tx)).MarkRedeemed(ctx, cpn.ID); err != nil {
				return err
			}
		}

		// the session is created before commit so a provider outage rolls
		// the booking and the coupon redemption back
		var err error
		sess, err = s.provider.CreateSession(ctx, payments.CreateSessionRequest{
			BookingID:      b.ID,
			AmountCents:    quote.PayNowCents,
			Currency:       b.Currency,
			IdempotencyKey: b.ID,
			ReturnURL:      s.baseURL + "/checkout/return",
			CancelURL:      s.baseURL + "/checkout/cancel",
		})
		if err != nil {
			return err
		}

		p := payments.Payment{
			ID:             uuid.NewString(),
			BookingID:      b.ID,
			Provider:       s.provider.Name(),
			ProviderRef:    &sess.ID,
			Status:         payments.StatusInitiated,
			AmountCents:    quote.PayNowCents,
			Currency:       b.Currency,
			IdempotencyKey: b.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.WithContext(ctx).Create(&p).Error
	})
	if err != nil {
		return BookResult{}, err
	}

	if err := s.sessions.Put(ctx, payments.SessionRecord{
		SessionID:   sess.ID,
		BookingID:   b.ID,
		CustomerID:  b.CustomerID,
		AmountCents: quote.PayNowCents,
		Currency:    b.Currency,
		CreatedAt:   now,
	}); err != nil {
		// session metadata is advisory; the payment row is the source of truth
		s.logger.WarnContext(ctx, "failed to store checkout session", "session_id", sess.ID, "booking_id", b.ID, "err", err)
	}

	s.sendConfirmation(ctx, b, quote)

	s.logger.InfoContext(ctx, "checkout session opened",
		"booking_id", b.ID, "kind", b.Kind, "pay_now_cents", quote.PayNowCents, "session_id", sess.ID)

	return BookResult{Booking: b, Quote: quote, Session: sess}, nil
}

// sendConfirmation queues the booking-received email. Best effort: the
// booking and payment rows are already committed.
func (s *Service) sendConfirmation(ctx context.Context, b bookings.Booking, quote Quote) {
	cust, err := s.customers.Get(ctx, b.CustomerID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "booking_id", b.ID, "err", err)
		return
	}

	subject := fmt.Sprintf("Booking received: %s", b.RefTitle)
	text := fmt.Sprintf(
		"Hi %s,\r\n\r\nWe received your booking for %s.\r\nTotal: %s %s\r\nDue now: %s %s\r\n\r\nComplete the payment to confirm your spot.\r\n",
		cust.FirstName, b.RefTitle,
		money.Decimal(quote.TotalCents), b.Currency,
		money.Decimal(quote.PayNowCents), b.Currency,
	)
	if err := s.outbox.Enqueue(ctx, cust.Email, subject, text, ""); err != nil {
		s.logger.WarnContext(ctx, "confirmation email enqueue failed", "booking_id", b.ID, "err", err)
	}
}

func addOnPrices(addOns []adventures.AddOn) []int64 {
	out := make([]int64, 0, len(addOns))
	for _, a := range addOns {
		out = append(out, a.PriceCents)
	}
	return out
}

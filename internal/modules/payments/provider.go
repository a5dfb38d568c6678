package payments

import "context"

const (
	StatusInitiated = "initiated"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

type CreateSessionRequest struct {
	BookingID      string
	AmountCents    int64
	Currency       string
	IdempotencyKey string
	ReturnURL      string
	CancelURL      string
}

// Session is the hosted-payment session the customer is redirected to.
type Session struct {
	ID         string `json:"id"`
	PaymentURL string `json:"PaymentURL"`
}

type Provider interface {
	Name() string
	CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error)
}

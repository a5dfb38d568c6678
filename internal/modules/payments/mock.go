package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MockProvider returns a session immediately without any network call.
// Useful for local development; the mockwebhook tool can then simulate
// the paid callback.
type MockProvider struct {
	BaseURL string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) CreateSession(_ context.Context, req CreateSessionRequest) (Session, error) {
	id := "sess_" + uuid.NewString()
	return Session{
		ID:         id,
		PaymentURL: fmt.Sprintf("%s/mock-pay/%s?amount=%d", m.BaseURL, id, req.AmountCents),
	}, nil
}

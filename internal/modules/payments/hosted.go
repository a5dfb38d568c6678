package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HostedProvider talks to the hosted checkout gateway over HTTP. Calls go
// through a circuit breaker so a slow or dead gateway fails fast instead of
// tying up request handlers.
type HostedProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHostedProvider(baseURL, apiKey string) *HostedProvider {
	return &HostedProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "hosted-pay",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (p *HostedProvider) Name() string { return "hosted-pay" }

func (p *HostedProvider) CreateSession(ctx context.Context, req CreateSessionRequest) (Session, error) {
	body, err := json.Marshal(map[string]any{
		"reference":       req.BookingID,
		"amount_cents":    req.AmountCents,
		"currency":        req.Currency,
		"idempotency_key": req.IdempotencyKey,
		"return_url":      req.ReturnURL,
		"cancel_url":      req.CancelURL,
	})
	if err != nil {
		return Session{}, err
	}

	out, err := p.breaker.Execute(func() (any, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/sessions", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

		resp, err := p.client.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(b))
		}

		var sess Session
		if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
			return nil, err
		}
		if sess.ID == "" || sess.PaymentURL == "" {
			return nil, errors.New("gateway response missing session fields")
		}
		return sess, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Session{}, ErrProviderDown
		}
		return Session{}, err
	}
	return out.(Session), nil
}

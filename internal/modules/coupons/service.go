package coupons

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotRevocable = errors.New("coupon is not active")
	ErrNotUsable    = errors.New("coupon is not usable")
	ErrWrongScope   = errors.New("coupon scope does not match")
	ErrWrongOwner   = errors.New("coupon belongs to another customer")
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service { return &Service{repo: repo} }

type IssueInput struct {
	Type        string
	PercentOff  int
	AmountCents int64
	Scope       string
	CustomerID  string
	ExpiresAt   *time.Time
}

func (s *Service) Issue(ctx context.Context, in IssueInput) (Coupon, error) {
	var custPtr *string
	if id := strings.TrimSpace(in.CustomerID); id != "" {
		custPtr = &id
	}

	c := Coupon{
		Code:        newCode(),
		Type:        in.Type,
		PercentOff:  in.PercentOff,
		AmountCents: in.AmountCents,
		Scope:       in.Scope,
		CustomerID:  custPtr,
		Status:      StatusActive,
		ExpiresAt:   in.ExpiresAt,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil && IsDuplicateKey(err) {
		// code collision, one retry with a fresh code
		c.Code = newCode()
		created, err = s.repo.Create(ctx, c)
	}
	return created, err
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	ok, err := s.repo.UpdateStatus(ctx, id, StatusActive, StatusRevoked)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotRevocable
	}
	return nil
}

// Resolve validates a coupon code for a checkout: it must be active, not
// expired, match the booking scope, and belong to the customer (or be
// unassigned).
func (s *Service) Resolve(ctx context.Context, code, scope, customerID string) (Coupon, error) {
	c, err := s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Coupon{}, err
	}
	if !c.Usable(time.Now()) {
		return Coupon{}, ErrNotUsable
	}
	if c.Scope != scope {
		return Coupon{}, ErrWrongScope
	}
	if c.CustomerID != nil && *c.CustomerID != customerID {
		return Coupon{}, ErrWrongOwner
	}
	return c, nil
}

func (s *Service) MarkRedeemed(ctx context.Context, id string) error {
	ok, err := s.repo.UpdateStatus(ctx, id, StatusActive, StatusRedeemed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotUsable
	}
	return nil
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newCode() string {
	b := make([]byte, 10)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return "TJA-" + string(b[:5]) + "-" + string(b[5:])
}

package admins

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/email"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrAlreadyRevoked = errors.New("admin already revoked")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrAccountRevoked = errors.New("admin account revoked")
)

type Service struct {
	repo    *Repo
	outbox  *email.OutboxService
	baseURL string
	logger  *slog.Logger
}

func NewService(repo *Repo, outbox *email.OutboxService, baseURL string, logger *slog.Logger) *Service {
	return &Service{repo: repo, outbox: outbox, baseURL: baseURL, logger: logger}
}

type InviteInput struct {
	Name      string
	Email     string
	InvitedBy string
}

// Invite creates an invited admin with a generated temporary password and
// queues the invitation email.
func (s *Service) Invite(ctx context.Context, in InviteInput) (Admin, string, error) {
	addr := strings.ToLower(strings.TrimSpace(in.Email))

	tempPassword := randHex(12)
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, "", err
	}

	invitedBy := strings.TrimSpace(in.InvitedBy)
	var invitedByPtr *string
	if invitedBy != "" {
		invitedByPtr = &invitedBy
	}

	a, err := s.repo.Create(ctx, strings.TrimSpace(in.Name), addr, string(hash), invitedByPtr)
	if err != nil {
		if IsDuplicateKey(err) {
			return Admin{}, "", ErrEmailTaken
		}
		return Admin{}, "", err
	}

	if s.outbox != nil {
		subject := "You have been invited to the TJA admin portal"
		text := "Hello " + a.Name + ",\n\n" +
			"An account was created for you on the TJA portal.\n" +
			"Sign in at " + s.baseURL + "/login with this temporary password: " + tempPassword + "\n\n" +
			"Please change it after your first sign-in."
		if err := s.outbox.Enqueue(ctx, a.Email, subject, text, ""); err != nil {
			s.logger.WarnContext(ctx, "admin invite email enqueue failed", "admin_id", a.ID, "err", err)
		}
	}

	return a, tempPassword, nil
}

func (s *Service) Revoke(ctx context.Context, id string) error {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusRevoked {
		return ErrAlreadyRevoked
	}
	now := time.Now()
	return s.repo.UpdateStatus(ctx, id, StatusRevoked, &now)
}

// Authenticate checks credentials and activates invited admins on their
// first successful sign-in.
func (s *Service) Authenticate(ctx context.Context, emailAddr, password string) (Admin, error) {
	a, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Admin{}, ErrBadCredentials
		}
		return Admin{}, err
	}
	if a.Status == StatusRevoked {
		return Admin{}, ErrAccountRevoked
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Admin{}, ErrBadCredentials
	}

	if a.Status == StatusInvited {
		if err := s.repo.UpdateStatus(ctx, a.ID, StatusActive, nil); err != nil {
			return Admin{}, err
		}
		a.Status = StatusActive
	}
	return a, nil
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

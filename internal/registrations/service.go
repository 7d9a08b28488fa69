// Package registrations implements the idempotent register-or-fetch operation
// at the heart of the giveaway backend.
package registrations

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hotend/giveaway-backend/internal/codes"
	"github.com/hotend/giveaway-backend/internal/models"
)

// Status reported to the client.
const (
	StatusRegistered        = "registered"
	StatusAlreadyRegistered = "already_registered"
)

// Result is the outcome of a registration call. Code is the participant's
// verification code: freshly assigned on first registration, the stored one
// on every call after that.
type Result struct {
	Status string
	Code   string
}

// InsertResult distinguishes a fresh insert from a lost race on the email
// uniqueness constraint, so the service never inspects database errors.
type InsertResult int

const (
	Inserted InsertResult = iota
	AlreadyExists
)

// Store is the persistence needed by the service. FindByEmail returns
// (nil, nil) when no row exists for the email.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.Registration, error)
	Insert(ctx context.Context, reg *models.Registration) (InsertResult, error)
}

// Notifier delivers the confirmation email carrying the verification code.
// Delivery is best-effort: the service logs and swallows any error.
type Notifier interface {
	Notify(ctx context.Context, email, name, code string) error
}

// Service orchestrates code assignment, persistence and notification.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
	codeLen  int
}

// NewService creates a registration service.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger, codeLen: codes.DefaultLength}
}

// Register assigns a code to the email if it has none yet, otherwise returns
// the code assigned earlier. Repeated calls never create a second row, never
// re-send the email and never update name or newsletter. Two concurrent calls
// for the same email are resolved by the store's uniqueness constraint: the
// loser of the race re-reads the winner's row and reports it as an existing
// registration.
func (s *Service) Register(ctx context.Context, name, email string, newsletter bool) (*Result, error) {
	// Candidate code is drawn before touching the store and discarded if the
	// email turns out to be registered already.
	code, err := codes.Generate(s.codeLen)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	if existing != nil {
		return &Result{Status: StatusAlreadyRegistered, Code: existing.Code}, nil
	}

	reg := &models.Registration{
		Email:      email,
		Name:       name,
		Code:       code,
		Newsletter: newsletter,
	}
	outcome, err := s.store.Insert(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	if outcome == AlreadyExists {
		winner, err := s.store.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("re-read registration: %w", err)
		}
		if winner == nil {
			return nil, fmt.Errorf("registration for %s vanished after conflict", email)
		}
		return &Result{Status: StatusAlreadyRegistered, Code: winner.Code}, nil
	}

	if err := s.notifier.Notify(ctx, email, name, code); err != nil {
		// The participant is registered even if the email never arrives;
		// the operator can resend manually from the email log.
		s.logger.Error("confirmation email failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return &Result{Status: StatusRegistered, Code: code}, nil
}

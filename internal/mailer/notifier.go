package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hotend/giveaway-backend/internal/models"
	"github.com/hotend/giveaway-backend/pkg/queue"
)

// DeliveryLog records delivery attempts; implemented by emaillogs.Repository.
type DeliveryLog interface {
	Record(ctx context.Context, el *models.EmailLog) error
}

// Service sends confirmation emails synchronously and records every attempt.
// It implements registrations.Notifier and is also what the background worker
// uses to deliver queued jobs.
type Service struct {
	client    *Client
	templates *Templates
	log       DeliveryLog
	logger    *zap.Logger
}

// NewService creates a synchronous email notifier.
func NewService(client *Client, templates *Templates, log DeliveryLog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, templates: templates, log: log, logger: logger}
}

// Notify renders and sends the confirmation email for a new registration.
// The attempt is logged whether or not it succeeds; the send error is
// returned so the caller can decide (the registration service swallows it).
func (s *Service) Notify(ctx context.Context, email, name, code string) error {
	html, text, err := s.templates.RenderConfirmation(name, code)
	if err != nil {
		s.record(ctx, email, err)
		return err
	}

	sendErr := s.client.Send(ctx, email, Subject, html, text)
	s.record(ctx, email, sendErr)
	return sendErr
}

func (s *Service) record(ctx context.Context, email string, sendErr error) {
	if s.log == nil {
		return
	}
	el := &models.EmailLog{
		RecipientEmail: email,
		Subject:        Subject,
		Status:         models.EmailLogStatusSent,
	}
	if sendErr != nil {
		el.Status = models.EmailLogStatusFailed
		el.ErrorMessage = sendErr.Error()
	} else {
		now := time.Now()
		el.SentAt = &now
	}
	if err := s.log.Record(ctx, el); err != nil {
		s.logger.Warn("record email log failed", zap.String("email", email), zap.Error(err))
	}
}

// QueuedNotifier hands confirmation emails to the redis queue instead of
// sending inline; cmd/worker drains the queue. Implements
// registrations.Notifier.
type QueuedNotifier struct {
	queue  *queue.Queue
	logger *zap.Logger
}

// NewQueuedNotifier creates a queue-backed notifier.
func NewQueuedNotifier(q *queue.Queue, logger *zap.Logger) *QueuedNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueuedNotifier{queue: q, logger: logger}
}

// Notify enqueues one email job for the registration.
func (n *QueuedNotifier) Notify(ctx context.Context, email, name, code string) error {
	return n.queue.EnqueueEmail(ctx, queue.EmailPayload{
		Email: email,
		Name:  name,
		Code:  code,
	})
}

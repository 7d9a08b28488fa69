// Package worker drains the email queue when asynchronous dispatch is enabled.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hotend/giveaway-backend/internal/mailer"
	"github.com/hotend/giveaway-backend/pkg/queue"
)

const dequeueBackoff = 5 * time.Second

// EmailProcessor delivers queued confirmation emails. Each job gets exactly
// one delivery attempt; a failure is logged (and recorded in email_logs by
// the mailer) but never re-queued.
type EmailProcessor struct {
	mailer *mailer.Service
	queue  *queue.Queue
	logger *zap.Logger
}

// NewEmailProcessor creates an email job processor.
func NewEmailProcessor(m *mailer.Service, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{mailer: m, queue: q, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return p.mailer.Notify(ctx, payload.Email, payload.Name, payload.Code)
}

// Run starts the worker loop: dequeue, deliver, log failures.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("email worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(dequeueBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("email delivery failed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
}

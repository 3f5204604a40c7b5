package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dekoratoriai/storefront/internal/notify/inquirylog"
)

// Step is one delivery made for an inquiry.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
}

type sendStep struct {
	name   string
	mailer Mailer
	msg    Message
}

func (s sendStep) Name() string { return s.name }

func (s sendStep) Execute(ctx context.Context) error {
	return s.mailer.Send(ctx, s.msg)
}

// dispatcher runs steps in order and stops at the first failure. Sent
// emails cannot be recalled, so nothing is compensated. Every transition
// is appended to the inquiry log when one is configured.
type dispatcher struct {
	log    inquirylog.Repository
	logger *slog.Logger
}

func (d dispatcher) run(ctx context.Context, inquiryID, email string, steps []Step) error {
	for _, step := range steps {
		d.logger.DebugContext(ctx, "executing step", "inquiry_id", inquiryID, "step", step.Name())

		if err := step.Execute(ctx); err != nil {
			d.logger.ErrorContext(ctx, "step failed", "inquiry_id", inquiryID, "step", step.Name(), "error", err)

			entry := inquirylog.NewEntry(ctx, inquiryID, inquirylog.StatusFailed, step.Name(), email)
			entry.Error = err.Error()
			d.save(ctx, entry)
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
		d.save(ctx, inquirylog.NewEntry(ctx, inquiryID, inquirylog.StatusStepDone, step.Name(), email))
	}

	d.save(ctx, inquirylog.NewEntry(ctx, inquiryID, inquirylog.StatusSent, "", email))
	return nil
}

// save never fails the inquiry; a broken log is only reported.
func (d dispatcher) save(ctx context.Context, entry *inquirylog.Entry) {
	if d.log == nil {
		return
	}
	if err := d.log.Save(ctx, entry); err != nil {
		d.logger.WarnContext(ctx, "inquiry log write failed", "inquiry_id", entry.InquiryID, "status", entry.Status, "error", err)
	}
}

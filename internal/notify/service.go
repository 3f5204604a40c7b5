package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dekoratoriai/storefront/internal/notify/inquirylog"
	"github.com/dekoratoriai/storefront/internal/pkg/telemetry"
)

// Step names as they appear in the inquiry log.
const (
	StepOperatorNotification = "operator_notification"
	StepCustomerConfirmation = "customer_confirmation"
)

// Service sends the operator notification and the customer confirmation
// for an appointment inquiry. Failures are not retried.
type Service struct {
	mailer   Mailer
	from     string
	operator string
	contact  Contact
	log      inquirylog.Repository
	logger   *slog.Logger
	tracer   trace.Tracer
}

type Option func(*Service)

// WithInquiryLog records every inquiry in repo.
func WithInquiryLog(repo inquirylog.Repository) Option {
	return func(s *Service) { s.log = repo }
}

func WithContact(c Contact) Option {
	return func(s *Service) { s.contact = c }
}

// NewService sends from the from address; operator receives the
// notifications.
func NewService(mailer Mailer, from, operator string, opts ...Option) *Service {
	s := &Service{
		mailer:   mailer,
		from:     from,
		operator: operator,
		contact:  DefaultContact,
		logger:   slog.Default().With("component", "notify"),
		tracer:   otel.Tracer("github.com/dekoratoriai/storefront/internal/notify"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SendAppointment validates req and sends both emails, operator first. It
// returns the inquiry id, ErrMissingFields for an incomplete request or
// the relay error of the first email that failed.
func (s *Service) SendAppointment(ctx context.Context, req AppointmentRequest) (string, error) {
	if err := req.Validate(); err != nil {
		telemetry.EmailsSent.WithLabelValues("invalid").Inc()
		return "", err
	}

	inquiryID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "notify.SendAppointment", trace.WithAttributes(
		attribute.String("inquiry.id", inquiryID),
		attribute.Bool("appointment.scheduled", req.AppointmentDate != ""),
	))
	defer span.End()

	d := dispatcher{log: s.log, logger: s.logger}

	received := inquirylog.NewEntry(ctx, inquiryID, inquirylog.StatusReceived, "", req.Email)
	if payload, err := json.Marshal(req); err == nil {
		received.Payload = string(payload)
	}
	d.save(ctx, received)

	steps, err := s.steps(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		telemetry.EmailsSent.WithLabelValues("failed").Inc()
		return inquiryID, err
	}

	if err := d.run(ctx, inquiryID, req.Email, steps); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		telemetry.EmailsSent.WithLabelValues("failed").Inc()
		return inquiryID, err
	}

	telemetry.EmailsSent.WithLabelValues("sent").Inc()
	s.logger.InfoContext(ctx, "appointment emails sent", "inquiry_id", inquiryID)
	return inquiryID, nil
}

func (s *Service) steps(req AppointmentRequest) ([]Step, error) {
	operatorHTML, err := render(operatorTmpl, req, s.contact)
	if err != nil {
		return nil, err
	}
	customerHTML, err := render(customerTmpl, req, s.contact)
	if err != nil {
		return nil, err
	}

	return []Step{
		sendStep{
			name:   StepOperatorNotification,
			mailer: s.mailer,
			msg:    Message{From: s.from, To: s.operator, Subject: operatorSubject(req), HTML: operatorHTML},
		},
		sendStep{
			name:   StepCustomerConfirmation,
			mailer: s.mailer,
			msg:    Message{From: s.from, To: req.Email, Subject: customerSubject(req), HTML: customerHTML},
		},
	}, nil
}

// IsValidation reports whether err came from request validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields)
}

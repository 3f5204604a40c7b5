package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekoratoriai/storefront/internal/notify/inquirylog"
)

type recordingMailer struct {
	mu     sync.Mutex
	sent   []Message
	failAt int
	err    error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil && len(m.sent)+1 == m.failAt {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type memoryLog struct {
	mu      sync.Mutex
	entries []inquirylog.Entry
}

func (l *memoryLog) Save(_ context.Context, e *inquirylog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *e)
	return nil
}

func (l *memoryLog) statuses() []inquirylog.Status {
	out := make([]inquirylog.Status, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Status
	}
	return out
}

func request() AppointmentRequest {
	return AppointmentRequest{
		FirstName: "Jonas",
		LastName:  "Jonaitis",
		Email:     "jonas@example.com",
		Message:   "Domina <b>rozetės</b>",
		Timestamp: "2025-06-01T09:30:00Z",
	}
}

func TestValidate(t *testing.T) {
	req := request()
	assert.NoError(t, req.Validate())

	req.LastName = ""
	assert.ErrorIs(t, req.Validate(), ErrMissingFields)

	req = request()
	req.Email = ""
	assert.ErrorIs(t, req.Validate(), ErrMissingFields)

	req = request()
	req.Message = "   "
	assert.NoError(t, req.Validate(), "only empty fields are missing")

	req = request()
	req.Phone = ""
	assert.NoError(t, req.Validate(), "phone is optional")
}

func TestSendAppointment(t *testing.T) {
	mailer := &recordingMailer{}
	log := &memoryLog{}
	svc := NewService(mailer, "shop@dekoratoriai.lt", "ops@dekoratoriai.lt", WithInquiryLog(log))

	id, err := svc.SendAppointment(context.Background(), request())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, mailer.sent, 2)
	operator, customer := mailer.sent[0], mailer.sent[1]

	assert.Equal(t, "ops@dekoratoriai.lt", operator.To)
	assert.Equal(t, "Naujas susitikimo užsakymas - Jonas Jonaitis", operator.Subject)
	assert.Contains(t, operator.HTML, "Nenurodytas")
	assert.Contains(t, operator.HTML, "&lt;b&gt;rozetės&lt;/b&gt;", "message is escaped")
	assert.NotContains(t, operator.HTML, "Susitikimo Laikas")

	assert.Equal(t, "jonas@example.com", customer.To)
	assert.Equal(t, "shop@dekoratoriai.lt", customer.From)
	assert.Equal(t, "Jūsų užklausa gauta", customer.Subject)
	assert.Contains(t, customer.HTML, "Sveiki, Jonas!")
	assert.Contains(t, customer.HTML, "370 600 12345")

	assert.Equal(t, []inquirylog.Status{
		inquirylog.StatusReceived,
		inquirylog.StatusStepDone,
		inquirylog.StatusStepDone,
		inquirylog.StatusSent,
	}, log.statuses())
	assert.Contains(t, log.entries[0].Payload, `"firstName":"Jonas"`)
	for _, e := range log.entries {
		assert.Equal(t, id, e.InquiryID)
	}
}

func TestSendAppointment_WithDate(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewService(mailer, "shop@dekoratoriai.lt", "ops@dekoratoriai.lt")

	req := request()
	req.AppointmentDate = "2025-06-10 14:00"
	req.Phone = "+37060000000"
	_, err := svc.SendAppointment(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, mailer.sent[0].HTML, "2025-06-10 14:00")
	assert.Contains(t, mailer.sent[0].HTML, "37060000000")
	assert.Equal(t, "Susitikimo patvirtinimas - 2025-06-10 14:00", mailer.sent[1].Subject)
	assert.Contains(t, mailer.sent[1].HTML, "Prašome atvykti laiku.")
}

func TestSendAppointment_MissingFields(t *testing.T) {
	mailer := &recordingMailer{}
	log := &memoryLog{}
	svc := NewService(mailer, "a@b.lt", "c@d.lt", WithInquiryLog(log))

	req := request()
	req.LastName = ""
	_, err := svc.SendAppointment(context.Background(), req)

	assert.True(t, IsValidation(err))
	assert.Empty(t, mailer.sent)
	assert.Empty(t, log.entries)
}

func TestSendAppointment_RelayFailure(t *testing.T) {
	mailer := &recordingMailer{failAt: 2, err: errors.New("550 mailbox unavailable")}
	log := &memoryLog{}
	svc := NewService(mailer, "a@b.lt", "c@d.lt", WithInquiryLog(log))

	_, err := svc.SendAppointment(context.Background(), request())

	require.Error(t, err)
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "550 mailbox unavailable")
	assert.Len(t, mailer.sent, 1, "no retries")

	last := log.entries[len(log.entries)-1]
	assert.Equal(t, inquirylog.StatusFailed, last.Status)
	assert.Equal(t, StepCustomerConfirmation, last.Step)
	assert.Equal(t, "550 mailbox unavailable", last.Error)
}

func TestSubmittedAt(t *testing.T) {
	req := request()
	req.Timestamp = "yesterday"
	assert.Equal(t, "yesterday", req.SubmittedAt())
}

func TestCompose(t *testing.T) {
	raw, err := Compose(Message{
		From:    "shop@dekoratoriai.lt",
		To:      "jonas@example.com",
		Subject: "Jūsų užklausa gauta",
		HTML:    "<p>Ačiū</p>",
	}, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Jūsų užklausa gauta", subject)

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "jonas@example.com", to[0].Address)

	part, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>Ačiū</p>", string(body))
}

// Package inquirylog is the audit trail of appointment inquiries.
//
// Every inquiry gets one row per transition, so the latest row is its
// current state. Each row carries the trace and span ids that were active
// when it was written, which links a row to its distributed trace.
package inquirylog

import "time"

type Status string

const (
	StatusReceived Status = "RECEIVED"
	StatusStepDone Status = "STEP_DONE"
	StatusSent     Status = "SENT"
	StatusFailed   Status = "FAILED"
)

// Entry is one row of the inquiry log.
type Entry struct {
	InquiryID string
	Status    Status

	// Step names the delivery step that just finished or failed.
	Step string

	// Email is the address of the person who submitted the inquiry.
	Email string

	// Payload is the JSON request, stored on RECEIVED only.
	Payload string

	// Error holds the failure text on FAILED rows.
	Error string

	TraceID   string
	SpanID    string
	UpdatedAt time.Time
}

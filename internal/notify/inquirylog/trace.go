package inquirylog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers of the active span.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo returns empty ids when ctx has no valid span.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an entry stamped with the trace of ctx.
//
//	entry := inquirylog.NewEntry(ctx, id, inquirylog.StatusSent, "customer_confirmation", email)
func NewEntry(ctx context.Context, inquiryID string, status Status, step, email string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		InquiryID: inquiryID,
		Status:    status,
		Step:      step,
		Email:     email,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		UpdatedAt: time.Now().UTC(),
	}
}

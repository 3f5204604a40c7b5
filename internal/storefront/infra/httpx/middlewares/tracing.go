package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderXRequestID      = "X-Request-Id"
	HeaderXIdempotencyKey = "X-Idempotency-Key"
)

// AttachTracingMetadata echoes the request id to the client and tags the
// active span with it and with the idempotency key, if any.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID != "" {
			w.Header().Set(HeaderXRequestID, requestID)
		}

		span := trace.SpanFromContext(r.Context())
		span.SetAttributes(attribute.String("request.id", requestID))
		if key := r.Header.Get(HeaderXIdempotencyKey); key != "" {
			span.SetAttributes(attribute.String("request.idempotency_key", key))
		}

		next.ServeHTTP(w, r)
	})
}

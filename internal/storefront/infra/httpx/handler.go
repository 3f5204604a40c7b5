package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/listing"
	"github.com/dekoratoriai/storefront/internal/pkg/cache"
	"github.com/dekoratoriai/storefront/internal/storefront/core/domain/entity"
	"github.com/dekoratoriai/storefront/internal/storefront/core/ports"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx/middlewares"
)

// Handler serves the storefront JSON API.
type Handler struct {
	catalog      ports.Catalog
	views        *listing.Views
	sessions     ports.SessionService
	appointments ports.AppointmentService

	idempotency    cache.Cache // nil-safe: duplicate inquiries are not detected if nil
	idempotencyTTL time.Duration
}

type Option func(*Handler)

// WithIdempotency remembers X-Idempotency-Key values of appointment
// requests for ttl.
func WithIdempotency(c cache.Cache, ttl time.Duration) Option {
	return func(h *Handler) {
		h.idempotency = c
		h.idempotencyTTL = ttl
	}
}

func NewHandler(
	cat ports.Catalog,
	views *listing.Views,
	sessions ports.SessionService,
	appointments ports.AppointmentService,
	opts ...Option,
) *Handler {
	h := &Handler{
		catalog:      cat,
		views:        views,
		sessions:     sessions,
		appointments: appointments,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// withSession loads the caller's session, runs fn and releases it.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*entity.Session)) {
	sid := middlewares.SessionID(r.Context())
	sess, release, err := h.sessions.Open(r.Context(), sid, identity.FromContext(r.Context()))
	if err != nil {
		h.internalError(w, r, "session_unavailable", err)
		return
	}
	defer release()
	fn(sess)
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	if r.Context().Err() != nil {
		slog.InfoContext(r.Context(), "request abandoned by client", "error", err)
		return
	}
	slog.ErrorContext(r.Context(), "request failed", "code", code, "error", err)
	writeError(w, http.StatusInternalServerError, code, err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dekoratoriai/storefront/internal/notify"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx/middlewares"
)

// SendAppointmentEmail sends the operator notification and the customer
// confirmation. A repeated X-Idempotency-Key is refused while the first
// request with that key is in flight or after it succeeded.
func (h *Handler) SendAppointmentEmail(w http.ResponseWriter, r *http.Request) {
	var req notify.AppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, AppointmentResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, AppointmentResponse{Success: false, Message: "Missing required fields"})
		return
	}

	key, claimed := h.claimIdempotencyKey(r)
	if key != "" && !claimed {
		writeJSON(w, http.StatusConflict, AppointmentResponse{Success: false, Message: "Duplicate request"})
		return
	}

	inquiryID, err := h.appointments.SendAppointment(r.Context(), req)
	if err != nil {
		h.releaseIdempotencyKey(r.Context(), key)
		if notify.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, AppointmentResponse{Success: false, Message: "Missing required fields"})
			return
		}
		slog.ErrorContext(r.Context(), "appointment email failed", "inquiry_id", inquiryID, "error", err)
		writeJSON(w, http.StatusInternalServerError, AppointmentResponse{
			Success:   false,
			Message:   "Failed to send emails",
			Error:     err.Error(),
			InquiryID: inquiryID,
		})
		return
	}

	writeJSON(w, http.StatusOK, AppointmentResponse{
		Success:   true,
		Message:   "Emails sent successfully",
		InquiryID: inquiryID,
	})
}

// claimIdempotencyKey returns the cache key and whether this request owns
// it. Without a cache or header it returns "", false.
func (h *Handler) claimIdempotencyKey(r *http.Request) (string, bool) {
	header := r.Header.Get(middlewares.HeaderXIdempotencyKey)
	if h.idempotency == nil || header == "" {
		return "", false
	}

	key := h.idempotency.GenerateKey("appointment", header)
	ok, err := h.idempotency.SetNX(r.Context(), key, "1", h.idempotencyTTL)
	if err != nil {
		slog.WarnContext(r.Context(), "idempotency check skipped", "error", err)
		return "", false
	}
	return key, ok
}

// releaseIdempotencyKey lets a failed request be retried with the same key.
func (h *Handler) releaseIdempotencyKey(ctx context.Context, key string) {
	if h.idempotency == nil || key == "" {
		return
	}
	if err := h.idempotency.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.WarnContext(ctx, "idempotency key release failed", "key", key, "error", err)
	}
}

package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekoratoriai/storefront/internal/business"
	"github.com/dekoratoriai/storefront/internal/storefront/core/domain/entity"
)

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *entity.Session) {
		writeJSON(w, http.StatusOK, mapSession(sess))
	})
}

// SetBusinessAccount stores the account and reloads the cart, since a
// business mode chosen earlier becomes active again.
func (h *Handler) SetBusinessAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	account := &business.Account{
		Email:        req.Email,
		CompanyName:  req.CompanyName,
		CompanyCode:  req.CompanyCode,
		Phone:        req.Phone,
		RegisteredAt: time.Now().UTC(),
	}
	if req.RegisteredAt != nil {
		account.RegisteredAt = req.RegisteredAt.UTC()
	}

	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Business.SetBusinessAccount(r.Context(), account); err != nil {
			h.businessError(w, r, sess, err)
			return
		}
		// A stored business mode takes effect again once an account exists.
		h.reloadCart(w, r, sess)
	})
}

// ClearBusinessAccount drops the account; the session falls back to the
// standard cart.
func (h *Handler) ClearBusinessAccount(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Business.ClearBusinessAccount(r.Context()); err != nil {
			h.businessError(w, r, sess, err)
			return
		}
		h.reloadCart(w, r, sess)
	})
}

func (h *Handler) SwitchMode(w http.ResponseWriter, r *http.Request) {
	mode, ok := business.ParseMode(chi.URLParam(r, "mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_mode", "mode must be standard or business")
		return
	}

	h.withSession(w, r, func(sess *entity.Session) {
		var err error
		if mode == business.ModeBusiness {
			err = sess.Business.SwitchToBusinessMode(r.Context())
		} else {
			err = sess.Business.SwitchToStandardMode(r.Context())
		}
		if err != nil {
			h.businessError(w, r, sess, err)
			return
		}
		h.reloadCart(w, r, sess)
	})
}

func (h *Handler) reloadCart(w http.ResponseWriter, r *http.Request, sess *entity.Session) {
	if err := sess.Cart.Reload(r.Context()); err != nil {
		h.internalError(w, r, "cart_unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, mapSession(sess))
}

// businessError maps skipped operations to 409 with the unchanged state.
func (h *Handler) businessError(w http.ResponseWriter, r *http.Request, sess *entity.Session, err error) {
	var code string
	switch {
	case errors.Is(err, business.ErrNoIdentity):
		code = "no_identity"
	case errors.Is(err, business.ErrEmailMismatch):
		code = "email_mismatch"
	case errors.Is(err, business.ErrNoBusinessAccount):
		code = "no_business_account"
	default:
		h.internalError(w, r, "business_unavailable", err)
		return
	}
	writeJSON(w, http.StatusConflict, ConflictResponse{
		Error:    code,
		Message:  err.Error(),
		Business: sess.Business.Snapshot(),
	})
}

func mapSession(sess *entity.Session) SessionResponse {
	return SessionResponse{
		Business: sess.Business.Snapshot(),
		Cart:     mapCart(sess),
	}
}

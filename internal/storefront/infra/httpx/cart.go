package httpx

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dekoratoriai/storefront/internal/cart"
	"github.com/dekoratoriai/storefront/internal/storefront/core/domain/entity"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *entity.Session) {
		writeJSON(w, http.StatusOK, mapCart(sess))
	})
}

// AddToCart adds one unit of a catalog product. Prices come from the
// catalog, never from the request.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Category == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category and code are required")
		return
	}

	p, err := h.catalog.Product(r.Context(), req.Category, req.Code)
	if err != nil {
		h.catalogError(w, r, err)
		return
	}

	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Cart.Add(r.Context(), p); err != nil {
			if errors.Is(err, cart.ErrInvalidProduct) {
				writeError(w, http.StatusBadRequest, "invalid_product", err.Error())
				return
			}
			h.internalError(w, r, "cart_unavailable", err)
			return
		}
		writeJSON(w, http.StatusOK, mapCart(sess))
	})
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "quantity is required")
		return
	}

	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Cart.UpdateQuantity(r.Context(), id, *req.Quantity); err != nil {
			h.internalError(w, r, "cart_unavailable", err)
			return
		}
		writeJSON(w, http.StatusOK, mapCart(sess))
	})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Cart.Remove(r.Context(), id); err != nil {
			h.internalError(w, r, "cart_unavailable", err)
			return
		}
		writeJSON(w, http.StatusOK, mapCart(sess))
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(sess *entity.Session) {
		if err := sess.Cart.Clear(r.Context()); err != nil {
			h.internalError(w, r, "cart_unavailable", err)
			return
		}
		writeJSON(w, http.StatusOK, mapCart(sess))
	})
}

func mapCart(sess *entity.Session) CartResponse {
	return CartResponse{
		Items: sess.Cart.Items(),
		Total: sess.Cart.Total(),
		Count: sess.Cart.Count(),
		Slot:  sess.Cart.Slot(),
	}
}

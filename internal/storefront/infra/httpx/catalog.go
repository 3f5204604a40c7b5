package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/listing"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx/middlewares"
)

func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.LandingContent())
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := h.catalog.Categories()
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = mapCategory(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// ListProducts loads a category and (re)opens the caller's listing with the
// filters from the query string. The first batch is returned.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "category")
	cat, err := h.catalog.Category(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
		return
	}

	products, err := h.catalog.Products(r.Context(), key)
	if err != nil {
		h.catalogError(w, r, err)
		return
	}

	q := r.URL.Query()
	filters := listing.Filters{
		PriceRange: q.Get("priceRange"),
		Material:   q.Get("material"),
		Style:      q.Get("style"),
	}

	var screen listing.Screen
	if width, err := strconv.Atoi(q.Get("width")); err == nil && width > 0 {
		screen = listing.ClassifyScreen(width)
	}

	view := h.views.Open(middlewares.SessionID(r.Context()), key)
	page := view.Reset(products, filters)

	writeJSON(w, http.StatusOK, mapListing(cat, screen, page))
}

// LoadMore reveals the next batch of the caller's open listing.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "category")
	cat, err := h.catalog.Category(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
		return
	}

	view, ok := h.views.Get(middlewares.SessionID(r.Context()), key)
	if !ok {
		writeError(w, http.StatusNotFound, "listing_not_open", "list the category before loading more")
		return
	}

	page, err := view.LoadMore(r.Context())
	switch {
	case errors.Is(err, listing.ErrLoadInFlight):
		writeError(w, http.StatusConflict, "load_in_flight", err.Error())
		return
	case errors.Is(err, listing.ErrNoMore):
	case err != nil:
		h.internalError(w, r, "load_more_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, mapListing(cat, "", page))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	key, code := chi.URLParam(r, "category"), chi.URLParam(r, "code")

	p, err := h.catalog.Product(r.Context(), key, code)
	if err != nil {
		h.catalogError(w, r, err)
		return
	}

	sortBy := catalog.ParseReviewSort(r.URL.Query().Get("sort"))
	writeJSON(w, http.StatusOK, ProductDetailResponse{
		Product:       mapProduct(p),
		Reviews:       nonNilReviews(catalog.SortReviews(p.Reviews, sortBy)),
		ReviewCount:   len(p.Reviews),
		AverageRating: catalog.AverageRating(p.Reviews),
		Sort:          sortBy,
	})
}

// QuoteMetres prices a length order of a per-metre product.
func (h *Handler) QuoteMetres(w http.ResponseWriter, r *http.Request) {
	key, code := chi.URLParam(r, "category"), chi.URLParam(r, "code")

	metres, err := decimal.NewFromString(r.URL.Query().Get("metres"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_metres", "metres must be a number")
		return
	}

	p, err := h.catalog.Product(r.Context(), key, code)
	if err != nil {
		h.catalogError(w, r, err)
		return
	}

	unit := catalog.UnitPricePerMetre(p)
	if unit == nil {
		writeError(w, http.StatusUnprocessableEntity, "price_on_request", "product has no per-metre price")
		return
	}

	total, err := catalog.QuoteMetres(*unit, metres)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_metres", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, QuoteResponse{
		Code:              p.Code,
		Metres:            metres,
		UnitPricePerMetre: *unit,
		Total:             total,
	})
}

func (h *Handler) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		writeError(w, http.StatusNotFound, "category_not_found", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	default:
		h.internalError(w, r, "catalog_unavailable", err)
	}
}

func mapCategory(c catalog.Category) CategoryResponse {
	return CategoryResponse{
		Key:    c.Key,
		Title:  c.Title,
		URL:    c.BaseURL,
		Layout: catalog.DimensionLayoutFor(c.Key),
	}
}

func mapProduct(p catalog.Product) ProductResponse {
	return ProductResponse{
		Product:           p,
		UnitPricePerMetre: catalog.UnitPricePerMetre(p),
		Layout:            catalog.DimensionLayoutFor(p.Category),
	}
}

func mapListing(cat catalog.Category, screen listing.Screen, page listing.Page) ListingResponse {
	products := make([]ProductResponse, len(page.Products))
	for i, p := range page.Products {
		products[i] = mapProduct(p)
	}
	return ListingResponse{
		Category:  mapCategory(cat),
		Screen:    screen,
		Products:  products,
		Displayed: page.Displayed,
		Total:     page.Total,
		HasMore:   page.HasMore,
		Filters:   page.Filters,
	}
}

func nonNilReviews(reviews []catalog.Review) []catalog.Review {
	if reviews == nil {
		return []catalog.Review{}
	}
	return reviews
}

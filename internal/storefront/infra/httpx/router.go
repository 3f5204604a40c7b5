package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/pkg/telemetry"
	"github.com/dekoratoriai/storefront/internal/storefront/infra/httpx/middlewares"
)

func NewRouter(handler *Handler, auth *identity.Middleware) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewares.Session)
		r.Use(auth.Authenticate)

		r.Get("/landing", handler.Landing)
		r.Get("/categories", handler.Categories)

		r.Route("/produktai/{category}", func(r chi.Router) {
			r.Get("/", handler.ListProducts)
			r.Post("/more", handler.LoadMore)
			r.Get("/{code}", handler.GetProduct)
			r.Get("/{code}/quote", handler.QuoteMetres)
		})

		r.Get("/business", handler.GetBusiness)
		r.Put("/business/account", handler.SetBusinessAccount)
		r.Delete("/business/account", handler.ClearBusinessAccount)
		r.Post("/business/mode/{mode}", handler.SwitchMode)

		r.Get("/cart", handler.GetCart)
		r.Post("/cart/items", handler.AddToCart)
		r.Patch("/cart/items/{id}", handler.UpdateQuantity)
		r.Delete("/cart/items/{id}", handler.RemoveFromCart)
		r.Delete("/cart", handler.ClearCart)

		r.Post("/appointment-email", handler.SendAppointmentEmail)
	})
	return r
}

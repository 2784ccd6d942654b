package router

import (
	"net/http"

	"aquaflow/internal/auth"
	"aquaflow/internal/handler"
	"aquaflow/internal/middleware"
	"aquaflow/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers mounted by New.
type Handlers struct {
	Auth      *handler.AuthHandler
	Area      *handler.AreaHandler
	Address   *handler.AddressHandler
	Inventory *handler.InventoryHandler
	Order     *handler.OrderHandler
	Invoice   *handler.InvoiceHandler
	Report    *handler.ReportHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Registration, login, the area directory and the health check are open;
// everything else requires a session.
func New(h Handlers, sessions *auth.Sessions, accounts service.AccountService, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/areas", h.Area.List)

		// Session-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(sessions, accounts, logger))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)
			r.Put("/auth/me", h.Auth.UpdateProfile)
			r.Delete("/account", h.Auth.DeleteAccount)

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.Address.List)
				r.Post("/", h.Address.Create)
				r.Put("/{id}", h.Address.Update)
				r.Delete("/{id}", h.Address.Delete)
				r.Put("/{id}/default", h.Address.SetDefault)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", h.Inventory.List)
				r.Post("/", h.Inventory.Create)
				r.Get("/low-stock", h.Inventory.LowStock)
				r.Put("/{id}", h.Inventory.Update)
				r.Delete("/{id}", h.Inventory.Delete)
			})

			r.Get("/catalog", h.Inventory.Catalog)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Post("/", h.Order.Create)
				r.Get("/{id}", h.Order.GetByID)
				r.Patch("/{id}/status", h.Order.UpdateStatus)
				r.Post("/{id}/messages", h.Order.PostMessage)
				r.Post("/{id}/invoice", h.Order.GenerateInvoice)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Invoice.List)
				r.Patch("/{id}/status", h.Invoice.UpdateStatus)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", h.Report.Monthly)
				r.Get("/yearly", h.Report.Yearly)
			})
		})
	})

	return r
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmeshcher/flora-console/internal/access"
	custommiddleware "github.com/mmeshcher/flora-console/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware консоли.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/me", h.Me)
			r.Get("/catalog", h.Catalog)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Post("/", h.CreateOrder)
				r.Get("/{id}", h.GetOrder)
				r.Put("/{id}", h.UpdateOrder)
				r.Delete("/{id}", h.DeleteOrder)
				r.Patch("/{id}/status", h.TransitionOrder)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", h.ListSales)
				r.Post("/", h.CreateSale)
				r.Get("/{id}", h.GetSale)
				r.Delete("/{id}", h.CancelSale)
			})

			r.Route("/refill", func(r chi.Router) {
				r.Use(custommiddleware.RequirePage(access.PageRefill))

				r.Get("/", h.ListRefill)
				r.Get("/{id}", h.GetRefill)
				r.Post("/{id}/cart", h.PreviewCart)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.RequireAction(access.ActionRefillEdit))

					r.Post("/{id}/products", h.SubmitRefill)
					r.Put("/products/{lineID}", h.UpdateRefillLine)
					r.Delete("/products/{lineID}", h.DeleteRefillLine)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Use(custommiddleware.RequirePage(access.PageProducts))

				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeactivateProduct)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(custommiddleware.RequirePage(access.PageUsers))

				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeactivateUser)
				r.Patch("/{id}/reactivate", h.ReactivateUser)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(custommiddleware.RequirePage(access.PageReports))

				r.Get("/", h.GetReports)
				r.Get("/export", h.ExportReports)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

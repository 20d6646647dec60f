package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты витрины поверх Handler.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/{id}", handler.GetProduct)
		r.Get("/countries", handler.Countries)
		r.Get("/orders/by-session/{token}", handler.OrderBySession)

		// Всё, что трогает корзину, привязано к покупательской сессии.
		r.Group(func(r chi.Router) {
			r.Use(handler.sessionMiddleware)

			r.Get("/cart", handler.GetCart)
			r.Post("/cart/items", handler.AddItem)
			r.Put("/cart/items/{productID}", handler.SetQuantity)
			r.Delete("/cart/items/{productID}", handler.RemoveItem)
			r.Delete("/cart", handler.ClearCart)
			r.Post("/checkout", handler.Checkout)
		})
	})

	return r
}

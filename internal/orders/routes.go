package orders

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de pedidos.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Post("/order_create", handler.Create)

	route.Route("/orders", func(route chi.Router) {
		route.Get("/", handler.List)
		route.Get("/{order_id}", handler.GetByID)
		route.Put("/{order_id}", handler.Refresh)
	})
}

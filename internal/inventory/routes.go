package inventory

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas de inventario y catálogo de prendas.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Get("/inventory", handler.GetInventory)
	route.Put("/inventory/{product_id}", handler.UpdateInventory)

	route.Route("/products", func(route chi.Router) {
		route.Get("/", handler.ListProducts)
		route.Get("/{product_id}", handler.GetProduct)
	})
}

package chat

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra rutas del canal conversacional.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Post("/chat", handler.Chat)
	route.Post("/webhook", handler.Webhook)
}

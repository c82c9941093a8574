package assistant

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

const responderPrompt = `Eres el asistente de una tienda de prendas. Recibes el resultado de una operación en JSON.
Redacta una respuesta breve y amable en español para el cliente. No inventes datos que no estén en el JSON.`

// Responder convierte un resultado estructurado en texto para el usuario.
type Responder struct {
	client ChatCompleter
	model  string
	logger *zap.Logger
}

// NewResponder crea un responder. Con client nil siempre usa el texto de respaldo.
func NewResponder(client ChatCompleter, model string, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{client: client, model: model, logger: logger}
}

// Compose redacta la respuesta. Si el modelo falla devuelve fallback.
func (responder *Responder) Compose(ctx context.Context, payload any, fallback string) string {
	if responder.client == nil {
		return fallback
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		responder.logger.Error("encode result for responder", zap.Error(err))
		return fallback
	}

	text, err := complete(ctx, responder.client, responder.model, responderPrompt, string(encoded))
	if err != nil || text == "" {
		responder.logger.Warn("responder fell back to plain text", zap.Error(err))
		return fallback
	}
	return text
}

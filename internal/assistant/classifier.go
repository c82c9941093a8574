package assistant

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Lelo88/prendas-api/internal/intent"
)

var errEmptyCompletion = errors.New("completion without choices")

const classifierPrompt = `Eres un asistente que interpreta comandos para gestionar pedidos y stock de una tienda de prendas.
Devuelve solo un JSON válido con las siguientes claves:
- "intent": "crear_pedido", "consultar_stock", "listar_pedidos", "consultar_pedido", "actualizar_stock" o "desconocido".
- "product_id": número (solo si aplica).
- "order_id": número (solo si aplica).
- "quantity": número (solo si aplica; en actualizar_stock es el nuevo stock).

Ejemplos:
- Mensaje: "Crear pedido de 5 productos de id 90"
  Respuesta: {"intent": "crear_pedido", "product_id": 90, "quantity": 5}
- Mensaje: "Consultar stock de id 90"
  Respuesta: {"intent": "consultar_stock", "product_id": 90}
- Mensaje: "Mostrame los pedidos"
  Respuesta: {"intent": "listar_pedidos"}
- Mensaje: "Cómo va el pedido 12"
  Respuesta: {"intent": "consultar_pedido", "order_id": 12}
- Mensaje: "Poné el stock del producto 90 en 40"
  Respuesta: {"intent": "actualizar_stock", "product_id": 90, "quantity": 40}`

// Classifier traduce texto libre a un intent usando un modelo de lenguaje.
// Nunca devuelve error: cualquier falla termina en intent.KindUnknown.
type Classifier struct {
	client ChatCompleter
	model  string
	logger *zap.Logger
}

// NewClassifier crea un clasificador. Con client nil todo se clasifica como unknown.
func NewClassifier(client ChatCompleter, model string, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, model: model, logger: logger}
}

// Classify implementa el contrato del clasificador.
func (classifier *Classifier) Classify(ctx context.Context, text string) intent.Intent {
	if classifier.client == nil {
		return intent.Unknown(nil)
	}

	content, err := complete(ctx, classifier.client, classifier.model, classifierPrompt, text)
	if err != nil {
		classifier.logger.Error("intent classification failed", zap.Error(err))
		return intent.Unknown(nil)
	}

	decoded, err := intent.Decode([]byte(stripCodeFence(content)))
	if err != nil {
		classifier.logger.Warn("model answer is not a valid intent", zap.String("content", content), zap.Error(err))
		return intent.Unknown(nil)
	}

	classifier.logger.Debug("message classified", zap.String("kind", string(decoded.Kind)), zap.String("label", decoded.Label))
	return decoded
}

// stripCodeFence quita ```json ... ``` si el modelo envolvió la respuesta.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

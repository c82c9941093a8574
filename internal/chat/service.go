package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Lelo88/prendas-api/internal/intent"
)

// Classifier convierte texto libre en un intent. Nunca falla.
type Classifier interface {
	Classify(ctx context.Context, text string) intent.Intent
}

// Responder redacta el resultado en lenguaje natural; ante cualquier falla devuelve fallback.
type Responder interface {
	Compose(ctx context.Context, payload any, fallback string) string
}

// sendTimeout acota el envío; no depende de lo que quede del request.
const sendTimeout = 10 * time.Second

// Sink entrega texto a un chat.
type Sink interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Service une clasificador, dispatcher, responder y canal de salida.
type Service struct {
	classifier Classifier
	dispatcher *Dispatcher
	responder  Responder
	sink       Sink
	logger     *zap.Logger
}

// NewService crea el service de chat.
func NewService(classifier Classifier, dispatcher *Dispatcher, responder Responder, sink Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		classifier: classifier,
		dispatcher: dispatcher,
		responder:  responder,
		sink:       sink,
		logger:     logger,
	}
}

// Handle clasifica el mensaje y lo despacha.
func (service *Service) Handle(ctx context.Context, text string) Result {
	return service.dispatcher.Dispatch(ctx, service.classifier.Classify(ctx, text))
}

// Reply procesa el mensaje y envía la respuesta redactada al chat.
// El único error posible es el del canal de salida.
func (service *Service) Reply(ctx context.Context, chatID int64, text string) error {
	result := service.Handle(ctx, text)
	answer := service.responder.Compose(ctx, result.Payload(), result.Summary())

	// El modelo puede haber agotado el deadline del request y el usuario igual recibe respuesta.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := service.sink.SendMessage(sendCtx, chatID, answer); err != nil {
		service.logger.Error("reply not delivered", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

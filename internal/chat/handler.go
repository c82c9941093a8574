package chat

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Lelo88/prendas-api/internal/httpx"
)

// SecretTokenHeader es el header que Telegram manda cuando el webhook tiene secret_token.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	Handle(ctx context.Context, text string) Result
	Reply(ctx context.Context, chatID int64, text string) error
}

// Handler HTTP del canal conversacional.
type Handler struct {
	service     ServiceAPI
	verifyToken string
}

// NewHandler crea el handler. Con verifyToken vacío el webhook no se verifica.
func NewHandler(service ServiceAPI, verifyToken string) *Handler {
	return &Handler{service: service, verifyToken: verifyToken}
}

// Chat maneja POST /chat?message=...
func (handler *Handler) Chat(writer http.ResponseWriter, request *http.Request) {
	message := strings.TrimSpace(request.URL.Query().Get("message"))
	if message == "" {
		httpx.Fail(writer, request, http.StatusBadRequest, httpx.CodeInvalidInput, "message is required")
		return
	}

	httpx.OK(writer, request, http.StatusOK, handler.service.Handle(request.Context(), message))
}

type webhookUpdate struct {
	Message *struct {
		Chat struct {
			ID *int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

type webhookStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Webhook maneja POST /webhook.
// Responde siempre 200 con {status} para que la plataforma no reintente el envío.
func (handler *Handler) Webhook(writer http.ResponseWriter, request *http.Request) {
	if handler.verifyToken != "" {
		got := request.Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(handler.verifyToken)) != 1 {
			httpx.Fail(writer, request, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid webhook token")
			return
		}
	}

	var update webhookUpdate
	if err := json.NewDecoder(request.Body).Decode(&update); err != nil ||
		update.Message == nil || update.Message.Chat.ID == nil || strings.TrimSpace(update.Message.Text) == "" {
		httpx.WriteJSON(writer, http.StatusOK, webhookStatus{Status: "error", Message: "Datos incompletos"})
		return
	}

	if err := handler.service.Reply(request.Context(), *update.Message.Chat.ID, update.Message.Text); err != nil {
		httpx.WriteJSON(writer, http.StatusOK, webhookStatus{Status: "error", Message: "No se pudo enviar la respuesta"})
		return
	}

	httpx.WriteJSON(writer, http.StatusOK, webhookStatus{Status: "success"})
}

package assistant

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter es la parte del cliente de OpenAI que usamos.
// La cumple *openai.Client y en tests un fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient crea el cliente. baseURL vacío usa el endpoint público.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return openai.NewClientWithConfig(clientConfig)
}

func complete(ctx context.Context, client ChatCompleter, model, system, user string) (string, error) {
	response, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

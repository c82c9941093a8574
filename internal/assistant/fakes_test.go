package assistant

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	content string
	err     error
	empty   bool

	requests []openai.ChatCompletionRequest
}

func (completer *fakeCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	completer.requests = append(completer.requests, request)
	if completer.err != nil {
		return openai.ChatCompletionResponse{}, completer.err
	}
	if completer.empty {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: completer.content}},
		},
	}, nil
}

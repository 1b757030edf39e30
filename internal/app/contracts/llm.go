package contracts

import (
	"context"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
)

type ChatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, request *requests.ChatCompletion) (*responses.ChatCompletion, error)
}

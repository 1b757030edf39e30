package contracts

import (
	"context"
	"nutrisha-service/internal/pkg/dto/requests"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *requests.NutritionEvent) error
}

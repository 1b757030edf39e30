package contracts

import (
	"context"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
)

type NutritionUsecase interface {
	GenerateDiet(ctx context.Context, request *requests.GenerateDiet) (*responses.GenerateDiet, error)
	AnalyzeImage(ctx context.Context, request *requests.AnalyzeImage) (*responses.AnalyzeImage, error)
	CalculateBodyMetrics(ctx context.Context, request *requests.BodyMetrics) (*responses.BodyMetrics, error)
}

package contracts

import (
	"context"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
)

type PatientInfoUsecase interface {
	GetPatientInfo(ctx context.Context, request *requests.GetPatientInfo) (*responses.PatientInfo, error)
}

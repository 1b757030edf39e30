package patient_info

import (
	"context"
	"fmt"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/app/contracts"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/dto/requests"
	"nutrisha-service/internal/pkg/dto/responses"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/fhir_dto"
	"nutrisha-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type patientInfoUsecase struct {
	PatientFhirClient            contracts.PatientFhirClient
	ObservationFhirClient        contracts.ObservationFhirClient
	AllergyIntoleranceFhirClient contracts.AllergyIntoleranceFhirClient
	MedicationRequestFhirClient  contracts.MedicationRequestFhirClient
	ConditionFhirClient          contracts.ConditionFhirClient
	NutritionOrderFhirClient     contracts.NutritionOrderFhirClient
	RedisRepository              contracts.RedisRepository
	InternalConfig               *config.InternalConfig
	Log                          *zap.Logger
	Now                          func() time.Time
}

// NewPatientInfoUsecase accepts a nil redisRepository; caching is then off.
func NewPatientInfoUsecase(
	patientFhirClient contracts.PatientFhirClient,
	observationFhirClient contracts.ObservationFhirClient,
	allergyIntoleranceFhirClient contracts.AllergyIntoleranceFhirClient,
	medicationRequestFhirClient contracts.MedicationRequestFhirClient,
	conditionFhirClient contracts.ConditionFhirClient,
	nutritionOrderFhirClient contracts.NutritionOrderFhirClient,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientInfoUsecase {
	return &patientInfoUsecase{
		PatientFhirClient:            patientFhirClient,
		ObservationFhirClient:        observationFhirClient,
		AllergyIntoleranceFhirClient: allergyIntoleranceFhirClient,
		MedicationRequestFhirClient:  medicationRequestFhirClient,
		ConditionFhirClient:          conditionFhirClient,
		NutritionOrderFhirClient:     nutritionOrderFhirClient,
		RedisRepository:              redisRepository,
		InternalConfig:               internalConfig,
		Log:                          logger,
		Now:                          time.Now,
	}
}

func (uc *patientInfoUsecase) GetPatientInfo(ctx context.Context, request *requests.GetPatientInfo) (*responses.PatientInfo, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("patientInfoUsecase.GetPatientInfo called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	cacheKey := fmt.Sprintf(constvars.CacheKeyPatientInfoFormat, request.PatientID)
	if request.Refresh {
		uc.clearCache(ctx, cacheKey)
	} else if cached := uc.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var (
		patient         *fhir_dto.Patient
		observations    []fhir_dto.Observation
		allergies       []fhir_dto.AllergyIntolerance
		medications     []fhir_dto.MedicationRequest
		conditions      []fhir_dto.Condition
		nutritionOrders []fhir_dto.NutritionOrder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patient, err = uc.PatientFhirClient.FindPatientByID(gctx, request.PatientID)
		return err
	})
	g.Go(func() (err error) {
		observations, err = uc.ObservationFhirClient.FindObservationsBySubject(gctx, request.PatientID)
		return err
	})
	g.Go(func() (err error) {
		allergies, err = uc.AllergyIntoleranceFhirClient.FindAllergyIntolerancesByPatient(gctx, request.PatientID)
		return err
	})
	g.Go(func() (err error) {
		medications, err = uc.MedicationRequestFhirClient.FindMedicationRequestsBySubject(gctx, request.PatientID)
		return err
	})
	g.Go(func() (err error) {
		conditions, err = uc.ConditionFhirClient.FindConditionsBySubject(gctx, request.PatientID)
		return err
	})
	g.Go(func() (err error) {
		nutritionOrders, err = uc.NutritionOrderFhirClient.FindNutritionOrdersByPatient(gctx, request.PatientID)
		return err
	})

	err = g.Wait()
	if err != nil {
		uc.Log.Error("patientInfoUsecase.GetPatientInfo error fetching FHIR resources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	patientInfo := MapPatientInfo(uc.Now(), patient, observations, allergies, medications, conditions, nutritionOrders)
	uc.writeCache(ctx, cacheKey, patientInfo)

	uc.Log.Info("patientInfoUsecase.GetPatientInfo succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Int(constvars.LoggingCountKey, len(observations)),
	)
	return patientInfo, nil
}

func (uc *patientInfoUsecase) cacheTTL() time.Duration {
	return time.Duration(uc.InternalConfig.App.PatientInfoCacheTTLInSeconds) * time.Second
}

func (uc *patientInfoUsecase) readCache(ctx context.Context, cacheKey string) *responses.PatientInfo {
	if uc.RedisRepository == nil || uc.cacheTTL() <= 0 {
		return nil
	}
	requestID := utils.GetRequestID(ctx)

	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("patientInfoUsecase.readCache error reading cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}
	if cached == "" {
		uc.Log.Debug("patientInfoUsecase.readCache miss",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, cacheKey),
			zap.Bool(constvars.LoggingCacheHitKey, false),
		)
		return nil
	}

	patientInfo := new(responses.PatientInfo)
	err = json.Unmarshal([]byte(cached), patientInfo)
	if err != nil {
		uc.Log.Warn("patientInfoUsecase.readCache error decoding cached value",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCacheKey, cacheKey),
			zap.Error(err),
		)
		return nil
	}

	uc.Log.Info("patientInfoUsecase.readCache hit",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCacheKey, cacheKey),
		zap.Bool(constvars.LoggingCacheHitKey, true),
	)
	return patientInfo
}

func (uc *patientInfoUsecase) writeCache(ctx context.Context, cacheKey string, patientInfo *responses.PatientInfo) {
	if uc.RedisRepository == nil || uc.cacheTTL() <= 0 {
		return
	}

	err := uc.RedisRepository.Set(ctx, cacheKey, patientInfo, uc.cacheTTL())
	if err != nil {
		uc.Log.Warn("patientInfoUsecase.writeCache error writing cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, cacheKey),
			zap.Error(err),
		)
	}
}

// clearCache drops the cached entry ahead of a refresh.
func (uc *patientInfoUsecase) clearCache(ctx context.Context, cacheKey string) {
	if uc.RedisRepository == nil || uc.cacheTTL() <= 0 {
		return
	}

	err := uc.RedisRepository.Delete(ctx, cacheKey)
	if err != nil {
		uc.Log.Warn("patientInfoUsecase.clearCache error deleting cache",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingCacheKey, cacheKey),
			zap.Error(err),
		)
	}
}

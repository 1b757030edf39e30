package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"nutrisha-service/internal/app/config"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
)

func requestContext(r *http.Request, internalConfig *config.InternalConfig) (context.Context, context.CancelFunc) {
	timeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), timeout)
}

func decodeJSONBody(r *http.Request, out interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err, maxBytesErr.Limit)
		}
		return exceptions.ErrCannotParseJSON(err)
	}

	err = json.Unmarshal(body, out)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// resolvePatientID applies the launch context: an empty request inherits the
// launched patient, a different patient is refused.
func resolvePatientID(ctx context.Context, requestedPatientID string) (string, error) {
	launchPatientID := utils.GetLaunchPatientID(ctx)
	if launchPatientID == "" {
		return requestedPatientID, nil
	}
	if requestedPatientID == "" {
		return launchPatientID, nil
	}
	if requestedPatientID != launchPatientID {
		return "", exceptions.ErrPatientContextMismatch(nil, requestedPatientID, launchPatientID)
	}
	return requestedPatientID, nil
}

// wrapContextError maps a request deadline to 504 for errors that are not
// already CustomErrors.
func wrapContextError(err error) error {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}

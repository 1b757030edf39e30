package middlewares

import (
	"context"
	"net/http"
	"nutrisha-service/internal/pkg/constvars"
	"nutrisha-service/internal/pkg/exceptions"
	"nutrisha-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// LaunchContext keeps the caller's Authorization header for FHIR forwarding
// and, when APP_REQUIRE_LAUNCH_TOKEN is set, pins the request to the patient
// in the launch token.
func (m *Middlewares) LaunchContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := utils.GetRequestID(ctx)

		authorization := r.Header.Get(constvars.HeaderAuthorization)
		if authorization != "" {
			ctx = context.WithValue(ctx, constvars.CONTEXT_FHIR_AUTHORIZATION_KEY, authorization)
		}

		if !m.InternalConfig.App.RequireLaunchToken {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		token := utils.BearerToken(authorization)
		if token == "" {
			utils.LogSecurityEvent(m.Log, "launch_token_missing", requestID, "medium",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthTokenMissing(nil))
			return
		}

		patientID, err := utils.ParseLaunchToken(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "launch_token_rejected", requestID, "high",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.Error(err),
			)
			switch {
			case utils.IsInvalidSigningMethod(err):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthSigningMethod(err))
			case utils.IsMissingPatientClaim(err):
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthPatientClaimMissing(err))
			default:
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthTokenInvalid(err))
			}
			return
		}

		ctx = context.WithValue(ctx, constvars.CONTEXT_LAUNCH_PATIENT_ID_KEY, patientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

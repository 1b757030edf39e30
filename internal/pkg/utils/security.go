package utils

import (
	"errors"
	"fmt"
	"nutrisha-service/internal/pkg/constvars"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

var (
	errInvalidSigningMethod = errors.New("invalid token signing method")
	errInvalidToken         = errors.New("invalid token")
	errMissingPatientClaim  = errors.New("token has no patient claim")
	errMissingSecret        = errors.New("launch token secret is not configured")
)

var launchTokenMethods = []string{jwt.SigningMethodHS256.Alg()}

// ParseLaunchToken verifies an HS256 launch token and returns its patient claim.
// An empty secret rejects every token.
func ParseLaunchToken(tokenString, secret string) (string, error) {
	if secret == "" {
		return "", errMissingSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errInvalidSigningMethod
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods(launchTokenMethods))
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && strings.HasPrefix(validationErr.Error(), "signing method") {
			return "", fmt.Errorf("%w: %s", errInvalidSigningMethod, validationErr.Error())
		}
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errInvalidToken
	}

	patientID, ok := claims[constvars.LaunchTokenPatientClaim].(string)
	if !ok || patientID == "" {
		return "", errMissingPatientClaim
	}
	return patientID, nil
}

func IsInvalidSigningMethod(err error) bool {
	return errors.Is(err, errInvalidSigningMethod)
}

func IsMissingPatientClaim(err error) bool {
	return errors.Is(err, errMissingPatientClaim)
}

// BearerToken strips the "Bearer " prefix, returning "" if absent.
func BearerToken(authorization string) string {
	if !strings.HasPrefix(authorization, constvars.AuthorizationBearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authorization, constvars.AuthorizationBearerPrefix))
}

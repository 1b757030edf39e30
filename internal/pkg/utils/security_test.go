package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signLaunchToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestParseLaunchToken(t *testing.T) {
	secret := "launch-secret"

	t.Run("Valid Token", func(t *testing.T) {
		token := signLaunchToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"patient": "pat-123",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		patientID, err := ParseLaunchToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "pat-123", patientID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token := signLaunchToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"patient": "pat-123"})

		_, err := ParseLaunchToken(token, secret)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		token := signLaunchToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"patient": "pat-123",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		_, err := ParseLaunchToken(token, secret)
		assert.Error(t, err)
	})

	t.Run("Missing Patient Claim", func(t *testing.T) {
		token := signLaunchToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "user"})

		_, err := ParseLaunchToken(token, secret)
		require.Error(t, err)
		assert.True(t, IsMissingPatientClaim(err))
	})

	t.Run("None Algorithm", func(t *testing.T) {
		token := signLaunchToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"patient": "pat-123"})

		_, err := ParseLaunchToken(token, secret)
		require.Error(t, err)
		assert.True(t, IsInvalidSigningMethod(err))
	})
}

func TestParseLaunchToken_Hardening(t *testing.T) {
	tests := []struct {
		name          string
		method        jwt.SigningMethod
		signKey       interface{}
		secret        string
		signingMethod bool
	}{
		{
			name:    "Empty Secret Rejects Token Signed With Empty Key",
			method:  jwt.SigningMethodHS256,
			signKey: []byte(""),
			secret:  "",
		},
		{
			name:    "Empty Secret Rejects Any Token",
			method:  jwt.SigningMethodHS256,
			signKey: []byte("launch-secret"),
			secret:  "",
		},
		{
			name:          "HS512 Is Not Accepted",
			method:        jwt.SigningMethodHS512,
			signKey:       []byte("launch-secret"),
			secret:        "launch-secret",
			signingMethod: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signLaunchToken(t, tt.method, tt.signKey, jwt.MapClaims{"patient": "victim-123"})

			patientID, err := ParseLaunchToken(token, tt.secret)
			require.Error(t, err)
			assert.Empty(t, patientID)
			assert.Equal(t, tt.signingMethod, IsInvalidSigningMethod(err))
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

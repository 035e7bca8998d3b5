package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifierRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	_, token, err := service.JWTAuth().Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "employee-1",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := service.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "employee-1", claims["employee_id"])
	assert.Equal(t, "access", claims["type"])
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("issuer-secret")
	verifier := NewJWTService("other-secret")

	_, token, err := issuer.JWTAuth().Encode(map[string]interface{}{
		"user_id":     "user-1",
		"employee_id": "employee-1",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eduhub/internal/model"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(7, "learner@example.com", model.RoleLearner)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "learner@example.com", claims.Email)
	assert.Equal(t, model.RoleLearner, claims.Role)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken(7, "learner@example.com", model.RoleConsultant)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleConsultant, claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(7, "x@example.com", model.RoleLearner)
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = NewJWTService("test-secret").ExtractTokenID("not-a-token")
	assert.Error(t, err)
}

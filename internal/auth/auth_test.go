package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/okaradag/garagelog/internal/models"
)

func newTestService() *Service {
	return NewService("test-secret", 24*time.Hour)
}

func TestNewService(t *testing.T) {
	service := NewService("secret", time.Hour)
	assert.NotNil(t, service)
	assert.Equal(t, []byte("secret"), service.jwtSecret)
	assert.Equal(t, time.Hour, service.tokenExp)

	// Non-positive expiry falls back to a day.
	service = NewService("secret", 0)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestService_HashPassword(t *testing.T) {
	service := newTestService()

	password := "testpassword123"
	hash, err := service.HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestService_CheckPassword(t *testing.T) {
	service := newTestService()

	password := "testpassword123"
	hash, _ := service.HashPassword(password)

	// Test correct password
	assert.True(t, service.CheckPassword(password, hash))

	// Test incorrect password
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_GenerateToken(t *testing.T) {
	service := newTestService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "test@example.com",
	}

	token, err := service.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService()

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "test@example.com",
	}

	token, _ := service.GenerateToken(user)

	// Test valid token
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	// Test token with Bearer prefix
	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)

	// Test token signed with a different secret
	other := NewService("other-secret", time.Hour)
	otherToken, _ := other.GenerateToken(user)
	_, err = service.ValidateToken(otherToken)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ExpiredToken(t *testing.T) {
	service := newTestService()
	service.tokenExp = -time.Hour // issued tokens are already expired

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "test@example.com",
	}

	token, _ := service.GenerateToken(user)
	_, err := service.ValidateToken(token)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService()

	// Test valid header
	token := "valid-token"
	header := "Bearer " + token
	extracted, err := service.ExtractTokenFromHeader(header)
	assert.NoError(t, err)
	assert.Equal(t, token, extracted)

	// Test empty header
	_, err = service.ExtractTokenFromHeader("")
	assert.Error(t, err)
	assert.Equal(t, ErrInvalidToken, err)

	// Test malformed header
	_, err = service.ExtractTokenFromHeader("NotBearer token")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.ExtractTokenFromHeader("Bearer")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_GenerateRefreshToken(t *testing.T) {
	service := newTestService()

	first, err := service.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := service.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestService_ValidatePassword(t *testing.T) {
	service := newTestService()

	assert.NoError(t, service.ValidatePassword("longenough1"))
	assert.Error(t, service.ValidatePassword("short"))
}

func TestService_ValidateEmail(t *testing.T) {
	service := newTestService()

	assert.NoError(t, service.ValidateEmail("user@example.com"))
	assert.Error(t, service.ValidateEmail("not-an-email"))
	assert.Error(t, service.ValidateEmail("missing@dot"))
}

package services_test

import (
	"fmt"
	"testing"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	user := &models.User{
		Name:     "Test User",
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, fmt.Errorf("user with ID testuser not found")).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("user with ID test@example.com not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role, "role should default to user")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")),
		"stored password should be the bcrypt hash of the original")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	existing := &models.User{ID: "user-1", Username: "taken"}
	mockRepo.On("GetByUsername", "taken").Return(existing, nil).Once()

	err := authService.RegisterUser(&models.User{
		Name:     "Someone",
		Username: "taken",
		Email:    "someone@example.com",
		Password: "password123",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{
		ID:       "user-1",
		Username: "testuser",
		Password: string(hashed),
		Role:     models.RoleSeller,
	}

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Twice()

	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The issued token should validate and carry the identity claims.
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])
	assert.Equal(t, models.RoleSeller, claims["role"])

	// Wrong password must not leak whether the user exists.
	_, err = authService.LoginUser("testuser", "wrongpass")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	_, err := authService.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret must be rejected.
	otherService := services.NewAuthService(mockRepo, "another_secret")
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	mockRepo.On("GetByUsername", "testuser").
		Return(&models.User{ID: "user-1", Username: "testuser", Password: string(hashed)}, nil).Once()
	token, err := otherService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
}

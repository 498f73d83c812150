package service

import (
	"context"
	"testing"
	"time"

	"solesnaps-api/internal/auth"
	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestUserService_Register_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, testIssuer(), zerolog.Nop())

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Email:     "Jamie@Example.com",
		Password:  "correct-horse",
		FirstName: "Jamie",
		LastName:  "Otieno",
	})

	require.NoError(t, err)
	assert.Equal(t, "jamie@example.com", resp.User.Email)
	assert.Equal(t, model.RoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, "correct-horse", resp.User.PasswordHash)
}

func TestUserService_Register_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(new(MockUserRepository), testIssuer(), zerolog.Nop())

	tests := []struct {
		name string
		req  *model.RegisterRequest
	}{
		{"bad email", &model.RegisterRequest{Email: "nope", Password: "long-enough", FirstName: "A", LastName: "B"}},
		{"short password", &model.RegisterRequest{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"}},
		{"missing name", &model.RegisterRequest{Email: "a@b.com", Password: "long-enough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, testIssuer(), zerolog.Nop())

	userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(model.ErrEmailTaken)

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:     "taken@example.com",
		Password:  "long-enough",
		FirstName: "A",
		LastName:  "B",
	})

	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, testIssuer(), zerolog.Nop())

	hash, err := auth.HashPassword("the-right-one")
	require.NoError(t, err)

	user := &model.User{ID: uuid.New(), Email: "jamie@example.com", PasswordHash: hash}
	userRepo.On("GetByEmail", ctx, "jamie@example.com").Return(user, nil)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "jamie@example.com", Password: "the-wrong-one"})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, testIssuer(), zerolog.Nop())

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

	_, err := svc.Login(ctx, &model.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUserService_Refresh_RoundTrip(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	issuer := testIssuer()
	svc := NewUserService(userRepo, issuer, zerolog.Nop())

	user := &model.User{ID: uuid.New(), Email: "jamie@example.com", Role: model.RoleCustomer}
	refresh, err := issuer.GenerateRefreshToken(user.ID)
	require.NoError(t, err)

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	resp, err := svc.Refresh(ctx, refresh)

	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestUserService_Refresh_RejectsGarbageToken(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(new(MockUserRepository), testIssuer(), zerolog.Nop())

	_, err := svc.Refresh(ctx, "not-a-token")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

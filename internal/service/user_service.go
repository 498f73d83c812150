package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solesnaps-api/internal/auth"
	"solesnaps-api/internal/model"
	"solesnaps-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account and issues a token pair. New accounts always
// get the customer role; admins are promoted out of band.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Msg("user registered")

	return s.tokenResponse(user)
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password produce the same error.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Msg("user logged in")

	return s.tokenResponse(user)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	userID, err := s.issuer.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

// GetProfile retrieves the user's profile.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) tokenResponse(user *model.User) (*model.AuthResponse, error) {
	access, err := s.issuer.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.issuer.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.AuthResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func validateRegisterRequest(req *model.RegisterRequest) error {
	if req == nil {
		return model.NewValidationError("registration request is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return model.NewValidationError("a valid email is required")
	}
	if len(req.Password) < 8 {
		return model.NewValidationError("password must be at least 8 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return model.NewValidationError("first and last name are required")
	}
	return nil
}

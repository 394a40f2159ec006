package usecase

import (
	"context"
	"fmt"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/apperror"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*response.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwt      *utils.JWTManager
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, jwt *utils.JWTManager, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwt:      jwt,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperror.NewValidationError(errs)
	}

	// 2. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Same answer for unknown email and wrong password
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("%w: account is deactivated", apperror.ErrForbidden)
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	claims, err := s.jwt.ParseRefresh(req.RefreshToken)
	if err != nil {
		s.log.Warn("Invalid refresh token", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnauthorized, err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnauthorized, err)
	}

	// role or status may have changed since the token was issued
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("%w: account unavailable", apperror.ErrUnauthorized)
	}

	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", apperror.ErrNotFound, userID)
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	pair, err := s.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to generate tokens", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	return &response.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
		User:         response.UserToResponse(user),
	}, nil
}

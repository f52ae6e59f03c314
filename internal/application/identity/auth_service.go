package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
)

// AuthService handles login, token refresh and password changes
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	authConfig config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	authConfig config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		authConfig: authConfig,
		logger:     logger,
	}
}

// Login verifies credentials and issues a token pair.
// Failed attempts count toward the account lockout.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Do not reveal whether the username exists
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid username or password")
	}

	if user.Status == identity.UserStatusDeactivated {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "account has been deactivated")
	}
	if user.IsLocked() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "account is temporarily locked, try again later")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.authConfig.MaxLoginAttempts, s.authConfig.LockDuration)
		if saveErr := s.userRepo.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to record login failure",
				zap.String("username", user.Username),
				zap.Error(saveErr))
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("username", user.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "account is temporarily locked, try again later")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "invalid username or password")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login success",
			zap.String("username", user.Username),
			zap.Error(err))
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "failed to generate tokens")
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))

	return &LoginResult{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh validates a refresh token and issues a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.CanLogin() {
		return nil, shared.ErrUnauthorized
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "failed to generate tokens")
	}
	return tokens, nil
}

// ChangePassword lets a signed-in user rotate their own password
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Me returns the profile of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID string) (*UserResponse, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

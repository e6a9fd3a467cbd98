package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lensflow/backend/internal/domain/identity"
	"github.com/lensflow/backend/internal/domain/shared"
	"github.com/lensflow/backend/internal/infrastructure/auth"
)

// AuthConfig carries login lockout policy
type AuthConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultAuthConfig returns the default lockout policy
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	users     identity.UserRepository
	companies identity.CompanyRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	cfg       AuthConfig
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	companies identity.CompanyRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	cfg AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		jwt:       jwt,
		blacklist: blacklist,
		cfg:       cfg,
		logger:    logger,
	}
}

// Register creates a company and its chairman account, then logs them in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	_, err = s.companies.FindByName(ctx, req.CompanyName)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A company with this name already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	company, err := identity.NewCompany(req.CompanyName, req.Email)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(company.ID, req.Email, req.Name, req.Password, identity.RoleChairman)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("company registered",
		zap.String("company_id", company.ID.String()),
		zap.String("user_id", user.ID.String()))

	return s.issueTokens(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.IsLocked() {
			s.logger.Warn("login attempt on locked account", zap.String("user_id", user.ID.String()))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked, try again later")
		}
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	company, err := s.companies.FindByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive() {
		return nil, shared.NewDomainError("COMPANY_SUSPENDED", "Company account is suspended")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.cfg.MaxLoginAttempts, s.cfg.LockDuration)
		if err := s.users.Save(ctx, user); err != nil {
			s.logger.Error("failed to record login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("account locked after repeated failures",
				zap.String("user_id", user.ID.String()),
				zap.Int("attempts", s.cfg.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed attempts, account has been locked")
		}
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLoginSuccess(ip)
	if err := s.users.Save(ctx, user); err != nil {
		// login still succeeds, the stamp is best effort
		s.logger.Error("failed to record login success", zap.Error(err))
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new pair. The old
// refresh token's JTI is blacklisted so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if revoked {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Refresh token has been revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	pair, err := s.jwt.RefreshTokenPair(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	if err := s.revokeClaims(ctx, claims); err != nil {
		s.logger.Warn("failed to revoke rotated refresh token", zap.Error(err))
	}

	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the caller's access token and, when provided, the
// matching refresh token
func (s *AuthService) Logout(ctx context.Context, accessClaims *auth.Claims, refreshToken string) error {
	if err := s.revokeClaims(ctx, accessClaims); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke token")
	}

	if refreshToken != "" {
		refreshClaims, err := s.jwt.ValidateRefreshToken(refreshToken)
		if err != nil {
			// already unusable, nothing to revoke
			s.logger.Debug("logout with invalid refresh token", zap.Error(err))
			return nil
		}
		if err := s.revokeClaims(ctx, refreshClaims); err != nil {
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke refresh token")
		}
	}

	s.logger.Info("user logged out", zap.String("user_id", accessClaims.UserID))
	return nil
}

// CurrentUser returns the authenticated user's profile
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword changes the caller's own password and revokes all of
// their outstanding tokens
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwt.GetRefreshTokenExpiration()); err != nil {
		s.logger.Warn("failed to invalidate sessions after password change", zap.Error(err))
	}
	return nil
}

func (s *AuthService) issueTokens(user *identity.User) (*AuthResponse, error) {
	pair, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		CompanyID: user.CompanyID,
		BranchID:  user.BranchID,
		UserID:    user.ID,
		Username:  user.Email,
		Role:      user.Role,
	})
	if err != nil {
		s.logger.Error("failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  *ToUserResponse(user),
	}, nil
}

// revokeClaims blacklists a token's JTI for its remaining lifetime
func (s *AuthService) revokeClaims(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum refresh count exceeded, log in again")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}

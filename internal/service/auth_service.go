package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/print-shop/internal/auth"
	"github.com/spec-kit/print-shop/internal/config"
	"github.com/spec-kit/print-shop/internal/domain"
	"github.com/spec-kit/print-shop/internal/events"
	"github.com/spec-kit/print-shop/internal/store"
	apperrors "github.com/spec-kit/print-shop/pkg/util"
)

// AuthService coordinates registration, login, admin bootstrap, and the
// session-refresh protocol against the user store.
type AuthService struct {
	users       store.UserStore
	tokenMgr    *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
	setupSecret string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserStore  store.UserStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserStore,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTLDays),
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		bcryptCost:  cfg.Auth.BcryptCost,
		setupSecret: cfg.Auth.SetupSecret,
	}
}

// Authenticate verifies credentials and issues a session token. Failures are
// reported with a generic message that does not reveal which part of the
// credential was wrong.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, string, time.Time, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("login rejected: unknown email", zap.String("email", store.NormalizeEmail(email)))
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.logger.Warn("login rejected: password mismatch", zap.String("email", user.Email))
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.logger.Info("login succeeded",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	identity := user.Identity()
	return &identity, token, exp, nil
}

// RegisterCustomer creates a customer account.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.createUser(ctx, name, email, password, domain.RoleCustomer)
}

// CreateAdminUser creates an additional admin account. Callers gate this
// behind the admin role; the one-time bootstrap path is CreateAdminAccount.
func (s *AuthService) CreateAdminUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.createUser(ctx, name, email, password, domain.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user, err := s.users.Create(ctx, name, email, hash, role)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user created",
		zap.String("email", user.Email),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			EntityID:  user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Email: user.Email, Role: user.Role},
		})
	}

	return user, nil
}

// CreateAdminAccount is the one-time admin bootstrap. It requires the
// out-of-band setup secret and refuses once any admin exists; the store-level
// scan is the gate, not the UI. The expected secret is never echoed back.
func (s *AuthService) CreateAdminAccount(ctx context.Context, email, password, name, setupSecret string) (*domain.User, error) {
	if setupSecret == "" || setupSecret != s.setupSecret {
		s.logger.Warn("admin bootstrap rejected: invalid setup secret", zap.String("email", store.NormalizeEmail(email)))
		return nil, apperrors.NewForbidden("admin setup not permitted")
	}

	hasAdmin, err := s.users.HasAdminAccount(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if hasAdmin {
		s.logger.Warn("admin bootstrap rejected: admin account already exists")
		return nil, apperrors.NewConflict("admin account already exists", nil)
	}

	return s.createUser(ctx, name, email, password, domain.RoleAdmin)
}

// RefreshSession is the forced-refresh hook: it re-fetches the user record
// and re-issues the token so the claims stop diverging from the store after
// a profile edit.
func (s *AuthService) RefreshSession(ctx context.Context, tokenStr string) (*domain.Identity, string, time.Time, error) {
	claims, err := s.tokenMgr.Parse(tokenStr)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("user not found")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.logger.Info("session refreshed", zap.String("user_id", user.ID))
	identity := user.Identity()
	return &identity, token, exp, nil
}

// UpdateProfile changes name/email on the backing record. The caller's token
// keeps serving the old values until it runs RefreshSession.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch domain.UserProfilePatch) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NewNotFound("user", nil)
		case errors.Is(err, store.ErrEmailTaken):
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("profile updated", zap.String("user_id", user.ID))
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.NewInternalError(err)
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		s.logger.Warn("password change rejected: password mismatch", zap.String("user_id", userID))
		return apperrors.NewUnauthorized("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

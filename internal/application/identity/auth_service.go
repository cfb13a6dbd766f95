package identity

import (
	"context"
	"errors"
	"time"

	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens. The role names a user holds are embedded
// as claims; they are looked up fresh at login, never cached.
type TokenIssuer interface {
	Generate(userID, userName string, roles []string) (token string, expiresAt time.Time, err error)
}

// LoginRequest carries the login credentials
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the identity it represents
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Roles     []string  `json:"roles"`
}

// AuthService handles authentication. Account-state gating is explicit: a
// deactivated or locked account is rejected with its own error code, never
// folded into invalid credentials.
type AuthService struct {
	users  identity.UserRepository
	issuer TokenIssuer
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, issuer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		issuer: issuer,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the clock, for tests
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Login authenticates the credentials and issues a token with the user's
// current role names as claims. Repeated failures lock the account.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	invalid := shared.NewDomainError(shared.CodeInvalidCredentials, "Invalid username or password")

	user, err := s.users.FindByUserName(ctx, req.UserName)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeNotFound {
			s.logger.Info("login failed, unknown username", zap.String("userName", req.UserName))
			return nil, invalid
		}
		s.logger.Error("login lookup failed", zap.String("userName", req.UserName), zap.Error(err))
		return nil, shared.ErrInternal
	}

	now := s.now()
	if err := user.CanLogin(now); err != nil {
		s.logger.Info("login rejected by account state",
			zap.String("userId", user.ID),
			zap.String("code", err.Code))
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		user.RecordLoginFailure(now)
		if saveErr := s.users.Save(ctx, user); saveErr != nil {
			s.logger.Error("failed to record login failure", zap.String("userId", user.ID), zap.Error(saveErr))
		}
		s.logger.Info("login failed, wrong password",
			zap.String("userId", user.ID),
			zap.Int("failedAttempts", user.FailedLoginAttempts))
		return nil, invalid
	}

	user.RecordLoginSuccess()
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("failed to record login success", zap.String("userId", user.ID), zap.Error(err))
		return nil, shared.ErrInternal
	}

	roles, err := s.users.FindRoles(ctx, user.ID)
	if err != nil {
		s.logger.Error("failed to load roles at login", zap.String("userId", user.ID), zap.Error(err))
		return nil, shared.ErrInternal
	}
	roleNames := make([]string, 0, len(roles))
	for i := range roles {
		if roles[i].IsActive {
			roleNames = append(roleNames, roles[i].Name)
		}
	}

	token, expiresAt, err := s.issuer.Generate(user.ID, user.UserName, roleNames)
	if err != nil {
		s.logger.Error("token generation failed", zap.String("userId", user.ID), zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("login succeeded",
		zap.String("userId", user.ID),
		zap.Strings("roles", roleNames))
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		UserName:  user.UserName,
		Roles:     roleNames,
	}, nil
}

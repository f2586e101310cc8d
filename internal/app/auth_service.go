package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/principal"
	"talenthub/internal/security"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// AuthService implements the auth provider contract the engine
// consumes: signUp/signIn with email and password, stateless sessions.
type AuthService struct {
	principals  principal.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
	accessTTL   time.Duration
}

func NewAuthService(principals principal.Repository, jwtProvider *security.JWTProvider, logger Logger, accessTTL time.Duration) *AuthService {
	return &AuthService{principals: principals, jwtProvider: jwtProvider, logger: logger, accessTTL: accessTTL}
}

type Session struct {
	Principal   *principal.Principal `json:"principal"`
	AccessToken string               `json:"access_token"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.NewValidationError("invalid credentials", map[string]string{"email": "a valid email is required"})
	}
	if len(password) < 8 {
		return nil, common.NewValidationError("invalid credentials", map[string]string{"password": "password must be at least 8 characters"})
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.principals.Create(ctx, email, hash)
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("principal registered user_id=%s", account.ID))
	return s.issueSession(account)
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.principals.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !security.VerifyPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	s.logInfo(fmt.Sprintf("principal logged in user_id=%s", account.ID))
	return s.issueSession(account)
}

// RefreshSession re-issues a token reflecting the principal's current
// role; clients call it after provisioning a profile.
func (s *AuthService) RefreshSession(ctx context.Context, principalID common.UUID) (*Session, error) {
	account, err := s.principals.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return s.issueSession(account)
}

func (s *AuthService) issueSession(account *principal.Principal) (*Session, error) {
	token, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate access token", err)
	}
	return &Session{Principal: account, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}

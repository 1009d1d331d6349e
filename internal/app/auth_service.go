package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/josecleyvison-eng/jau-emprega/internal/common"
	"github.com/josecleyvison-eng/jau-emprega/internal/security"
)

// AuthService verifies the single shared moderator credential and issues the
// expiring token every admin route requires.
type AuthService struct {
	passwordHash string
	jwt          *security.JWTProvider
	tokenTTL     time.Duration
	logger       *slog.Logger
}

func NewAuthService(passwordHash string, jwt *security.JWTProvider, tokenTTL time.Duration, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{passwordHash: passwordHash, jwt: jwt, tokenTTL: tokenTTL, logger: logger}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Login(_ context.Context, password string) (*LoginResult, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Warn("admin login rejected")
		return nil, common.NewError(common.CodeUnauthorized, "wrong password", err)
	}
	token, expiresAt, err := s.jwt.Generate(s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	s.logger.Info("admin logged in")
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

package services

import (
	"errors"

	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/security"
	"github.com/statecraft-labs/statecraft-go/pkg/config"
)

// ErrInvalidCredentials is returned when a sysop login fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates sysop tokens for the admin surface
// (state export/import, catalog mutation, log levels).
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new auth service
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the sysop password and issues a JWT. Disabled entirely when
// no SYSOP_PASSWORD is configured.
func (s *AuthService) Login(password string) (string, error) {
	if !security.VerifySysopPassword(password, config.SysopPassword) {
		if s.logger != nil {
			s.logger.Auth().Warn("Sysop login rejected")
		}
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateSysopToken(config.JWTSecret, config.SysopTokenTTL)
	if err != nil {
		return "", err
	}

	if s.logger != nil {
		s.logger.Auth().Info("Sysop login accepted")
	}
	return token, nil
}

// ValidateToken checks a sysop JWT.
func (s *AuthService) ValidateToken(token string) error {
	return security.ValidateSysopToken(token, config.JWTSecret)
}

// Package security contains identifier and token helpers
package security

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// GenerateULID returns a lexicographically sortable identifier for catalog entities.
func GenerateULID() string {
	return ulid.Make().String()
}

// GenerateSessionToken returns an opaque session identifier. UUIDv4 carries
// 122 bits of crypto/rand entropy, so tokens are not guessable and collisions
// are negligible.
func GenerateSessionToken() string {
	return uuid.NewString()
}

// GenerateSysopToken issues a signed JWT granting sysop access.
func GenerateSysopToken(jwtSecret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": "sysop",
		"iat":  time.Now().UTC().Unix(),
		"exp":  time.Now().UTC().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateSysopToken verifies a sysop JWT and its role claim.
func ValidateSysopToken(tokenString, jwtSecret string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}

	if role, _ := claims["role"].(string); role != "sysop" {
		return errors.New("insufficient role")
	}

	return nil
}

// VerifySysopPassword checks a candidate password against the configured
// secret. Bcrypt hashes (the recommended configuration) are compared with
// bcrypt; anything else falls back to a constant-time byte comparison for
// local development setups.
func VerifySysopPassword(candidate, configured string) bool {
	if configured == "" {
		return false
	}

	if len(configured) > 4 && (configured[:4] == "$2a$" || configured[:4] == "$2b$" || configured[:4] == "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(candidate)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(configured)) == 1
}

// HashPassword produces a bcrypt hash suitable for SYSOP_PASSWORD.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

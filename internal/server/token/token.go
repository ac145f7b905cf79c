// Package token issues and verifies the signed bearer tokens that
// authenticate API requests. Tokens are stateless: the server keeps no
// session table and a token stays valid until its expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed tokens, bad signatures and expired
// tokens alike. Callers must not be able to tell these apart.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 tokens with a process-wide secret
// loaded once at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue returns a signed token whose subject is the given username,
// expiring after the configured TTL.
func (s *Service) Issue(username string) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the token's subject.
func (s *Service) Verify(tokenString string) (string, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prostore/catalog-api/internal/core/domain"
	"github.com/prostore/catalog-api/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed identity tokens.
// Validity is purely a function of signature and expiration; there is
// no server-side revocation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService signing with secret. An empty
// secret is a configuration error: the server must refuse to start
// rather than issue unverifiable tokens.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token carrying the user's identity and role, expiring
// ttl from now.
func (s *TokenService) Issue(userID, role string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates token. Expired tokens yield
// domain.ErrTokenExpired; anything else malformed, tampered with, or
// signed differently yields domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{UserID: claims.Subject, Role: claims.Role}, nil
}

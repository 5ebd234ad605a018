// Package token issues and verifies the signed bearer tokens that carry a
// caller's identity and role between requests. Tokens are self-contained:
// nothing is persisted and there is no revocation list. Logout is a
// client-side discard, and the only way to replace an expired token is to
// log in again.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, or expired. Callers must not be able to tell which.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the identity extracted from a verified token.
type Principal struct {
	Email string
	Role  string
}

// Claims is the token payload: subject carries the email, Role the
// coarse-grained role used for route-level authorization.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies access tokens with a symmetric key.
type Service struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewService builds a token service. secret is used as raw HMAC key bytes;
// issuer is embedded as an informational claim and not checked on verify.
func NewService(secret, issuer string, ttl time.Duration) *Service {
	return &Service{
		key:    []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to simulate expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Issue mints a signed token for the given email and role, valid from now
// until now plus the configured lifetime.
func (s *Service) Issue(email, role string) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks the signature and expiry of tokenStr and returns the
// principal it carries. All failure modes collapse into ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (Principal, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// HMAC only, to block algorithm-confusion tokens.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Email: claims.Subject, Role: claims.Role}, nil
}

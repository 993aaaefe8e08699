package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS512-signed bearer tokens. The signing
// secret is injected at construction and shared by every instance method;
// rotating it invalidates all outstanding tokens at once. All methods are
// pure and safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate returns a signed token whose subject is the given identifier,
// issued now and expiring after the configured TTL.
func (s *TokenService) Generate(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Subject parses and signature-verifies a token and returns its subject
// claim. Errors propagate to the caller: a malformed, tampered, or expired
// token never yields a subject.
func (s *TokenService) Subject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	return claims.Subject, nil
}

// Validate reports whether a token is correctly signed and not yet expired.
// The expiry boundary is exclusive: a token expiring exactly now is invalid.
// Parse errors, signature mismatches, and expiry all collapse to false; this
// method never fails any other way, which is all the authorization gate
// needs — every failure is answered identically.
func (s *TokenService) Validate(token string) bool {
	_, err := s.parse(token)
	return err == nil
}

func (s *TokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 10 * time.Hour

// MinSecretLength is the shortest HS256 key accepted, in bytes.
const MinSecretLength = 32

// TokenService signs HS256 JWTs carrying sub, iat and exp. The key is fixed
// at construction, so a TokenService is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
	now    func() time.Time
}

var _ ports.TokenService = (*TokenService)(nil)

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		// Expiry is inspected separately by IsExpired.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}, nil
}

func (s *TokenService) Issue(username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", domain.ErrInvalidUsername
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// ExtractSubject verifies the signature and returns the subject. Malformed,
// foreign-algorithm and tampered tokens all yield domain.ErrInvalidToken.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// IsExpired reports whether the token's expiration lies in the past. A
// token without an expiration is treated as expired.
func (s *TokenService) IsExpired(token string) (bool, error) {
	claims, err := s.parse(token)
	if err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		return true, nil
	}
	return claims.ExpiresAt.Time.Before(s.now()), nil
}

func (s *TokenService) Validate(token, expectedUsername string) bool {
	subject, err := s.ExtractSubject(token)
	if err != nil || subject != expectedUsername {
		return false
	}
	expired, err := s.IsExpired(token)
	return err == nil && !expired
}

func (s *TokenService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

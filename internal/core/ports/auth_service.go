package ports

import (
	"context"

	"github.com/paydesk/payment-service/internal/core/domain"
)

// TokenService issues and inspects signed identity tokens.
type TokenService interface {
	Issue(username string) (string, error)
	ExtractSubject(token string) (string, error)
	IsExpired(token string) (bool, error)
	Validate(token, expectedUsername string) bool
}

// UserDirectory resolves usernames to accounts and their authorities.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Authorities(user *domain.User) []string
}

// AuthService handles the login endpoint.
type AuthService interface {
	Login(ctx context.Context, username string) (string, error)
}

// Authenticator turns an Authorization header into an AuthResult. It never
// fails: every problem is reported through the result.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) domain.AuthResult
}

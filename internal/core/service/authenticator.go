package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// BearerPrefix is the literal scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "

// Authenticator implements the token gate. Authorization is decided later,
// from the AuthResult it produces.
type Authenticator struct {
	tokens ports.TokenService
	users  ports.UserDirectory
	log    zerolog.Logger
}

var _ ports.Authenticator = (*Authenticator)(nil)

func NewAuthenticator(tokens ports.TokenService, users ports.UserDirectory, log zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

func (a *Authenticator) Authenticate(ctx context.Context, authorization string) domain.AuthResult {
	if !strings.HasPrefix(authorization, BearerPrefix) {
		return domain.NotAuthenticated()
	}
	token := authorization[len(BearerPrefix):]

	subject, err := a.tokens.ExtractSubject(token)
	if err != nil {
		a.log.Debug().Err(err).Msg("token rejected")
		return domain.InvalidCredential(domain.ErrInvalidToken)
	}

	user, err := a.users.FindByUsername(ctx, subject)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			a.log.Error().Err(err).Str("username", subject).Msg("user lookup failed")
			return domain.InvalidCredential(err)
		}
		a.log.Debug().Str("username", subject).Msg("token subject not found")
		return domain.InvalidCredential(domain.ErrUserNotFound)
	}

	if !a.tokens.Validate(token, user.Username) {
		return domain.InvalidCredential(domain.ErrTokenExpired)
	}

	return domain.AuthenticatedAs(&domain.Principal{
		Username:    user.Username,
		Authorities: a.users.Authorities(user),
	})
}

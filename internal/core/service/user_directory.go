package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// UserDirectory resolves accounts and the authorities they grant.
type UserDirectory struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

var _ ports.UserDirectory = (*UserDirectory)(nil)

func NewUserDirectory(repo ports.UserRepository, log zerolog.Logger) *UserDirectory {
	return &UserDirectory{repo: repo, log: log}
}

// FindByUsername returns domain.ErrUserNotFound for unknown usernames.
func (d *UserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := d.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Authorities maps each role 1:1 to an authority. There is no hierarchy.
func (d *UserDirectory) Authorities(user *domain.User) []string {
	if user == nil {
		return nil
	}
	out := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Provision creates the user with a bcrypt password hash unless the username
// is already taken, in which case the stored account is returned unchanged.
func (d *UserDirectory) Provision(ctx context.Context, username, password string, roles []string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	existing, err := d.repo.FindByUsername(ctx, username)
	if err == nil {
		d.log.Debug().Str("username", username).Msg("user already provisioned")
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	created, err := d.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	d.log.Info().Str("username", username).Strs("roles", roles).Msg("user provisioned")
	return created, nil
}

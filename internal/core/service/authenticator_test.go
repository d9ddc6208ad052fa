package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
)

func newTestAuthenticator(t *testing.T, users ...*domain.User) (*Authenticator, *TokenService, *stubUserRepo) {
	t.Helper()
	tokens := newTestTokenService(t)
	repo := newStubUserRepo(users...)
	return NewAuthenticator(tokens, NewUserDirectory(repo, zerolog.Nop()), zerolog.Nop()), tokens, repo
}

func TestAuthenticator_ValidToken(t *testing.T) {
	auth, tokens, _ := newTestAuthenticator(t, &domain.User{
		Username: "alice",
		Roles:    []string{domain.RoleUser, domain.RoleAdmin},
	})
	token, _ := tokens.Issue("alice")

	res := auth.Authenticate(context.Background(), "Bearer "+token)
	if res.Status != domain.Authenticated {
		t.Fatalf("expected authenticated, got %v (%v)", res.Status, res.Reason)
	}
	if res.Principal.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", res.Principal)
	}
	if want := []string{domain.RoleAdmin, domain.RoleUser}; !slices.Equal(res.Principal.Authorities, want) {
		t.Fatalf("authorities = %v, want %v", res.Principal.Authorities, want)
	}
}

func TestAuthenticator_NoCredential(t *testing.T) {
	auth, tokens, _ := newTestAuthenticator(t, &domain.User{Username: "alice"})
	token, _ := tokens.Issue("alice")

	for _, header := range []string{"", "Token abc", "bearer " + token, "Bearer", "Basic YWxpY2U6cHc="} {
		res := auth.Authenticate(context.Background(), header)
		if res.Status != domain.Unauthenticated {
			t.Fatalf("header %q: expected unauthenticated, got %v", header, res.Status)
		}
		if res.Principal != nil {
			t.Fatalf("header %q: unexpected principal", header)
		}
	}
}

func TestAuthenticator_InvalidToken(t *testing.T) {
	auth, _, _ := newTestAuthenticator(t, &domain.User{Username: "alice"})

	res := auth.Authenticate(context.Background(), "Bearer not-a-token")
	if res.Status != domain.Invalid || !errors.Is(res.Reason, domain.ErrInvalidToken) {
		t.Fatalf("expected invalid token result, got %+v", res)
	}
}

func TestAuthenticator_UnknownUser(t *testing.T) {
	auth, tokens, _ := newTestAuthenticator(t)
	token, _ := tokens.Issue("ghost")

	res := auth.Authenticate(context.Background(), "Bearer "+token)
	if res.Status != domain.Invalid || !errors.Is(res.Reason, domain.ErrUserNotFound) {
		t.Fatalf("expected user-not-found result, got %+v", res)
	}
}

func TestAuthenticator_ExpiredToken(t *testing.T) {
	auth, tokens, _ := newTestAuthenticator(t, &domain.User{Username: "alice"})
	tokens.now = func() time.Time { return time.Now().Add(-11 * time.Hour) }
	token, _ := tokens.Issue("alice")
	tokens.now = time.Now

	res := auth.Authenticate(context.Background(), "Bearer "+token)
	if res.Status != domain.Invalid || !errors.Is(res.Reason, domain.ErrTokenExpired) {
		t.Fatalf("expected expired result, got %+v", res)
	}
}

func TestAuthenticator_StorageFailure(t *testing.T) {
	auth, tokens, repo := newTestAuthenticator(t, &domain.User{Username: "alice"})
	repo.findErr = errBoom
	token, _ := tokens.Issue("alice")

	res := auth.Authenticate(context.Background(), "Bearer "+token)
	if res.Status != domain.Invalid || !errors.Is(res.Reason, errBoom) {
		t.Fatalf("expected storage failure to degrade to invalid, got %+v", res)
	}
}

func TestAuthenticator_RolesResolvedPerRequest(t *testing.T) {
	auth, tokens, repo := newTestAuthenticator(t, &domain.User{Username: "alice", Roles: []string{domain.RoleUser}})
	token, _ := tokens.Issue("alice")

	first := auth.Authenticate(context.Background(), "Bearer "+token)

	repo.mu.Lock()
	repo.users["alice"].Roles = []string{domain.RoleAdmin}
	repo.mu.Unlock()

	second := auth.Authenticate(context.Background(), "Bearer "+token)
	if !first.Principal.HasAuthority(domain.RoleUser) || !second.Principal.HasAuthority(domain.RoleAdmin) {
		t.Fatalf("authorities must come from the directory at lookup time: %v then %v",
			first.Principal.Authorities, second.Principal.Authorities)
	}
}

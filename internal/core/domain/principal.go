package domain

import "slices"

// Principal is the identity resolved for a single request.
type Principal struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// HasAuthority reports whether the principal was granted authority a.
func (p *Principal) HasAuthority(a string) bool {
	return p != nil && slices.Contains(p.Authorities, a)
}

// AuthStatus is the outcome of authenticating one request.
type AuthStatus int

const (
	// Unauthenticated means no bearer credential was presented.
	Unauthenticated AuthStatus = iota
	// Authenticated means the credential resolved to a Principal.
	Authenticated
	// Invalid means a credential was presented but rejected; Reason says why.
	Invalid
)

func (s AuthStatus) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Invalid:
		return "invalid"
	default:
		return "unauthenticated"
	}
}

// AuthResult is produced by the authentication gate and consumed by the
// authorization policy.
type AuthResult struct {
	Status    AuthStatus
	Principal *Principal
	Reason    error
}

func AuthenticatedAs(p *Principal) AuthResult {
	return AuthResult{Status: Authenticated, Principal: p}
}

func NotAuthenticated() AuthResult {
	return AuthResult{Status: Unauthenticated}
}

func InvalidCredential(reason error) AuthResult {
	return AuthResult{Status: Invalid, Reason: reason}
}

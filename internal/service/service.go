// Package service implements the token lifecycle for the auth server:
// credential checks, access and refresh token issuance, refresh exchange, and
// revocation. It depends on storage interfaces and delegates persistence to
// them.
package service

import (
	"errors"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/policy"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenNotFound      = errors.New("token not found")
	ErrConflict           = errors.New("duplicate unique field")
	ErrInternal           = errors.New("internal error")
)

// Identity is a reference to an account row. The account store owns it; this
// package reads it and never writes it back.
type Identity struct {
	ID       string
	Username string
	Roles    []string
}

// Credentials is the outcome of a successful login or refresh.
// RefreshToken is empty on refresh unless rotation is enabled.
type Credentials struct {
	TokenType    string
	AccessToken  string
	ExpiresIn    int
	RefreshToken string
}

// Service coordinates authentication and token operations.
type Service struct {
	identities IdentityStore
	refreshes  RefreshStore
	issuer     *tokens.Issuer
	roles      policy.Roles

	// rotateRefresh is an explicit policy choice, off by default: a refresh
	// token stays valid for repeated refresh calls until expiry or logout.
	rotateRefresh bool
}

type Option func(*Service)

// WithRefreshRotation makes every successful refresh revoke the presented
// token and hand back a replacement.
func WithRefreshRotation() Option {
	return func(s *Service) { s.rotateRefresh = true }
}

func New(
	identities IdentityStore,
	refreshes RefreshStore,
	issuer *tokens.Issuer,
	roles policy.Roles,
	opts ...Option,
) *Service {
	s := &Service{
		identities: identities,
		refreshes:  refreshes,
		issuer:     issuer,
		roles:      roles,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

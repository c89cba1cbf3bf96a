// Package testutil provides test environment setup and utilities for internal
// package tests.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/api"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/database"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/policy"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/ratelimit"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

// TestIssuer matches the issuer claim minted by test environments.
const TestIssuer = "jwt-auth-service"

var (
	sharedSigningKey     *rsa.PrivateKey
	sharedSigningKeyOnce sync.Once
)

// SharedSigningKey returns a cached RSA key for tests. Generating one per
// test would dominate the test runtime.
func SharedSigningKey() *rsa.PrivateKey {
	sharedSigningKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic("failed to generate shared signing key: " + err.Error())
		}
		sharedSigningKey = key
	})
	return sharedSigningKey
}

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	Store      *database.SQLiteStore
	Service    *service.Service
	Router     http.Handler
	Issuer     *tokens.Issuer
	Verifier   *tokens.Verifier
	SigningKey *rsa.PrivateKey
}

// SetupTestEnv creates an isolated environment backed by an in-memory SQLite
// database. Service options (e.g. refresh rotation) can be passed through.
func SetupTestEnv(
	t *testing.T,
	opts ...service.Option,
) *TestEnv {
	t.Helper()

	// a named shared-cache DSN keeps every pooled connection on the same
	// in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	store, err := database.NewSQLiteStore(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	signingKey := SharedSigningKey()
	issuer := tokens.NewIssuer(signingKey, TestIssuer)
	verifier := tokens.NewVerifier(&signingKey.PublicKey)

	svc := service.New(
		store.IdentityStore(),
		store.RefreshStore(),
		issuer,
		policy.DefaultRoles,
		opts...,
	)

	limiter := ratelimit.NewFixedWindow(ratelimit.DefaultLimit, ratelimit.DefaultWindow)
	a := api.New(svc, verifier, limiter)

	return &TestEnv{
		Store:      store,
		Service:    svc,
		Router:     a.Router(),
		Issuer:     issuer,
		Verifier:   verifier,
		SigningKey: signingKey,
	}
}

// RegisterTestUser creates an identity row and returns its id.
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	username string,
	password string,
) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	id := uuid.NewString()
	if err := env.Store.InsertIdentity(id, username, hash); err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
	return id
}

// StoreTestRefreshToken mints and stores a refresh token with the given
// expiration, bypassing the login flow.
func (env *TestEnv) StoreTestRefreshToken(
	t *testing.T,
	ownerID string,
	expiration time.Time,
) string {
	t.Helper()
	token, err := tokens.MintRefreshToken()
	if err != nil {
		t.Fatalf("failed to mint test refresh token: %v", err)
	}
	if err := env.Store.InsertRefreshToken(ownerID, token, expiration); err != nil {
		t.Fatalf("failed to store test refresh token: %v", err)
	}
	return token
}

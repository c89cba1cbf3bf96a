package tokens

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	testKey     *rsa.PrivateKey
	testKeyOnce sync.Once
)

// testSigningKey returns a cached RSA key; generating one per test would
// dominate the test runtime.
func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic("failed to generate test signing key: " + err.Error())
		}
		testKey = key
	})
	return testKey
}

func TestMintAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	key := testSigningKey(t)

	issuer := NewIssuer(key, "jwt-auth-service")
	verifier := NewVerifier(&key.PublicKey)

	signed, err := issuer.MintAccessToken("alice", []string{"user", "admin"})
	if err != nil {
		t.Fatalf("MintAccessToken error: %v", err)
	}

	claims, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	if claims.Subject != "alice" {
		t.Errorf("subject mismatch: got %q want %q", claims.Subject, "alice")
	}
	if claims.Issuer != "jwt-auth-service" {
		t.Errorf("issuer mismatch: got %q", claims.Issuer)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "user" || claims.Roles[1] != "admin" {
		t.Errorf("roles mismatch: got %v", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("expected a jti claim")
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != AccessTokenLifetime {
		t.Errorf("lifetime mismatch: got %v want %v", lifetime, AccessTokenLifetime)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	key := testSigningKey(t)

	issuedAt := time.Unix(1700000000, 0)
	issuer := NewIssuer(key, "jwt-auth-service")
	issuer.now = func() time.Time { return issuedAt }

	signed, err := issuer.MintAccessToken("alice", []string{"user"})
	if err != nil {
		t.Fatalf("MintAccessToken error: %v", err)
	}

	// one second inside the window: still valid
	verifier := NewVerifier(&key.PublicKey)
	verifier.now = func() time.Time { return issuedAt.Add(899 * time.Second) }
	if _, err := verifier.Verify(signed); err != nil {
		t.Fatalf("expected token valid at iat+899s, got %v", err)
	}

	// a millisecond past expiry: expired, not invalid
	verifier.now = func() time.Time { return issuedAt.Add(900*time.Second + time.Millisecond) }
	_, err = verifier.Verify(signed)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at iat+900s+1ms, got %v", err)
	}
}

func TestVerify_NoneAlgorithmRejected(t *testing.T) {
	t.Parallel()
	key := testSigningKey(t)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build alg=none token: %v", err)
	}

	verifier := NewVerifier(&key.PublicKey)
	_, err = verifier.Verify(unsigned)
	if !errors.Is(err, ErrAlgorithmRejected) {
		t.Fatalf("expected ErrAlgorithmRejected for alg=none, got %v", err)
	}
}

func TestVerify_HMACAlgorithmRejected(t *testing.T) {
	t.Parallel()
	key := testSigningKey(t)

	// symmetric-confusion variant: HS256 keyed on public material must be
	// rejected on algorithm alone, never verified
	confused, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to build HS256 token: %v", err)
	}

	verifier := NewVerifier(&key.PublicKey)
	_, err = verifier.Verify(confused)
	if !errors.Is(err, ErrAlgorithmRejected) {
		t.Fatalf("expected ErrAlgorithmRejected for HS256, got %v", err)
	}
}

func TestVerify_WrongKeySignature(t *testing.T) {
	t.Parallel()

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	issuer := NewIssuer(otherKey, "jwt-auth-service")
	signed, err := issuer.MintAccessToken("alice", []string{"user"})
	if err != nil {
		t.Fatalf("MintAccessToken error: %v", err)
	}

	verifier := NewVerifier(&testSigningKey(t).PublicKey)
	_, err = verifier.Verify(signed)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	verifier := NewVerifier(&testSigningKey(t).PublicKey)

	for _, tokenStr := range []string{"", "garbage", "not.a.jwt"} {
		_, err := verifier.Verify(tokenStr)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q): expected ErrTokenMalformed, got %v", tokenStr, err)
		}
	}
}

func TestMintRefreshToken(t *testing.T) {
	t.Parallel()

	first, err := MintRefreshToken()
	if err != nil {
		t.Fatalf("MintRefreshToken error: %v", err)
	}
	second, err := MintRefreshToken()
	if err != nil {
		t.Fatalf("MintRefreshToken error: %v", err)
	}

	if first == second {
		t.Fatal("two refresh tokens should never collide")
	}

	raw, err := base64.RawURLEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("refresh token is not base64url: %v", err)
	}
	if len(raw) != refreshTokenBytes {
		t.Fatalf("entropy mismatch: got %d bytes, want %d", len(raw), refreshTokenBytes)
	}
}

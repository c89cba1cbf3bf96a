package tokens

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates access tokens against the verification key. It holds no
// mutable state and is safe for unbounded concurrent use.
type Verifier struct {
	verificationKey *rsa.PublicKey
	now             func() time.Time
}

func NewVerifier(verificationKey *rsa.PublicKey) *Verifier {
	return &Verifier{
		verificationKey: verificationKey,
		now:             time.Now,
	}
}

// Verify checks a token's algorithm, signature, and time claims, returning
// the decoded claims on success. Failures normalize to one of
// ErrTokenMalformed, ErrAlgorithmRejected, ErrSignatureInvalid, and
// ErrTokenExpired so callers can answer differently for each.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		v.keyFunc,
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, normalizeVerifyError(err)
	}
	return claims, nil
}

// keyFunc enforces the single-algorithm allow-list. The check runs before any
// signature verification, so a token asserting "none" or an HMAC variant is
// rejected without ever touching the key material.
func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok || t.Method.Alg() != jwt.SigningMethodRS256.Alg() {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmRejected, t.Method.Alg())
	}
	return v.verificationKey, nil
}

func normalizeVerifyError(err error) error {
	switch {
	case errors.Is(err, ErrAlgorithmRejected):
		return ErrAlgorithmRejected
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

package tokens

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer mints signed access tokens. The signing key is injected once at
// construction and never read from disk here; loading failures are the entry
// point's problem, reported at startup.
type Issuer struct {
	signingKey *rsa.PrivateKey
	issuer     string
	now        func() time.Time
}

func NewIssuer(signingKey *rsa.PrivateKey, issuerName string) *Issuer {
	return &Issuer{
		signingKey: signingKey,
		issuer:     issuerName,
		now:        time.Now,
	}
}

// MintAccessToken signs a claim set for the subject with a fixed lifetime.
// Roles come from the caller's role policy, not from a literal here.
func (i *Issuer) MintAccessToken(subject string, roles []string) (string, error) {
	now := i.now()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenLifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("couldn't sign access token: %v", err)
	}
	return signed, nil
}

package service

import "time"

// IdentityStore handles persistence of account identity data.
type IdentityStore interface {
	InsertIdentity(id string, username string, secret []byte) error
	GetIdentity(username string) (*Identity, error)
	GetSecret(username string) (ownerID string, secret []byte, err error)
	GetUsername(ownerID string) (string, error)
}

// RefreshStore handles persistence of refresh token records. Implementations
// must keep the lookup-check-delete sequence in ConsumeRefreshToken atomic
// with respect to concurrent callers presenting the same token.
type RefreshStore interface {
	// InsertRefreshToken stores a new record. A token value collision
	// surfaces as ErrConflict; callers regenerate and retry.
	InsertRefreshToken(ownerID string, token string, expiration time.Time) error

	// ConsumeRefreshToken resolves a token to its owner. A token whose
	// expiry has passed is deleted and reported as ErrTokenExpired exactly
	// once; later calls see ErrTokenNotFound.
	ConsumeRefreshToken(token string) (ownerID string, err error)

	// DeleteRefreshToken revokes a single record. Absence is not an error.
	DeleteRefreshToken(token string) (deleted bool, err error)

	// DeleteRefreshTokensForOwner revokes every session of one identity.
	DeleteRefreshTokensForOwner(ownerID string) (count int64, err error)
}

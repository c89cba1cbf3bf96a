// Package tokens issues and verifies the credentials handed out by the auth
// server: RS256-signed access tokens carrying identity claims, and opaque
// refresh tokens that are only meaningful as persistent lookup keys.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrSignatureInvalid  = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrAlgorithmRejected = errors.New("token algorithm rejected")
)

const (
	// AccessTokenLifetime is fixed; an issued access token is never
	// revocable before it lapses.
	AccessTokenLifetime = 15 * time.Minute

	// RefreshTokenLifetime bounds how long a stored refresh token can keep
	// being exchanged for new access tokens.
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// Claims is the payload signed into every access token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

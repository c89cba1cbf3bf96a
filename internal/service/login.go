package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

// A collision on the ≥256-bit token value is astronomically rare; a couple of
// regenerations is plenty.
const refreshInsertAttempts = 3

// Login checks the credentials and, on success, mints an access/refresh token
// pair, persisting the refresh record.
func (s *Service) Login(username string, password string) (*Credentials, error) {
	identity, err := s.authenticate(username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.MintAccessToken(identity.Username, identity.Roles)
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't issue access token: %v", ErrInternal, err)
	}

	refreshToken, err := s.storeNewRefreshToken(identity.ID)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		ExpiresIn:    int(tokens.AccessTokenLifetime.Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) authenticate(username string, password string) (*Identity, error) {
	ownerID, secret, err := s.identities.GetSecret(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, username)
		}
		return nil, fmt.Errorf("%w: failed to retrieve secret: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(secret, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		ID:       ownerID,
		Username: username,
		Roles:    s.roles(username),
	}, nil
}

func (s *Service) storeNewRefreshToken(ownerID string) (string, error) {
	expiration := time.Now().Add(tokens.RefreshTokenLifetime)

	for attempt := 0; attempt < refreshInsertAttempts; attempt++ {
		token, err := tokens.MintRefreshToken()
		if err != nil {
			return "", fmt.Errorf("%w: couldn't mint refresh token: %v", ErrInternal, err)
		}

		err = s.refreshes.InsertRefreshToken(ownerID, token, expiration)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrConflict) {
			return "", fmt.Errorf("%w: failed to store refresh token: %v", ErrInternal, err)
		}
		// collision: regenerate and try again
	}

	return "", fmt.Errorf("%w: refresh token collision persisted after %d attempts",
		ErrInternal, refreshInsertAttempts)
}

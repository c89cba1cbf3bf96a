package service

import (
	"database/sql"
	"errors"
	"fmt"
)

// Logout revokes a single refresh token. Revoking a token that no longer
// exists is not an error; logout is idempotent. Already-issued access tokens
// stay valid until their fixed expiry — logout only prevents new ones.
func (s *Service) Logout(refreshToken string) error {
	if _, err := s.refreshes.DeleteRefreshToken(refreshToken); err != nil {
		return fmt.Errorf("%w: failed to delete refresh token: %v", ErrInternal, err)
	}
	return nil
}

// LogoutAll revokes every refresh token belonging to an identity, ending all
// of its concurrent sessions at once.
func (s *Service) LogoutAll(ownerID string) (int64, error) {
	count, err := s.refreshes.DeleteRefreshTokensForOwner(ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to delete refresh tokens: %v", ErrInternal, err)
	}
	return count, nil
}

// Profile returns the identity row for an authenticated username.
func (s *Service) Profile(username string) (*Identity, error) {
	identity, err := s.identities.GetIdentity(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, username)
		}
		return nil, fmt.Errorf("%w: failed to retrieve identity: %v", ErrInternal, err)
	}
	return identity, nil
}

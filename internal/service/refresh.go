package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/tokens"
)

// Refresh exchanges a stored refresh token for a new access token. The
// presented token keeps working until its expiry or an explicit logout,
// unless rotation is enabled, in which case it is replaced on every exchange.
func (s *Service) Refresh(refreshToken string) (*Credentials, error) {
	ownerID, err := s.refreshes.ConsumeRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) || errors.Is(err, ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: couldn't consume refresh token: %v", ErrInternal, err)
	}

	username, err := s.identities.GetUsername(ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: token owner no longer exists", ErrTokenInvalid)
		}
		return nil, fmt.Errorf("%w: failed to resolve token owner: %v", ErrInternal, err)
	}

	accessToken, err := s.issuer.MintAccessToken(username, s.roles(username))
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't issue access token: %v", ErrInternal, err)
	}

	creds := &Credentials{
		TokenType:   "Bearer",
		AccessToken: accessToken,
		ExpiresIn:   int(tokens.AccessTokenLifetime.Seconds()),
	}

	if s.rotateRefresh {
		if _, err := s.refreshes.DeleteRefreshToken(refreshToken); err != nil {
			return nil, fmt.Errorf("%w: couldn't rotate refresh token: %v", ErrInternal, err)
		}
		replacement, err := s.storeNewRefreshToken(ownerID)
		if err != nil {
			return nil, err
		}
		creds.RefreshToken = replacement
	}

	return creds, nil
}

package database

import (
	"fmt"
	"time"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
)

func (s *SQLiteStore) InsertIdentity(
	id string,
	username string,
	secret []byte,
) error {
	_, err := s.db.Exec(`
		INSERT INTO identity (id, username, secret, created_at)
		VALUES (?1, ?2, ?3, ?4);`,
		id,
		username,
		secret,
		time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q", service.ErrConflict, username)
		}
		return fmt.Errorf("couldn't insert into identity: %v", err)
	}
	return nil
}

func (s *SQLiteStore) GetIdentity(
	username string,
) (
	*service.Identity,
	error,
) {
	row := s.db.QueryRow(`
		SELECT id, username
		FROM identity
		WHERE username=?1;`,
		username,
	)

	identity := &service.Identity{}
	if err := row.Scan(&identity.ID, &identity.Username); err != nil {
		return nil, err
	}
	return identity, nil
}

func (s *SQLiteStore) GetSecret(
	username string,
) (
	string,
	[]byte,
	error,
) {
	row := s.db.QueryRow(`
		SELECT id, secret
		FROM identity
		WHERE username=?1;`,
		username,
	)

	var ownerID string
	var secret []byte
	if err := row.Scan(&ownerID, &secret); err != nil {
		return "", nil, err
	}
	return ownerID, secret, nil
}

func (s *SQLiteStore) GetUsername(
	ownerID string,
) (
	string,
	error,
) {
	row := s.db.QueryRow(`
		SELECT username
		FROM identity
		WHERE id=?1;`,
		ownerID,
	)

	var username string
	if err := row.Scan(&username); err != nil {
		return "", err
	}
	return username, nil
}

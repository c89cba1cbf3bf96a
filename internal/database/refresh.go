package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
)

func (s *SQLiteStore) InsertRefreshToken(
	ownerID string,
	token string,
	expiration time.Time,
) error {
	_, err := s.db.Exec(`
		INSERT INTO refresh (owner, token, expiration, created_at)
		VALUES (?1, ?2, ?3, ?4);`,
		ownerID,
		token,
		expiration.Unix(),
		time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: refresh token value collision", service.ErrConflict)
		}
		return fmt.Errorf("couldn't insert into refresh: %v", err)
	}
	return nil
}

// ConsumeRefreshToken resolves a token to its owner, deleting the record when
// its expiry has passed. The whole sequence runs in one transaction, and the
// conditional delete comes first: the write acquires the database lock up
// front, so two callers racing on the same expired token serialize here and
// only one of them observes the row.
func (s *SQLiteStore) ConsumeRefreshToken(
	token string,
) (
	string,
	error,
) {
	now := time.Now().Unix()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("couldn't begin refresh transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		DELETE FROM refresh
		WHERE token=?1 AND expiration<=?2;`,
		token,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("couldn't delete expired refresh token: %v", err)
	}
	if !resultsEmpty(result) {
		if err := tx.Commit(); err != nil {
			return "", fmt.Errorf("couldn't commit refresh transaction: %v", err)
		}
		return "", service.ErrTokenExpired
	}

	row := tx.QueryRow(`
		SELECT owner
		FROM refresh
		WHERE token=?1;`,
		token,
	)

	var owner string
	if err := row.Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", service.ErrTokenNotFound
		}
		return "", fmt.Errorf("couldn't scan refresh owner: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("couldn't commit refresh transaction: %v", err)
	}
	return owner, nil
}

func (s *SQLiteStore) DeleteRefreshToken(
	token string,
) (
	bool,
	error,
) {
	result, err := s.db.Exec(`
		DELETE FROM refresh
		WHERE token=?1;`,
		token,
	)
	if err != nil {
		return false, fmt.Errorf("couldn't delete from refresh: %v", err)
	}

	deleted := !resultsEmpty(result)
	return deleted, nil
}

func (s *SQLiteStore) DeleteRefreshTokensForOwner(
	ownerID string,
) (
	int64,
	error,
) {
	result, err := s.db.Exec(`
		DELETE FROM refresh
		WHERE owner=?1;`,
		ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("couldn't delete from refresh: %v", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return count, nil
}

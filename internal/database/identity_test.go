package database_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/NagaSaiTejo/Secure-JWT-auth-rs256/internal/service"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	id := uuid.NewString()
	require.NoError(t, store.InsertIdentity(id, "alice", []byte("hash")))

	identity, err := store.GetIdentity("alice")
	require.NoError(t, err)
	require.Equal(t, id, identity.ID)
	require.Equal(t, "alice", identity.Username)

	ownerID, secret, err := store.GetSecret("alice")
	require.NoError(t, err)
	require.Equal(t, id, ownerID)
	require.Equal(t, []byte("hash"), secret)

	username, err := store.GetUsername(id)
	require.NoError(t, err)
	require.Equal(t, "alice", username)
}

func TestInsertIdentity_DuplicateUsername(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	require.NoError(t, store.InsertIdentity(uuid.NewString(), "alice", []byte("hash")))
	err := store.InsertIdentity(uuid.NewString(), "alice", []byte("other"))
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestGetIdentity_Unknown(t *testing.T) {
	t.Parallel()
	store := setupStore(t)

	_, err := store.GetIdentity("nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, _, err = store.GetSecret("nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.GetUsername(uuid.NewString())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

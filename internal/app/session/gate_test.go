package session

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

func setupGate(t *testing.T) (*Gate, *Session, *store.Accounts) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	accounts := store.NewAccounts(store.NewSQLiteRepository(db))
	sess := New()
	log := logging.NewZerologLogger(logging.Options{Output: io.Discard})
	gate := NewGate(accounts, auth.NewLocalDirectory(accounts), sess, log)
	return gate, sess, accounts
}

func storedUser(t *testing.T, accounts *store.Accounts, nationalID string) {
	t.Helper()
	err := accounts.Save(context.Background(), []models.UserRecord{{
		FullName:    "ANA",
		NationalID:  nationalID,
		PhoneNumber: "41999998888",
		Email:       "ana@example.com",
		Password:    "c2FsdA$a2V5",
		CreatedAt:   "2025-06-23T10:00:00Z",
	}})
	require.NoError(t, err)
}

func TestGate_NoMarkerDeniesAccess(t *testing.T) {
	gate, sess, _ := setupGate(t)

	ok, err := gate.Check(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, sess.Active())
}

func TestGate_MarkerWithRecordAllowsAccess(t *testing.T) {
	gate, sess, accounts := setupGate(t)
	ctx := context.Background()

	storedUser(t, accounts, "12345678901")
	require.NoError(t, accounts.SetSession(ctx, "12345678901"))

	ok, err := gate.Check(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, sess.Active())
	require.Equal(t, "12345678901", sess.NationalID())
	require.Equal(t, "ANA", sess.User().FullName)
}

func TestGate_VanishedRecordInvalidatesSession(t *testing.T) {
	gate, sess, accounts := setupGate(t)
	ctx := context.Background()

	require.NoError(t, accounts.SetSession(ctx, "12345678901"))

	ok, err := gate.Check(ctx)
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, sess.Active())

	marker, err := accounts.Session(ctx)
	require.NoError(t, err)
	require.Empty(t, marker, "dangling marker must be cleared")
}

func TestSession_UserReturnsCopy(t *testing.T) {
	sess := New()
	sess.Set(&models.UserRecord{NationalID: "12345678901", FullName: "ANA"})

	u := sess.User()
	u.FullName = "CHANGED"
	require.Equal(t, "ANA", sess.User().FullName)
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "campusconnect.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))

	v, err := repo.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}

func TestOpen_IsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "campusconnect.db")
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening an already-migrated store must not fail
	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

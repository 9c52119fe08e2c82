package database

import (
	"context"
	"os"
	"testing"

	"fundfolio/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgres(t *testing.T) *PostgresStore {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL is not set; skipping integration tests")
	}
	db, err := sqlx.Open("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewPostgresStore(db, "kv_store_test", logrus.New())
	require.NoError(t, s.EnsureSchema(context.Background()))
	_, err = db.Exec(`DELETE FROM kv_store_test`)
	require.NoError(t, err)
	return s
}

func TestPostgresStore_GetSet(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "k", []byte(`[2]`)))

	got, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[2]`, string(got))
}

func TestPostgresStore_Repo(t *testing.T) {
	s := setupPostgres(t)
	r := New(s, logrus.New())
	ctx := context.Background()

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 10)

	tx := models.Transaction{ID: "t1", AssetID: assets[0].ID, AssetName: assets[0].Name, Type: models.Buy, Amount: decimal.NewFromInt(500), Date: "2024-05-01"}
	require.NoError(t, r.SaveTransactions(ctx, []models.Transaction{tx}))

	txs, err := r.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(500)), "amount mismatch: %s", txs[0].Amount)
}

func TestPostgresStore_MigrationSchema(t *testing.T) {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL is not set; skipping integration tests")
	}
	db, err := sqlx.Open("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	files := []string{"../../migrations/0001_init.up.sql"}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read migration %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Fatalf("exec migration %s: %v", f, err)
		}
	}

	// the migrated table must be usable without EnsureSchema
	s := NewPostgresStore(db, "", logrus.New())
	ctx := context.Background()
	key := "migration-check-" + NewID()
	t.Cleanup(func() { db.Exec(`DELETE FROM kv_store WHERE key = $1`, key) })

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	got, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(got))
}

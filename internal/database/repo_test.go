package database

import (
	"context"
	"errors"
	"testing"

	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*Repo, *MemoryStore) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := NewMemoryStore()
	return New(store, logger), store
}

func TestGetAssets_SeedsOnFirstRead(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 10)
	assert.Equal(t, "007467", assets[0].Code)
	assert.True(t, assets[0].CostBasis.Equal(decimal.RequireFromString("4978.04")))
	for _, a := range assets {
		assert.Equal(t, models.StatusActive, a.Status)
	}

	_, found, err := store.Get(ctx, "wealthfolio_assets_v3")
	require.NoError(t, err)
	assert.True(t, found, "seed must be written back")

	txs, err := r.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.NotNil(t, txs)
}

func TestGetAssets_EmptyListIsNotReseeded(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SaveAssets(ctx, []models.Asset{}))

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	assets := []models.Asset{{
		ID: "a1", Name: "Gold", InvestmentDirection: "Gold",
		CostBasis: decimal.RequireFromString("-12.5"), CurrentValue: decimal.RequireFromString("0"),
		TargetAmount: decimal.RequireFromString("100"), Status: models.StatusDeleted,
	}}
	txs := []models.Transaction{
		{ID: "t2", AssetID: "a1", AssetName: "Gold", Type: models.Sell, Amount: decimal.RequireFromString("20"), Date: "2024-02-01"},
		{ID: "t1", AssetID: "a1", AssetName: "Gold", Type: models.Buy, Amount: decimal.RequireFromString("7.5"), Date: "2024-01-01"},
	}
	require.NoError(t, r.SaveAssets(ctx, assets))
	require.NoError(t, r.SaveTransactions(ctx, txs))

	gotAssets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, gotAssets, 1)
	assert.Equal(t, models.StatusDeleted, gotAssets[0].Status)
	assert.True(t, gotAssets[0].CostBasis.Equal(decimal.RequireFromString("-12.5")))

	gotTxs, err := r.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, gotTxs, 2)
	assert.Equal(t, "t2", gotTxs[0].ID)
}

func TestGetAssets_ReadsNumericBlobs(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()
	blob := `[{"id":"x","name":"Fund","investmentDirection":"Bonds","costBasis":1007.76,"currentValue":1012.24,"targetAmount":20000,"status":"ACTIVE"}]`
	require.NoError(t, store.Set(ctx, r.AssetsKey(), []byte(blob)))

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.True(t, assets[0].CurrentValue.Equal(decimal.RequireFromString("1012.24")))
	assert.True(t, assets[0].TargetAmount.Equal(decimal.NewFromInt(20000)))
}

func TestGetAssets_CorruptBlob(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, r.AssetsKey(), []byte("{not json")))

	_, err := r.GetAssets(ctx)
	assert.Error(t, err)
}

func TestVersionedKeysAbandonOldData(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := NewMemoryStore()
	ctx := context.Background()

	v3 := NewVersioned(store, "v3", logger)
	require.NoError(t, v3.SaveAssets(ctx, []models.Asset{{ID: "old", Name: "Old"}}))

	v4 := NewVersioned(store, "v4", logger)
	assert.Equal(t, "wealthfolio_assets_v4", v4.AssetsKey())
	assert.Equal(t, "wealthfolio_transactions_v4", v4.TransactionsKey())

	assets, err := v4.GetAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 10, "new version starts from the seed set")

	old, err := v3.GetAssets(ctx)
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.Equal(t, "old", old[0].ID)
}

func TestReset(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.SaveAssets(ctx, []models.Asset{{ID: "z"}}))
	require.NoError(t, r.SaveTransactions(ctx, []models.Transaction{{ID: "t"}}))

	require.NoError(t, r.Reset(ctx))

	assets, err := r.GetAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, assets, 10)
	txs, err := r.GetTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingStore) Set(context.Context, string, []byte) error        { return f.err }
func (f failingStore) Close() error                                     { return nil }

func TestStoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	r := New(failingStore{err: boom}, logrus.New())
	ctx := context.Background()

	_, err := r.GetAssets(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = r.GetTransactions(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.SaveTransactions(ctx, nil), boom)
}

func TestNewID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.Len(t, id, 12)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'z'

	got, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "abc", string(got))

	_, found, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), StoreOptions{Kind: "etcd"}, logrus.New())
	assert.Error(t, err)
}

func TestOpen_PostgresRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), StoreOptions{Kind: KindPostgres}, logrus.New())
	assert.Error(t, err)
}

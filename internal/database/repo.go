package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fundfolio/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultKeyVersion is appended to the collection keys. Bumping it starts
// from a fresh, seeded dataset; data under the previous version is left
// where it is and never read again.
const DefaultKeyVersion = "v3"

const keyPrefix = "wealthfolio_"

// Repo reads and writes the asset and transaction collections as JSON blobs
// under versioned keys.
type Repo struct {
	store           Store
	log             *logrus.Logger
	assetsKey       string
	transactionsKey string
}

func New(store Store, log *logrus.Logger) *Repo {
	return NewVersioned(store, DefaultKeyVersion, log)
}

func NewVersioned(store Store, version string, log *logrus.Logger) *Repo {
	if version == "" {
		version = DefaultKeyVersion
	}
	return &Repo{
		store:           store,
		log:             log,
		assetsKey:       keyPrefix + "assets_" + version,
		transactionsKey: keyPrefix + "transactions_" + version,
	}
}

func (r *Repo) AssetsKey() string       { return r.assetsKey }
func (r *Repo) TransactionsKey() string { return r.transactionsKey }

// GetAssets returns the stored assets. When nothing is stored yet the seed
// set is written and returned.
func (r *Repo) GetAssets(ctx context.Context) ([]models.Asset, error) {
	data, found, err := r.store.Get(ctx, r.assetsKey)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	if !found || len(data) == 0 {
		seed := DefaultAssets()
		if err := r.SaveAssets(ctx, seed); err != nil {
			return nil, err
		}
		r.log.Infof("seeded %d default assets under %s", len(seed), r.assetsKey)
		return seed, nil
	}
	assets := []models.Asset{}
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (r *Repo) SaveAssets(ctx context.Context, assets []models.Asset) error {
	if assets == nil {
		assets = []models.Asset{}
	}
	data, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}
	if err := r.store.Set(ctx, r.assetsKey, data); err != nil {
		return fmt.Errorf("save assets: %w", err)
	}
	return nil
}

// GetTransactions returns the stored transactions, newest-first. There is
// no seed; a missing key is an empty history.
func (r *Repo) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	data, found, err := r.store.Get(ctx, r.transactionsKey)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	txs := []models.Transaction{}
	if !found || len(data) == 0 {
		return txs, nil
	}
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

func (r *Repo) SaveTransactions(ctx context.Context, txs []models.Transaction) error {
	if txs == nil {
		txs = []models.Transaction{}
	}
	data, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := r.store.Set(ctx, r.transactionsKey, data); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// Reset overwrites both collections with the seed assets and an empty history.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.SaveAssets(ctx, DefaultAssets()); err != nil {
		return err
	}
	return r.SaveTransactions(ctx, []models.Transaction{})
}

// NewID returns a short random identifier for assets and transactions.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Package ledger owns the asset and transaction collections of a portfolio
// and applies buy/sell, settings, value correction and soft-delete
// operations to them. Every operation takes a State and returns a new one;
// the slices of the input State are never written to.
package ledger

import (
	"time"

	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// State is one snapshot of the ledger. Transactions are newest-first.
type State struct {
	Assets       []models.Asset       `json:"assets"`
	Transactions []models.Transaction `json:"transactions"`
}

// Active returns the assets that are not soft-deleted, in stored order.
func (s State) Active() []models.Asset {
	res := make([]models.Asset, 0, len(s.Assets))
	for _, a := range s.Assets {
		if a.IsActive() {
			res = append(res, a)
		}
	}
	return res
}

// Asset looks up an asset by id, soft-deleted ones included.
func (s State) Asset(id string) (models.Asset, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Asset{}, false
	}
	return s.Assets[i], true
}

// Recent returns up to n of the newest transactions.
func (s State) Recent(n int) []models.Transaction {
	if n < 0 || n > len(s.Transactions) {
		n = len(s.Transactions)
	}
	res := make([]models.Transaction, n)
	copy(res, s.Transactions[:n])
	return res
}

// TransactionsFor returns the history of one asset, newest-first. Soft-deleted
// assets keep their history.
func (s State) TransactionsFor(assetID string) []models.Transaction {
	res := []models.Transaction{}
	for _, tx := range s.Transactions {
		if tx.AssetID == assetID {
			res = append(res, tx)
		}
	}
	return res
}

// Clone returns a State that shares no backing arrays with s.
func (s State) Clone() State {
	assets := make([]models.Asset, len(s.Assets))
	copy(assets, s.Assets)
	txs := make([]models.Transaction, len(s.Transactions))
	copy(txs, s.Transactions)
	return State{Assets: assets, Transactions: txs}
}

func (s State) indexOf(id string) int {
	for i, a := range s.Assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Engine applies mutations to ledger states. It never fails: unknown asset
// ids leave the state untouched and are only reported through the returned
// bool.
type Engine struct {
	newID func() string
	now   func() time.Time
	log   logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to date transactions submitted without a date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine returns an Engine that takes ids from newID.
func NewEngine(newID func() string, log logrus.FieldLogger, opts ...Option) *Engine {
	e := &Engine{newID: newID, now: time.Now, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateAsset records a new active asset whose cost basis and value both
// start at the initial transaction amount, and logs that initial transaction.
// Input is taken as given.
func (e *Engine) CreateAsset(s State, draft models.AssetDraft, initial models.TransactionInput) (State, models.Asset) {
	asset := models.Asset{
		ID:                  e.newID(),
		Name:                draft.Name,
		Code:                draft.Code,
		InvestmentDirection: draft.InvestmentDirection,
		CostBasis:           initial.Amount,
		CurrentValue:        initial.Amount,
		TargetAmount:        draft.TargetAmount,
		Status:              models.StatusActive,
		Notes:               draft.Notes,
	}
	next := s.Clone()
	next.Assets = append(next.Assets, asset)
	next.Transactions = e.prepend(next.Transactions, asset, initial)
	e.log.WithField("asset_id", asset.ID).Debugf("asset %q created with %s %s", asset.Name, initial.Type, initial.Amount)
	return next, asset
}

// ApplyTransaction moves cost basis and current value of the asset by the
// signed amount and records the transaction. Current value is floored at
// zero; cost basis is not, so oversized sells can drive it negative.
func (e *Engine) ApplyTransaction(s State, assetID string, in models.TransactionInput) (State, bool) {
	i := s.indexOf(assetID)
	if i < 0 {
		e.log.WithField("asset_id", assetID).Debug("transaction skipped: unknown asset")
		return s, false
	}
	next := s.Clone()
	a := next.Assets[i]
	switch in.Type {
	case models.Buy:
		a.CostBasis = a.CostBasis.Add(in.Amount)
		a.CurrentValue = a.CurrentValue.Add(in.Amount)
	case models.Sell:
		a.CostBasis = a.CostBasis.Sub(in.Amount)
		a.CurrentValue = a.CurrentValue.Sub(in.Amount)
	}
	if a.CurrentValue.IsNegative() {
		a.CurrentValue = decimal.Zero
	}
	next.Assets[i] = a
	next.Transactions = e.prepend(next.Transactions, a, in)
	return next, true
}

// UpdateAssetSettings overwrites the user-editable fields of an asset.
// Balances, status and history are left alone.
func (e *Engine) UpdateAssetSettings(s State, assetID string, settings models.AssetSettings) (State, bool) {
	return e.update(s, assetID, func(a *models.Asset) {
		a.Name = settings.Name
		a.Code = settings.Code
		a.InvestmentDirection = settings.InvestmentDirection
		a.TargetAmount = settings.TargetAmount
	})
}

// CorrectValue sets the market value directly, without a transaction and
// without touching the cost basis. The value is not floored.
func (e *Engine) CorrectValue(s State, assetID string, value decimal.Decimal) (State, bool) {
	return e.update(s, assetID, func(a *models.Asset) {
		a.CurrentValue = value
	})
}

// SoftDeleteAsset marks the asset DELETED. There is no way back.
func (e *Engine) SoftDeleteAsset(s State, assetID string) (State, bool) {
	return e.update(s, assetID, func(a *models.Asset) {
		a.Status = models.StatusDeleted
	})
}

func (e *Engine) update(s State, assetID string, fn func(*models.Asset)) (State, bool) {
	i := s.indexOf(assetID)
	if i < 0 {
		e.log.WithField("asset_id", assetID).Debug("update skipped: unknown asset")
		return s, false
	}
	next := s.Clone()
	fn(&next.Assets[i])
	return next, true
}

func (e *Engine) prepend(txs []models.Transaction, a models.Asset, in models.TransactionInput) []models.Transaction {
	date := in.Date
	if date == "" {
		date = e.now().UTC().Format(dateLayout)
	}
	tx := models.Transaction{
		ID:        e.newID(),
		AssetID:   a.ID,
		AssetName: a.Name,
		Type:      in.Type,
		Amount:    in.Amount,
		Date:      date,
		Notes:     in.Notes,
	}
	res := make([]models.Transaction, 0, len(txs)+1)
	res = append(res, tx)
	return append(res, txs...)
}

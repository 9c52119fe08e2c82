package models

import "github.com/shopspring/decimal"

type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

type AssetStatus string

const (
	StatusActive  AssetStatus = "ACTIVE"
	StatusDeleted AssetStatus = "DELETED"
)

// Asset is a tracked fund position.
type Asset struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Code                string          `json:"code,omitempty"`
	InvestmentDirection string          `json:"investmentDirection"`
	CostBasis           decimal.Decimal `json:"costBasis"`
	CurrentValue        decimal.Decimal `json:"currentValue"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	Status              AssetStatus     `json:"status"`
	Notes               string          `json:"notes,omitempty"`
}

// IsActive reports whether the asset takes part in portfolio derivations.
// Blobs written before status existed decode with an empty status and count
// as active.
func (a Asset) IsActive() bool {
	return a.Status != StatusDeleted
}

// Transaction is an immutable ledger entry. AssetName is a snapshot of the
// asset's name when the entry was recorded.
type Transaction struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"assetId"`
	AssetName string          `json:"assetName"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
}

type AssetDraft struct {
	Name                string          `json:"name"`
	Code                string          `json:"code"`
	InvestmentDirection string          `json:"investmentDirection"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	Notes               string          `json:"notes"`
}

type AssetSettings struct {
	Name                string          `json:"name"`
	Code                string          `json:"code"`
	InvestmentDirection string          `json:"investmentDirection"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
}

type TransactionInput struct {
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Notes  string          `json:"notes"`
}

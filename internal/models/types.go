package models

import "github.com/shopspring/decimal"

type PortfolioStats struct {
	TotalValue     decimal.Decimal `json:"totalValue"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	TotalGain      decimal.Decimal `json:"totalGain"`
	GainPercentage decimal.Decimal `json:"gainPercentage"`
	TargetTotal    decimal.Decimal `json:"targetTotal"`
	Tone           Tone            `json:"tone"`
}

// Tone is the display colour class of a signed amount: Hot for gains and
// overweight positions, Cool for losses and underweight ones.
type Tone string

const (
	Hot     Tone = "hot"
	Cool    Tone = "cool"
	Neutral Tone = "neutral"
)

type DirectionSlice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type SectorPerformance struct {
	Label string          `json:"label"`
	Cost  decimal.Decimal `json:"cost"`
	Value decimal.Decimal `json:"value"`
	Gain  decimal.Decimal `json:"gain"`
	ROI   decimal.Decimal `json:"roi"`
	Tone  Tone            `json:"tone"`
}

type Deviation struct {
	AssetID string          `json:"assetId"`
	Label   string          `json:"label"`
	Actual  decimal.Decimal `json:"actual"`
	Target  decimal.Decimal `json:"target"`
	Diff    decimal.Decimal `json:"diff"`
	Tone    Tone            `json:"tone"`
}

type ProfitLeader struct {
	AssetID string          `json:"assetId"`
	Label   string          `json:"label"`
	Cost    decimal.Decimal `json:"cost"`
	Value   decimal.Decimal `json:"value"`
	Gain    decimal.Decimal `json:"gain"`
	Tone    Tone            `json:"tone"`
}

type Dashboard struct {
	Stats         PortfolioStats      `json:"stats"`
	Directions    []DirectionSlice    `json:"directions"`
	Sectors       []SectorPerformance `json:"sectors"`
	Deviations    []Deviation         `json:"deviations"`
	ProfitLeaders []ProfitLeader      `json:"profitLeaders"`
}

package ledger

import (
	"sort"

	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
)

// OtherDirection labels assets without an investment direction.
const OtherDirection = "Other"

var hundred = decimal.NewFromInt(100)

func directionOf(a models.Asset) string {
	if a.InvestmentDirection == "" {
		return OtherDirection
	}
	return a.InvestmentDirection
}

// percentOf returns part/whole*100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// ToneOf maps the sign of an amount to its display tone.
func ToneOf(x decimal.Decimal) models.Tone {
	switch x.Sign() {
	case 1:
		return models.Hot
	case -1:
		return models.Cool
	}
	return models.Neutral
}

// ComputeStats totals value, cost and target over the given assets. Callers
// pass active assets.
func ComputeStats(active []models.Asset) models.PortfolioStats {
	var st models.PortfolioStats
	for _, a := range active {
		st.TotalValue = st.TotalValue.Add(a.CurrentValue)
		st.TotalCost = st.TotalCost.Add(a.CostBasis)
		st.TargetTotal = st.TargetTotal.Add(a.TargetAmount)
	}
	st.TotalGain = st.TotalValue.Sub(st.TotalCost)
	st.GainPercentage = percentOf(st.TotalGain, st.TotalCost)
	st.Tone = ToneOf(st.TotalGain)
	return st
}

type group struct {
	label string
	cost  decimal.Decimal
	value decimal.Decimal
}

// groupAssets sums cost and value per direction, in order of first appearance.
func groupAssets(active []models.Asset) []group {
	idx := map[string]int{}
	groups := []group{}
	for _, a := range active {
		label := directionOf(a)
		i, ok := idx[label]
		if !ok {
			i = len(groups)
			idx[label] = i
			groups = append(groups, group{label: label})
		}
		groups[i].cost = groups[i].cost.Add(a.CostBasis)
		groups[i].value = groups[i].value.Add(a.CurrentValue)
	}
	return groups
}

// GroupByDirection returns the market value held per investment direction,
// largest first.
func GroupByDirection(active []models.Asset) []models.DirectionSlice {
	groups := groupAssets(active)
	res := make([]models.DirectionSlice, 0, len(groups))
	for _, g := range groups {
		res = append(res, models.DirectionSlice{Label: g.label, Value: g.value})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Value.GreaterThan(res[j].Value) })
	return res
}

// SectorPerformance returns cost, value, gain and ROI per investment
// direction, best ROI first. ROI is rounded to two decimal places.
func SectorPerformance(active []models.Asset) []models.SectorPerformance {
	groups := groupAssets(active)
	res := make([]models.SectorPerformance, 0, len(groups))
	for _, g := range groups {
		gain := g.value.Sub(g.cost)
		res = append(res, models.SectorPerformance{
			Label: g.label,
			Cost:  g.cost,
			Value: g.value,
			Gain:  gain,
			ROI:   percentOf(gain, g.cost).Round(2),
			Tone:  ToneOf(gain),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].ROI.GreaterThan(res[j].ROI) })
	return res
}

// DeviationReport compares each asset's value to its target, most
// overweight first.
func DeviationReport(active []models.Asset) []models.Deviation {
	res := make([]models.Deviation, 0, len(active))
	for _, a := range active {
		diff := a.CurrentValue.Sub(a.TargetAmount)
		res = append(res, models.Deviation{
			AssetID: a.ID,
			Label:   a.Name,
			Actual:  a.CurrentValue,
			Target:  a.TargetAmount,
			Diff:    diff,
			Tone:    ToneOf(diff),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Diff.GreaterThan(res[j].Diff) })
	return res
}

// ProfitLeaders ranks assets by unrealised gain, largest first.
func ProfitLeaders(active []models.Asset) []models.ProfitLeader {
	res := make([]models.ProfitLeader, 0, len(active))
	for _, a := range active {
		gain := a.CurrentValue.Sub(a.CostBasis)
		res = append(res, models.ProfitLeader{
			AssetID: a.ID,
			Label:   a.Name,
			Cost:    a.CostBasis,
			Value:   a.CurrentValue,
			Gain:    gain,
			Tone:    ToneOf(gain),
		})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Gain.GreaterThan(res[j].Gain) })
	return res
}

// BuildDashboard computes every projection of one set of active assets.
func BuildDashboard(active []models.Asset) models.Dashboard {
	return models.Dashboard{
		Stats:         ComputeStats(active),
		Directions:    GroupByDirection(active),
		Sectors:       SectorPerformance(active),
		Deviations:    DeviationReport(active),
		ProfitLeaders: ProfitLeaders(active),
	}
}

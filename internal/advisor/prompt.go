package advisor

import (
	"fmt"
	"strings"

	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func analysisPrompt(active []models.Asset, recent []models.Transaction) string {
	var sb strings.Builder
	sb.WriteString("You are a professional fund investment advisor. Analyze the following fund portfolio.\n\nCurrent holdings:\n")

	directions := []string{}
	seen := map[string]bool{}
	for _, a := range active {
		gain := a.CurrentValue.Sub(a.CostBasis)
		pct := "0"
		if !a.CostBasis.IsZero() {
			pct = gain.Div(a.CostBasis).Mul(hundred).StringFixed(2)
		}
		fmt.Fprintf(&sb, "- %s [%s]: market value %s (invested %s, target %s). Return: %s%%\n",
			a.Name, a.InvestmentDirection, a.CurrentValue, a.CostBasis, a.TargetAmount, pct)
		if !seen[a.InvestmentDirection] {
			seen[a.InvestmentDirection] = true
			directions = append(directions, a.InvestmentDirection)
		}
	}

	if len(recent) > 0 {
		sb.WriteString("\nRecent transactions (newest first):\n")
		for _, tx := range recent {
			fmt.Fprintf(&sb, "- %s %s %s %s\n", tx.Date, tx.Type, tx.AssetName, tx.Amount)
		}
	}

	fmt.Fprintf(&sb, `
Give a concise analysis covering:
1. Concentration risk across the investment directions (%s).
2. Deviation of each holding from its target amount, with rebalancing suggestions.
3. Suggestions for the current market environment.

Keep the tone professional and encouraging. Answer in Markdown. Talk about amounts and investment directions only, never shares or units.
`, strings.Join(directions, ", "))
	return sb.String()
}

func categoryPrompt(fundName string) string {
	return fmt.Sprintf(`Classify the fund named %q into one short investment direction (for example "Gold", "US Tech", "Domestic Bonds", "Consumer", "Healthcare"). Reply with the category name only, in the same language as the fund name.`, fundName)
}

package database

import (
	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
)

type seedAsset struct {
	id, name, code, direction string
	target, cost, value       string
}

var seedAssets = []seedAsset{
	{"1", "华泰柏瑞中证红利低波动ETF联接C", "007467", "红利", "10000", "4978.04", "5060.35"},
	{"2", "平安鑫瑞混合C", "011762", "债券", "20000", "1007.76", "1012.24"},
	{"3", "国泰黄金ETF联接C", "004253", "黄金", "50000", "4557.71", "4602.61"},
	{"4", "天弘沪深300ETF联接C", "005918", "宽基指数", "10000", "3841.62", "3831.85"},
	{"5", "富国中证A500ETF联接C", "022464", "宽基指数", "10000", "1000.00", "974.33"},
	{"6", "天弘创业板ETF联接C", "001593", "宽基指数", "5000", "3771.44", "3628.89"},
	{"7", "南方恒生ETF联接C", "005659", "宽基指数", "5000", "1000.00", "946.07"},
	{"8", "创金合信全球芯片产业股票(QDII)C", "017654", "全球芯片", "10000", "700.00", "700.00"},
	{"9", "富国全球消费精选混合(QDII)C", "012062", "全球消费", "5000", "1898.03", "1873.04"},
	{"10", "银华海外数字经济量化选股混合(QDII)C", "016702", "海外科技", "5000", "1698.08", "1740.85"},
}

// DefaultAssets returns the bootstrap holdings written on first start.
func DefaultAssets() []models.Asset {
	res := make([]models.Asset, 0, len(seedAssets))
	for _, s := range seedAssets {
		res = append(res, models.Asset{
			ID:                  s.id,
			Name:                s.name,
			Code:                s.code,
			InvestmentDirection: s.direction,
			TargetAmount:        decimal.RequireFromString(s.target),
			CostBasis:           decimal.RequireFromString(s.cost),
			CurrentValue:        decimal.RequireFromString(s.value),
			Status:              models.StatusActive,
		})
	}
	return res
}

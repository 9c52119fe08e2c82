package service

import (
	"context"
	"sync"

	"fundfolio/internal/advisor"
	"fundfolio/internal/database"
	"fundfolio/internal/ledger"
	"fundfolio/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultRecentTransactions is how many of the newest transactions are sent
// along with a portfolio analysis request.
const DefaultRecentTransactions = 10

// PortfolioService owns the ledger state of the running process. Mutations
// are serialized; each one is persisted before it becomes the current state.
type PortfolioService struct {
	mu      sync.Mutex
	state   ledger.State
	repo    *database.Repo
	engine  *ledger.Engine
	advisor advisor.Advisor
	log     *logrus.Logger
	recent  int
}

func NewPortfolioService(r *database.Repo, e *ledger.Engine, a advisor.Advisor, log *logrus.Logger) *PortfolioService {
	return &PortfolioService{repo: r, engine: e, advisor: a, log: log, recent: DefaultRecentTransactions}
}

// SetRecentTransactions changes how many transactions accompany an analysis.
func (p *PortfolioService) SetRecentTransactions(n int) {
	if n > 0 {
		p.recent = n
	}
}

// Load replaces the in-memory state with what the repo holds.
func (p *PortfolioService) Load(ctx context.Context) error {
	assets, err := p.repo.GetAssets(ctx)
	if err != nil {
		return err
	}
	txs, err := p.repo.GetTransactions(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.state = ledger.State{Assets: assets, Transactions: txs}
	p.mu.Unlock()
	p.log.Infof("loaded %d assets and %d transactions", len(assets), len(txs))
	return nil
}

// Snapshot returns a copy of the current state.
func (p *PortfolioService) Snapshot() ledger.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *PortfolioService) CreateAsset(ctx context.Context, draft models.AssetDraft, initial models.TransactionInput) (models.Asset, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, asset := p.engine.CreateAsset(p.state, draft, initial)
	if err := p.commit(ctx, next, true); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// ApplyTransaction reports false, without error, when the asset is unknown.
// The returned asset is the one just committed.
func (p *PortfolioService) ApplyTransaction(ctx context.Context, assetID string, in models.TransactionInput) (models.Asset, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, ok := p.engine.ApplyTransaction(p.state, assetID, in)
	return p.apply(ctx, assetID, next, ok, true)
}

func (p *PortfolioService) UpdateAssetSettings(ctx context.Context, assetID string, settings models.AssetSettings) (models.Asset, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, ok := p.engine.UpdateAssetSettings(p.state, assetID, settings)
	return p.apply(ctx, assetID, next, ok, false)
}

func (p *PortfolioService) CorrectValue(ctx context.Context, assetID string, value decimal.Decimal) (models.Asset, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, ok := p.engine.CorrectValue(p.state, assetID, value)
	return p.apply(ctx, assetID, next, ok, false)
}

func (p *PortfolioService) DeleteAsset(ctx context.Context, assetID string) (models.Asset, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, ok := p.engine.SoftDeleteAsset(p.state, assetID)
	return p.apply(ctx, assetID, next, ok, false)
}

// apply commits next when the asset was found and returns that asset as
// committed. Must be called with mu held.
func (p *PortfolioService) apply(ctx context.Context, assetID string, next ledger.State, found, txChanged bool) (models.Asset, bool, error) {
	if !found {
		return models.Asset{}, false, nil
	}
	if err := p.commit(ctx, next, txChanged); err != nil {
		return models.Asset{}, true, err
	}
	asset, _ := next.Asset(assetID)
	return asset, true, nil
}

// commit persists next and makes it current. On failure the previous state
// is kept. Must be called with mu held.
func (p *PortfolioService) commit(ctx context.Context, next ledger.State, txChanged bool) error {
	if err := p.repo.SaveAssets(ctx, next.Assets); err != nil {
		p.log.Errorf("persist assets failed: %v", err)
		return err
	}
	if txChanged {
		if err := p.repo.SaveTransactions(ctx, next.Transactions); err != nil {
			p.log.Errorf("persist transactions failed: %v", err)
			// assets were already written; put the previous ones back
			if rerr := p.repo.SaveAssets(ctx, p.state.Assets); rerr != nil {
				p.log.Errorf("restore assets failed: %v", rerr)
			}
			return err
		}
	}
	p.state = next
	return nil
}

func (p *PortfolioService) Dashboard() models.Dashboard {
	return ledger.BuildDashboard(p.Snapshot().Active())
}

// Analyze asks the advisor about the current portfolio. The ledger lock is
// only held while copying the snapshot, so mutations proceed while the
// request is in flight. Concurrent calls are independent of each other.
func (p *PortfolioService) Analyze(ctx context.Context) string {
	p.mu.Lock()
	assets := p.state.Clone().Assets
	recent := p.state.Recent(p.recent)
	p.mu.Unlock()
	return p.advisor.AnalyzePortfolio(ctx, assets, recent)
}

func (p *PortfolioService) SuggestCategory(ctx context.Context, fundName string) string {
	return p.advisor.SuggestCategory(ctx, fundName)
}

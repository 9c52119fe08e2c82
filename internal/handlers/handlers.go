package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fundfolio/internal/ledger"
	"fundfolio/internal/models"
	"fundfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.PortfolioService
	log *logrus.Logger
}

func NewHandler(svc *service.PortfolioService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/assets", h.ListAssets)
	r.POST("/assets", h.CreateAsset)
	r.PUT("/assets/:id", h.UpdateAssetSettings)
	r.PUT("/assets/:id/value", h.CorrectValue)
	r.DELETE("/assets/:id", h.DeleteAsset)
	r.GET("/assets/:id/transactions", h.AssetTransactions)
	r.POST("/assets/:id/transactions", h.ApplyTransaction)
	r.GET("/transactions", h.ListTransactions)

	r.GET("/stats", h.GetStats)
	r.GET("/dashboard", h.GetDashboard)
	r.GET("/charts/directions", h.GetDirections)
	r.GET("/charts/sectors", h.GetSectors)
	r.GET("/charts/deviations", h.GetDeviations)
	r.GET("/charts/profit-leaders", h.GetProfitLeaders)

	r.POST("/advisor/analysis", h.Analyze)
	r.POST("/advisor/category", h.SuggestCategory)
}

type TransactionRequest struct {
	Type   string `json:"type" binding:"required,oneof=BUY SELL"`
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

type CreateAssetRequest struct {
	Name                string             `json:"name" binding:"required"`
	Code                string             `json:"code"`
	InvestmentDirection string             `json:"investmentDirection" binding:"required"`
	TargetAmount        string             `json:"targetAmount"`
	Notes               string             `json:"notes"`
	Transaction         TransactionRequest `json:"transaction"`
}

type SettingsRequest struct {
	Name                string `json:"name" binding:"required"`
	Code                string `json:"code"`
	InvestmentDirection string `json:"investmentDirection"`
	TargetAmount        string `json:"targetAmount"`
}

type ValueRequest struct {
	Value string `json:"value" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// parseAmount reads an optional decimal; blank means zero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func (r TransactionRequest) toInput() (models.TransactionInput, string) {
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return models.TransactionInput{}, "invalid amount format"
	}
	if amount.IsNegative() {
		return models.TransactionInput{}, "amount must not be negative"
	}
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return models.TransactionInput{}, "date must be YYYY-MM-DD"
		}
	}
	return models.TransactionInput{Type: models.TransactionType(r.Type), Amount: amount, Date: r.Date, Notes: r.Notes}, ""
}

func (h *Handler) ListAssets(c *gin.Context) {
	s := h.svc.Snapshot()
	if all, _ := strconv.ParseBool(c.Query("all")); all {
		c.JSON(http.StatusOK, s.Assets)
		return
	}
	c.JSON(http.StatusOK, s.Active())
}

func (h *Handler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid create asset body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	direction := strings.TrimSpace(req.InvestmentDirection)
	if name == "" || direction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and investmentDirection must not be blank"})
		return
	}
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid targetAmount format"})
		return
	}
	in, msg := req.Transaction.toInput()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	draft := models.AssetDraft{
		Name:                name,
		Code:                strings.TrimSpace(req.Code),
		InvestmentDirection: direction,
		TargetAmount:        target,
		Notes:               req.Notes,
	}
	asset, err := h.svc.CreateAsset(c.Request.Context(), draft, in)
	if err != nil {
		h.log.Errorf("create asset failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, asset)
}

func (h *Handler) ApplyTransaction(c *gin.Context) {
	id := c.Param("id")
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid transaction body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, msg := req.toInput()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	asset, applied, err := h.svc.ApplyTransaction(c.Request.Context(), id, in)
	if err != nil {
		h.log.WithField("asset_id", id).Errorf("apply transaction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction failed"})
		return
	}
	h.respondApplied(c, id, asset, applied)
}

func (h *Handler) UpdateAssetSettings(c *gin.Context) {
	id := c.Param("id")
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid settings body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}
	target, err := parseAmount(req.TargetAmount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid targetAmount format"})
		return
	}
	settings := models.AssetSettings{
		Name:                name,
		Code:                strings.TrimSpace(req.Code),
		InvestmentDirection: strings.TrimSpace(req.InvestmentDirection),
		TargetAmount:        target,
	}
	asset, applied, err := h.svc.UpdateAssetSettings(c.Request.Context(), id, settings)
	if err != nil {
		h.log.WithField("asset_id", id).Errorf("update settings failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.respondApplied(c, id, asset, applied)
}

func (h *Handler) CorrectValue(c *gin.Context) {
	id := c.Param("id")
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid value body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := decimal.NewFromString(strings.TrimSpace(req.Value))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value format"})
		return
	}
	asset, applied, err := h.svc.CorrectValue(c.Request.Context(), id, v)
	if err != nil {
		h.log.WithField("asset_id", id).Errorf("correct value failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.respondApplied(c, id, asset, applied)
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	id := c.Param("id")
	asset, applied, err := h.svc.DeleteAsset(c.Request.Context(), id)
	if err != nil {
		h.log.WithField("asset_id", id).Errorf("delete asset failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	h.respondApplied(c, id, asset, applied)
}

// respondApplied answers 200 either way: an unknown asset is a no-op, not a
// client error.
func (h *Handler) respondApplied(c *gin.Context, id string, asset models.Asset, applied bool) {
	if !applied {
		h.log.WithField("asset_id", id).Debug("operation on unknown asset ignored")
		c.JSON(http.StatusOK, gin.H{"applied": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "asset": asset})
}

func (h *Handler) AssetTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot().TransactionsFor(c.Param("id")))
}

func (h *Handler) ListTransactions(c *gin.Context) {
	limit := -1
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.svc.Snapshot().Recent(limit))
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ledger.ComputeStats(h.svc.Snapshot().Active()))
}

func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

func (h *Handler) GetDirections(c *gin.Context) {
	c.JSON(http.StatusOK, ledger.GroupByDirection(h.svc.Snapshot().Active()))
}

func (h *Handler) GetSectors(c *gin.Context) {
	c.JSON(http.StatusOK, ledger.SectorPerformance(h.svc.Snapshot().Active()))
}

func (h *Handler) GetDeviations(c *gin.Context) {
	c.JSON(http.StatusOK, ledger.DeviationReport(h.svc.Snapshot().Active()))
}

func (h *Handler) GetProfitLeaders(c *gin.Context) {
	c.JSON(http.StatusOK, ledger.ProfitLeaders(h.svc.Snapshot().Active()))
}

func (h *Handler) Analyze(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"analysis": h.svc.Analyze(c.Request.Context())})
}

func (h *Handler) SuggestCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": h.svc.SuggestCategory(c.Request.Context(), req.Name)})
}

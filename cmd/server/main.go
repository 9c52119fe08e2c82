package main

import (
	"context"
	"fmt"

	"fundfolio/internal/advisor"
	"fundfolio/internal/config"
	"fundfolio/internal/database"
	"fundfolio/internal/handlers"
	"fundfolio/internal/ledger"
	"fundfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := database.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatalf("store open failed: %v", err)
	}
	defer store.Close()

	repo := database.NewVersioned(store, cfg.KeyVersion, logger)

	var gen advisor.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := advisor.NewGeminiClient(ctx, cfg.GeminiAPIKey,
			advisor.WithModel(cfg.GeminiModel),
			advisor.WithTimeout(cfg.AdvisorTimeout),
			advisor.WithLogger(logger),
		)
		if err != nil {
			logger.Warnf("gemini unavailable, advisor disabled: %v", err)
		} else {
			gen = client
		}
	} else {
		logger.Info("GEMINI_API_KEY not set; advisor answers with fallback text")
	}

	svc := service.NewPortfolioService(repo, ledger.NewEngine(database.NewID, logger), advisor.New(gen, logger), logger)
	svc.SetRecentTransactions(cfg.RecentTransactions)
	if err := svc.Load(ctx); err != nil {
		logger.Fatalf("load ledger failed: %v", err)
	}

	h := handlers.NewHandler(svc, logger)

	rg := gin.Default()
	h.Routes(rg)

	logger.Infof("server starting on :%s (store=%s, keys=%s)", cfg.Port, cfg.Store.Kind, repo.AssetsKey())
	if err := rg.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

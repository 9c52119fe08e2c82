package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fundfolio/internal/config"
	"fundfolio/internal/database"

	"github.com/sirupsen/logrus"
)

func main() {
	force := flag.Bool("force", false, "overwrite existing assets and transactions")
	flag.Parse()

	logger := logrus.New()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	store, err := database.Open(ctx, cfg.Store, logger)
	if err != nil {
		logger.Fatalf("store open failed: %v", err)
	}
	defer store.Close()

	repo := database.NewVersioned(store, cfg.KeyVersion, logger)

	_, found, err := store.Get(ctx, repo.AssetsKey())
	if err != nil {
		logger.Fatalf("read %s: %v", repo.AssetsKey(), err)
	}
	if found && !*force {
		fmt.Fprintf(os.Stderr, "%s already holds data; rerun with -force to overwrite\n", repo.AssetsKey())
		os.Exit(1)
	}

	if err := repo.Reset(ctx); err != nil {
		logger.Fatalf("reset failed: %v", err)
	}
	fmt.Printf("Wrote %d seed assets to %s and cleared %s (store=%s)\n",
		len(database.DefaultAssets()), repo.AssetsKey(), repo.TransactionsKey(), cfg.Store.Kind)
}

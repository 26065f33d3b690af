package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sangkips/daybook-api/internal/config"
	"github.com/sangkips/daybook-api/pkg/logger"
)

func TestOpenSQLiteFallsBackToMemory(t *testing.T) {
	// A regular file where the directory should be makes the open fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: filepath.Join(blocker, "daybook.db")}}
	stores, err := Open(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open should degrade, got %v", err)
	}
	defer stores.Close()

	if stores.Driver != config.StoreMemory || !stores.Degraded(&cfg.Store) {
		t.Fatalf("expected in-memory fallback, got %q", stores.Driver)
	}
}

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "daybook.db")}}
	stores, err := Open(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer stores.Close()

	if stores.Driver != config.StoreSQLite || stores.Degraded(&cfg.Store) {
		t.Fatalf("driver = %q", stores.Driver)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}
	if _, err := Open(cfg, logger.Discard()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSeedDemoDataOnlyOnce(t *testing.T) {
	ctx := context.Background()
	stores, _ := Open(&config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}, logger.Discard())

	for i := 0; i < 2; i++ {
		if err := SeedDemoData(ctx, stores, "2024-01-01", logger.Discard()); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	sales, _ := stores.Sales.List(ctx)
	expenses, _ := stores.Expenses.List(ctx)
	purchases, _ := stores.Purchases.List(ctx)
	if len(sales) != 1 || len(expenses) != 2 || len(purchases) != 1 {
		t.Fatalf("got %d sales %d expenses %d purchases", len(sales), len(expenses), len(purchases))
	}
}

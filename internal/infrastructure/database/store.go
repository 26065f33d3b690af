package database

import (
	"fmt"

	"github.com/sangkips/daybook-api/internal/config"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/sangkips/daybook-api/internal/infrastructure/memory"
	"github.com/sangkips/daybook-api/internal/infrastructure/repository"
	"github.com/sangkips/daybook-api/internal/infrastructure/sqlite"
	"github.com/sirupsen/logrus"
)

// Stores bundles the repositories of whichever backend is in use
type Stores struct {
	Driver          string
	Sales           domainRepo.SaleRepository
	Expenses        domainRepo.ExpenseRepository
	Purchases       domainRepo.PurchaseRepository
	IdempotencyKeys domainRepo.IdempotencyRepository

	close func() error
}

// Close releases the underlying database
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Degraded reports whether the book fell back to the in-memory store
func (s *Stores) Degraded(cfg *config.StoreConfig) bool {
	return s.Driver != cfg.Driver
}

// FromMemory wraps an in-memory store
func FromMemory(m *memory.Store) *Stores {
	return &Stores{
		Driver:          config.StoreMemory,
		Sales:           m.Sales(),
		Expenses:        m.Expenses(),
		Purchases:       m.Purchases(),
		IdempotencyKeys: m.IdempotencyKeys(),
		close:           m.Close,
	}
}

// Open connects the configured store. Postgres failures are returned; a
// sqlite failure falls back to an empty in-memory store so a local install
// still starts.
func Open(cfg *config.Config, log *logrus.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := NewPostgresDB(&cfg.Database, cfg.IsProduction(), log)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(db, log); err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		return &Stores{
			Driver:          config.StorePostgres,
			Sales:           repository.NewSaleRepository(db),
			Expenses:        repository.NewExpenseRepository(db),
			Purchases:       repository.NewPurchaseRepository(db),
			IdempotencyKeys: repository.NewIdempotencyRepository(db),
			close:           sqlDB.Close,
		}, nil

	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			log.WithError(err).WithField("path", cfg.Store.SQLitePath).
				Warn("sqlite store unavailable, falling back to in-memory store")
			return FromMemory(memory.NewStore()), nil
		}
		log.WithField("path", cfg.Store.SQLitePath).Info("Opened sqlite store")
		return &Stores{
			Driver:          config.StoreSQLite,
			Sales:           s.Sales(),
			Expenses:        s.Expenses(),
			Purchases:       s.Purchases(),
			IdempotencyKeys: s.IdempotencyKeys(),
			close:           s.Close,
		}, nil

	case config.StoreMemory:
		return FromMemory(memory.NewStore()), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

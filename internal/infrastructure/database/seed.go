package database

import (
	"context"
	"fmt"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SeedDemoData writes one example day when the book has no sales yet
func SeedDemoData(ctx context.Context, stores *Stores, date string, log *logrus.Logger) error {
	existing, err := stores.Sales.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing sales: %w", err)
	}
	if len(existing) > 0 {
		log.Debug("Sales already recorded, skipping demo data")
		return nil
	}

	log.WithField("date", date).Info("Seeding demo data...")

	sale := &entity.Sale{
		Date:         date,
		TotalAmount:  decimal.NewFromInt(150000),
		BankakAmount: decimal.NewFromInt(100000),
		CashAmount:   decimal.NewFromInt(50000),
	}
	if err := stores.Sales.Create(ctx, sale); err != nil {
		return fmt.Errorf("seed sale: %w", err)
	}

	expenses := []entity.Expense{
		{Description: "Electricity Bill", Amount: decimal.NewFromInt(5000), PaymentMethod: enum.PaymentMethodBankak, Date: date},
		{Description: "Daily Snacks", Amount: decimal.NewFromInt(2000), PaymentMethod: enum.PaymentMethodCash, Date: date},
	}
	for i := range expenses {
		if err := stores.Expenses.Create(ctx, &expenses[i]); err != nil {
			return fmt.Errorf("seed expense: %w", err)
		}
	}

	purchase := &entity.Purchase{ItemName: "Sugar Sack 50kg", Amount: decimal.NewFromInt(45000), Date: date}
	if err := stores.Purchases.Create(ctx, purchase); err != nil {
		return fmt.Errorf("seed purchase: %w", err)
	}

	log.Info("Demo data seeding completed")
	return nil
}

// Package report turns the raw sale, expense and purchase records of a period
// into channel totals.
package report

import (
	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Breakdown splits an amount by payment channel
type Breakdown struct {
	Bankak decimal.Decimal `json:"bankak"`
	Cash   decimal.Decimal `json:"cash"`
}

// Report holds the aggregates for one inclusive date range
type Report struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetBankak         decimal.Decimal `json:"netBankak"`
	NetCash           decimal.Decimal `json:"netCash"`
	TotalPurchases    decimal.Decimal `json:"totalPurchases"`
	SalesBreakdown    Breakdown       `json:"salesBreakdown"`
	ExpensesBreakdown Breakdown       `json:"expensesBreakdown"`
}

// Aggregate sums the records of a period. Channel breakdowns are summed from
// the channel fields, never derived from the totals.
func Aggregate(sales []entity.Sale, expenses []entity.Expense, purchases []entity.Purchase) Report {
	var r Report

	for _, s := range sales {
		r.TotalSales = r.TotalSales.Add(s.TotalAmount)
		r.SalesBreakdown.Bankak = r.SalesBreakdown.Bankak.Add(s.BankakAmount)
		r.SalesBreakdown.Cash = r.SalesBreakdown.Cash.Add(s.CashAmount)
	}

	for _, e := range expenses {
		r.TotalExpenses = r.TotalExpenses.Add(e.Amount)
		switch e.PaymentMethod {
		case enum.PaymentMethodBankak:
			r.ExpensesBreakdown.Bankak = r.ExpensesBreakdown.Bankak.Add(e.Amount)
		case enum.PaymentMethodCash:
			r.ExpensesBreakdown.Cash = r.ExpensesBreakdown.Cash.Add(e.Amount)
		}
	}

	for _, p := range purchases {
		r.TotalPurchases = r.TotalPurchases.Add(p.Amount)
	}

	r.NetBankak = r.SalesBreakdown.Bankak.Sub(r.ExpensesBreakdown.Bankak)
	r.NetCash = r.SalesBreakdown.Cash.Sub(r.ExpensesBreakdown.Cash)
	return r
}

// DashboardNetProfit is sales minus expenses, ignoring purchases
func (r Report) DashboardNetProfit() decimal.Decimal {
	return r.TotalSales.Sub(r.TotalExpenses)
}

// PeriodNetProfit is sales minus expenses minus purchases
func (r Report) PeriodNetProfit() decimal.Decimal {
	return r.TotalSales.Sub(r.TotalExpenses).Sub(r.TotalPurchases)
}

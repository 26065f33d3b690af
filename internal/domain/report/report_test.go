package report

import (
	"encoding/json"
	"testing"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertAmount(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestAggregateEmptyIsZero(t *testing.T) {
	r := Aggregate(nil, nil, nil)

	for name, v := range map[string]decimal.Decimal{
		"totalSales":               r.TotalSales,
		"totalExpenses":            r.TotalExpenses,
		"totalPurchases":           r.TotalPurchases,
		"netBankak":                r.NetBankak,
		"netCash":                  r.NetCash,
		"salesBreakdown.bankak":    r.SalesBreakdown.Bankak,
		"salesBreakdown.cash":      r.SalesBreakdown.Cash,
		"expensesBreakdown.bankak": r.ExpensesBreakdown.Bankak,
		"expensesBreakdown.cash":   r.ExpensesBreakdown.Cash,
	} {
		assertAmount(t, name, v, decimal.Zero)
	}
}

func TestAggregateSingleDay(t *testing.T) {
	sales := []entity.Sale{{Date: "2024-01-01", TotalAmount: d(150000), BankakAmount: d(100000), CashAmount: d(50000)}}
	expenses := []entity.Expense{
		{Description: "Electricity Bill", Amount: d(5000), PaymentMethod: enum.PaymentMethodBankak, Date: "2024-01-01"},
		{Description: "Daily Snacks", Amount: d(2000), PaymentMethod: enum.PaymentMethodCash, Date: "2024-01-01"},
	}
	purchases := []entity.Purchase{{ItemName: "Sugar Sack 50kg", Amount: d(45000), Date: "2024-01-01"}}

	r := Aggregate(sales, expenses, purchases)

	assertAmount(t, "totalSales", r.TotalSales, d(150000))
	assertAmount(t, "totalExpenses", r.TotalExpenses, d(7000))
	assertAmount(t, "totalPurchases", r.TotalPurchases, d(45000))
	assertAmount(t, "salesBreakdown.bankak", r.SalesBreakdown.Bankak, d(100000))
	assertAmount(t, "salesBreakdown.cash", r.SalesBreakdown.Cash, d(50000))
	assertAmount(t, "expensesBreakdown.bankak", r.ExpensesBreakdown.Bankak, d(5000))
	assertAmount(t, "expensesBreakdown.cash", r.ExpensesBreakdown.Cash, d(2000))
	assertAmount(t, "netBankak", r.NetBankak, d(95000))
	assertAmount(t, "netCash", r.NetCash, d(48000))
	assertAmount(t, "dashboard net", r.DashboardNetProfit(), d(143000))
	assertAmount(t, "period net", r.PeriodNetProfit(), d(98000))
}

func TestAggregateBreakdownIsIndependentOfTotal(t *testing.T) {
	// Breakdown disagrees with the total by far more than the tolerance.
	sales := []entity.Sale{{TotalAmount: d(1000), BankakAmount: d(100), CashAmount: d(200)}}

	r := Aggregate(sales, nil, nil)

	assertAmount(t, "totalSales", r.TotalSales, d(1000))
	assertAmount(t, "salesBreakdown.bankak", r.SalesBreakdown.Bankak, d(100))
	assertAmount(t, "salesBreakdown.cash", r.SalesBreakdown.Cash, d(200))
}

func TestAggregateNetIdentities(t *testing.T) {
	sales := []entity.Sale{
		{TotalAmount: d(300), BankakAmount: d(120), CashAmount: d(180)},
		{TotalAmount: decimal.RequireFromString("99.5"), BankakAmount: decimal.RequireFromString("49.25"), CashAmount: decimal.RequireFromString("50.25")},
	}
	expenses := []entity.Expense{
		{Amount: d(500), PaymentMethod: enum.PaymentMethodBankak},
		{Amount: decimal.RequireFromString("0.75"), PaymentMethod: enum.PaymentMethodCash},
		{Amount: d(0), PaymentMethod: enum.PaymentMethodCash},
	}

	r := Aggregate(sales, expenses, nil)

	assertAmount(t, "netBankak", r.NetBankak, r.SalesBreakdown.Bankak.Sub(r.ExpensesBreakdown.Bankak))
	assertAmount(t, "netCash", r.NetCash, r.SalesBreakdown.Cash.Sub(r.ExpensesBreakdown.Cash))
	assertAmount(t, "expense split", r.ExpensesBreakdown.Bankak.Add(r.ExpensesBreakdown.Cash), r.TotalExpenses)
	assertAmount(t, "sales split", r.SalesBreakdown.Bankak.Add(r.SalesBreakdown.Cash), r.TotalSales)
	assertAmount(t, "netBankak value", r.NetBankak, decimal.RequireFromString("-330.75"))
}

func TestAggregateIsDeterministic(t *testing.T) {
	sales := []entity.Sale{{TotalAmount: d(10), BankakAmount: d(4), CashAmount: d(6)}}
	expenses := []entity.Expense{{Amount: d(3), PaymentMethod: enum.PaymentMethodCash}}
	purchases := []entity.Purchase{{Amount: d(2)}}

	first, _ := json.Marshal(Aggregate(sales, expenses, purchases))
	second, _ := json.Marshal(Aggregate(sales, expenses, purchases))
	if string(first) != string(second) {
		t.Fatalf("recomputation differs:\n%s\n%s", first, second)
	}
}

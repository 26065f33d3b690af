package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	"github.com/sangkips/daybook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "daybook.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Sales().Create(context.Background(), &entity.Sale{Date: "2024-01-01"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	sale, err := second.Sales().GetByDate(context.Background(), "2024-01-01")
	if err != nil || sale == nil {
		t.Fatalf("sale should survive reopen: %v %v", sale, err)
	}
}

func TestSaleRoundTrip(t *testing.T) {
	ctx := context.Background()
	sales := openTestStore(t).Sales()

	in := &entity.Sale{
		Date:         "2024-01-01",
		TotalAmount:  decimal.RequireFromString("150000.50"),
		BankakAmount: decimal.NewFromInt(100000),
		CashAmount:   decimal.RequireFromString("50000.50"),
	}
	if err := sales.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if in.ID == 0 || in.CreatedAt.IsZero() {
		t.Fatalf("id and createdAt should be assigned: %+v", in)
	}

	got, err := sales.GetByDate(ctx, "2024-01-01")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if !got.TotalAmount.Equal(in.TotalAmount) || !got.CashAmount.Equal(in.CashAmount) {
		t.Fatalf("amounts changed: %+v", got)
	}
	if !got.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, in.CreatedAt)
	}

	missing, err := sales.GetByDate(ctx, "2024-01-02")
	if err != nil || missing != nil {
		t.Fatalf("absent date should be nil, nil: %v %v", missing, err)
	}
}

func TestSaleDuplicateDate(t *testing.T) {
	ctx := context.Background()
	sales := openTestStore(t).Sales()

	if err := sales.Create(ctx, &entity.Sale{Date: "2024-01-01"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := sales.Create(ctx, &entity.Sale{Date: "2024-01-01"})
	if !errors.Is(err, domainRepo.ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}

	other := &entity.Sale{Date: "2024-01-02"}
	_ = sales.Create(ctx, other)
	other.Date = "2024-01-01"
	if err := sales.Update(ctx, other); !errors.Is(err, domainRepo.ErrDuplicateDate) {
		t.Fatalf("update onto taken date: %v", err)
	}

	all, _ := sales.List(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(all))
	}
	if all[0].Date != "2024-01-02" {
		t.Fatalf("list should be newest first, got %s", all[0].Date)
	}
}

func TestSaleUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	sales := openTestStore(t).Sales()

	err := sales.Update(ctx, &entity.Sale{ID: 42, Date: "2024-01-01"})
	if !errors.Is(err, domainRepo.ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound, got %v", err)
	}

	// Rewriting identical values still counts as a match.
	sale := &entity.Sale{Date: "2024-01-02", TotalAmount: decimal.NewFromInt(10)}
	if err := sales.Create(ctx, sale); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := sales.Update(ctx, sale); err != nil {
		t.Fatalf("unchanged update: %v", err)
	}
}

func TestRangeReadsAreInclusive(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, date := range []string{"2023-12-31", "2024-01-01", "2024-01-31", "2024-02-01"} {
		_ = store.Sales().Create(ctx, &entity.Sale{Date: date, TotalAmount: decimal.NewFromInt(1)})
		_ = store.Expenses().Create(ctx, &entity.Expense{Description: "x", Amount: decimal.NewFromInt(1), PaymentMethod: enum.PaymentMethodBankak, Date: date})
		_ = store.Purchases().Create(ctx, &entity.Purchase{ItemName: "y", Amount: decimal.NewFromInt(1), Date: date})
	}

	sales, err := store.Sales().ListByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	expenses, err := store.Expenses().ListByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("expenses: %v", err)
	}
	purchases, err := store.Purchases().ListByDateRange(ctx, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("purchases: %v", err)
	}

	if len(sales) != 2 || len(expenses) != 2 || len(purchases) != 2 {
		t.Fatalf("got %d sales %d expenses %d purchases, want 2 each", len(sales), len(expenses), len(purchases))
	}
	if expenses[0].PaymentMethod != enum.PaymentMethodBankak {
		t.Fatalf("payment method lost: %v", expenses[0].PaymentMethod)
	}
}

func TestExpenseDelete(t *testing.T) {
	ctx := context.Background()
	expenses := openTestStore(t).Expenses()

	e := &entity.Expense{Description: "Electricity Bill", Amount: decimal.NewFromInt(5000), PaymentMethod: enum.PaymentMethodBankak, Date: "2024-01-01"}
	if err := expenses.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := expenses.Delete(ctx, e.ID)
	if err != nil || !deleted {
		t.Fatalf("delete: %v %v", deleted, err)
	}
	deleted, err = expenses.Delete(ctx, e.ID)
	if err != nil || deleted {
		t.Fatalf("second delete: %v %v", deleted, err)
	}
}

func TestIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	keys := openTestStore(t).IdempotencyKeys()

	live := &entity.IdempotencyKey{Key: "k1", Endpoint: "POST /api/expenses", ResponseCode: 201, ResponseBody: `{"id":1}`, ExpiresAt: time.Now().Add(time.Hour)}
	stale := &entity.IdempotencyKey{Key: "k2", Endpoint: "POST /api/expenses", ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Hour)}
	if err := keys.Create(ctx, live); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if err := keys.Create(ctx, stale); err != nil {
		t.Fatalf("create stale: %v", err)
	}

	if err := keys.DeleteExpired(ctx); err != nil {
		t.Fatalf("delete expired: %v", err)
	}

	got, err := keys.GetByKey(ctx, "k1", "POST /api/expenses")
	if err != nil || got == nil {
		t.Fatalf("live key: %v %v", got, err)
	}
	if got.ResponseBody != `{"id":1}` || got.ResponseCode != 201 {
		t.Fatalf("unexpected key %+v", got)
	}
	if gone, _ := keys.GetByKey(ctx, "k2", "POST /api/expenses"); gone != nil {
		t.Fatal("stale key should be removed")
	}
}

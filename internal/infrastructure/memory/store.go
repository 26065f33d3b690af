// Package memory keeps every record in process memory. It backs the tests and
// stands in when the local database cannot be opened.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
)

// Store holds all collections behind one lock
type Store struct {
	mu sync.RWMutex

	sales     []entity.Sale
	expenses  []entity.Expense
	purchases []entity.Purchase
	ikeys     []entity.IdempotencyKey

	nextSaleID     uint
	nextExpenseID  uint
	nextPurchaseID uint
	nextKeyID      uint

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) Sales() domainRepo.SaleRepository { return &saleRepository{s} }
func (s *Store) Expenses() domainRepo.ExpenseRepository { return &expenseRepository{s} }
func (s *Store) Purchases() domainRepo.PurchaseRepository { return &purchaseRepository{s} }
func (s *Store) IdempotencyKeys() domainRepo.IdempotencyRepository { return &idempotencyRepository{s} }

// Close is a no-op
func (s *Store) Close() error { return nil }

// stamp returns a strictly increasing creation time so ordering by createdAt
// is stable even when the clock does not advance between inserts
func (s *Store) stamp(last time.Time) time.Time {
	t := s.now().UTC()
	if !t.After(last) {
		t = last.Add(time.Microsecond)
	}
	return t
}

type saleRepository struct{ s *Store }

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var last time.Time
	for _, existing := range r.s.sales {
		if existing.Date == sale.Date {
			return domainRepo.ErrDuplicateDate
		}
		if existing.CreatedAt.After(last) {
			last = existing.CreatedAt
		}
	}

	r.s.nextSaleID++
	sale.ID = r.s.nextSaleID
	sale.CreatedAt = r.s.stamp(last)
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sale := range r.s.sales {
		if sale.ID == id {
			out := sale
			return &out, nil
		}
	}
	return nil, nil
}

func (r *saleRepository) GetByDate(ctx context.Context, date string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, sale := range r.s.sales {
		if sale.Date == date {
			out := sale
			return &out, nil
		}
	}
	return nil, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idx := -1
	for i, existing := range r.s.sales {
		if existing.ID == sale.ID {
			idx = i
			continue
		}
		if existing.Date == sale.Date {
			return domainRepo.ErrDuplicateDate
		}
	}
	if idx < 0 {
		return domainRepo.ErrSaleNotFound
	}

	sale.CreatedAt = r.s.sales[idx].CreatedAt
	r.s.sales[idx] = *sale
	return nil
}

func (r *saleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	r.s.mu.RLock()
	out := append([]entity.Sale(nil), r.s.sales...)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *saleRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Sale, error) {
	r.s.mu.RLock()
	var out []entity.Sale
	for _, sale := range r.s.sales {
		if sale.Date >= start && sale.Date <= end {
			out = append(out, sale)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type expenseRepository struct{ s *Store }

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var last time.Time
	if n := len(r.s.expenses); n > 0 {
		last = r.s.expenses[n-1].CreatedAt
	}
	r.s.nextExpenseID++
	expense.ID = r.s.nextExpenseID
	expense.CreatedAt = r.s.stamp(last)
	r.s.expenses = append(r.s.expenses, *expense)
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.expenses {
		if e.ID == id {
			r.s.expenses = append(r.s.expenses[:i], r.s.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *expenseRepository) List(ctx context.Context) ([]entity.Expense, error) {
	r.s.mu.RLock()
	out := append([]entity.Expense(nil), r.s.expenses...)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *expenseRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Expense, error) {
	r.s.mu.RLock()
	var out []entity.Expense
	for _, e := range r.s.expenses {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type purchaseRepository struct{ s *Store }

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var last time.Time
	if n := len(r.s.purchases); n > 0 {
		last = r.s.purchases[n-1].CreatedAt
	}
	r.s.nextPurchaseID++
	purchase.ID = r.s.nextPurchaseID
	purchase.CreatedAt = r.s.stamp(last)
	r.s.purchases = append(r.s.purchases, *purchase)
	return nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, p := range r.s.purchases {
		if p.ID == id {
			r.s.purchases = append(r.s.purchases[:i], r.s.purchases[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *purchaseRepository) List(ctx context.Context) ([]entity.Purchase, error) {
	r.s.mu.RLock()
	out := append([]entity.Purchase(nil), r.s.purchases...)
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *purchaseRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Purchase, error) {
	r.s.mu.RLock()
	var out []entity.Purchase
	for _, p := range r.s.purchases {
		if p.Date >= start && p.Date <= end {
			out = append(out, p)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type idempotencyRepository struct{ s *Store }

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, k := range r.s.ikeys {
		if k.Key == key && k.Endpoint == endpoint {
			out := k
			return &out, nil
		}
	}
	return nil, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, k := range r.s.ikeys {
		if k.Key == ikey.Key && k.Endpoint == ikey.Endpoint {
			r.s.ikeys[i] = *ikey
			return nil
		}
	}
	r.s.nextKeyID++
	ikey.ID = r.s.nextKeyID
	ikey.CreatedAt = r.s.now().UTC()
	r.s.ikeys = append(r.s.ikeys, *ikey)
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	kept := r.s.ikeys[:0]
	for _, k := range r.s.ikeys {
		if k.ExpiresAt.After(now) {
			kept = append(kept, k)
		}
	}
	r.s.ikeys = kept
	return nil
}

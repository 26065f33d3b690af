// Package sqlite is the embedded single-file store used when the book runs
// on one machine without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sangkips/daybook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/daybook-api/internal/domain/repository"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps one sqlite database file
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the directory if needed, opens the database and migrates it
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; sqlite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Sales() domainRepo.SaleRepository { return &saleRepository{s} }
func (s *Store) Expenses() domainRepo.ExpenseRepository { return &expenseRepository{s} }
func (s *Store) Purchases() domainRepo.PurchaseRepository { return &purchaseRepository{s} }
func (s *Store) IdempotencyKeys() domainRepo.IdempotencyRepository { return &idempotencyRepository{s} }

func (s *Store) stamp() string {
	return s.now().UTC().Format(timeLayout)
}

func isUniqueViolation(err error) bool {
	var serr *sqlitedrv.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

type saleRepository struct{ s *Store }

const saleColumns = "id, date, total_amount, bankak_amount, cash_amount, created_at"

func scanSale(row scanner) (entity.Sale, error) {
	var (
		sale      entity.Sale
		createdAt string
	)
	if err := row.Scan(&sale.ID, &sale.Date, &sale.TotalAmount, &sale.BankakAmount, &sale.CashAmount, &createdAt); err != nil {
		return sale, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return sale, err
	}
	sale.CreatedAt = t
	return sale, nil
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	createdAt := r.s.stamp()
	res, err := r.s.db.ExecContext(ctx,
		`INSERT INTO daily_sales (date, total_amount, bankak_amount, cash_amount, created_at) VALUES (?, ?, ?, ?, ?)`,
		sale.Date, sale.TotalAmount.String(), sale.BankakAmount.String(), sale.CashAmount.String(), createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainRepo.ErrDuplicateDate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sale id: %w", err)
	}
	sale.ID = uint(id)
	sale.CreatedAt, _ = parseTime(createdAt)
	return nil
}

func (r *saleRepository) getOne(ctx context.Context, where string, arg any) (*entity.Sale, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM daily_sales WHERE `+where, arg)
	sale, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &sale, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uint) (*entity.Sale, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *saleRepository) GetByDate(ctx context.Context, date string) (*entity.Sale, error) {
	return r.getOne(ctx, "date = ?", date)
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE daily_sales SET date = ?, total_amount = ?, bankak_amount = ?, cash_amount = ? WHERE id = ?`,
		sale.Date, sale.TotalAmount.String(), sale.BankakAmount.String(), sale.CashAmount.String(), sale.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domainRepo.ErrDuplicateDate
		}
		return fmt.Errorf("update sale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if n == 0 {
		return domainRepo.ErrSaleNotFound
	}
	return nil
}

func (r *saleRepository) list(ctx context.Context, query string, args ...any) ([]entity.Sale, error) {
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

func (r *saleRepository) List(ctx context.Context) ([]entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM daily_sales ORDER BY date DESC, id DESC`)
}

func (r *saleRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Sale, error) {
	return r.list(ctx, `SELECT `+saleColumns+` FROM daily_sales WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, start, end)
}

type expenseRepository struct{ s *Store }

const expenseColumns = "id, description, amount, payment_method, date, created_at"

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	createdAt := r.s.stamp()
	res, err := r.s.db.ExecContext(ctx,
		`INSERT INTO expenses (description, amount, payment_method, date, created_at) VALUES (?, ?, ?, ?, ?)`,
		expense.Description, expense.Amount.String(), expense.PaymentMethod, expense.Date, createdAt)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("expense id: %w", err)
	}
	expense.ID = uint(id)
	expense.CreatedAt, _ = parseTime(createdAt)
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return n > 0, nil
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...any) ([]entity.Expense, error) {
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []entity.Expense
	for rows.Next() {
		var (
			e         entity.Expense
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaymentMethod, &e.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *expenseRepository) List(ctx context.Context) ([]entity.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC, id DESC`)
}

func (r *expenseRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, start, end)
}

type purchaseRepository struct{ s *Store }

const purchaseColumns = "id, item_name, amount, date, created_at"

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	createdAt := r.s.stamp()
	res, err := r.s.db.ExecContext(ctx,
		`INSERT INTO purchases (item_name, amount, date, created_at) VALUES (?, ?, ?, ?)`,
		purchase.ItemName, purchase.Amount.String(), purchase.Date, createdAt)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("purchase id: %w", err)
	}
	purchase.ID = uint(id)
	purchase.CreatedAt, _ = parseTime(createdAt)
	return nil
}

func (r *purchaseRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete purchase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete purchase: %w", err)
	}
	return n > 0, nil
}

func (r *purchaseRepository) list(ctx context.Context, query string, args ...any) ([]entity.Purchase, error) {
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []entity.Purchase
	for rows.Next() {
		var (
			p         entity.Purchase
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.ItemName, &p.Amount, &p.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *purchaseRepository) List(ctx context.Context) ([]entity.Purchase, error) {
	return r.list(ctx, `SELECT `+purchaseColumns+` FROM purchases ORDER BY date DESC, created_at DESC, id DESC`)
}

func (r *purchaseRepository) ListByDateRange(ctx context.Context, start, end string) ([]entity.Purchase, error) {
	return r.list(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`, start, end)
}

type idempotencyRepository struct{ s *Store }

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	var (
		k                    entity.IdempotencyKey
		createdAt, expiresAt string
	)
	err := r.s.db.QueryRowContext(ctx,
		`SELECT id, key, endpoint, request_hash, response_code, response_body, created_at, expires_at
		 FROM idempotency_keys WHERE key = ? AND endpoint = ?`, key, endpoint).
		Scan(&k.ID, &k.Key, &k.Endpoint, &k.RequestHash, &k.ResponseCode, &k.ResponseBody, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	if k.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if k.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	createdAt := r.s.stamp()
	res, err := r.s.db.ExecContext(ctx,
		`INSERT INTO idempotency_keys (key, endpoint, request_hash, response_code, response_body, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (key, endpoint) DO UPDATE SET
		   request_hash = excluded.request_hash,
		   response_code = excluded.response_code,
		   response_body = excluded.response_body,
		   expires_at = excluded.expires_at`,
		ikey.Key, ikey.Endpoint, ikey.RequestHash, ikey.ResponseCode, ikey.ResponseBody, createdAt,
		ikey.ExpiresAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		ikey.ID = uint(id)
	}
	ikey.CreatedAt, _ = parseTime(createdAt)
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.s.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE expires_at < ?`, r.s.stamp())
	if err != nil {
		return fmt.Errorf("delete expired idempotency keys: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const expenseColumns = `id, date, time, category, description, amount, payment_method, icon`

func (r *SQLiteRepository) ListExpenses(ctx context.Context, date civil.Date) ([]core.ExpenseRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date.IsZero() {
		rows, err = r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY rowid`)
	} else {
		rows, err = r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE date = ? ORDER BY rowid`, date.String())
	}
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			e           core.ExpenseRecord
			day, amount string
		)
		if err := rows.Scan(&e.ID, &day, &e.Time, &e.Category, &e.Description, &amount, &e.PaymentMethod, &e.Icon); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = civil.ParseDate(day); err != nil {
			return nil, fmt.Errorf("expense %s date %q: %w", e.ID, day, err)
		}
		if e.Amount, err = core.ParseMoney(amount); err != nil {
			return nil, fmt.Errorf("expense %s amount %q: %w", e.ID, amount, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ImportExpenses inserts or replaces expense records in one transaction.
func (r *SQLiteRepository) ImportExpenses(ctx context.Context, records []core.ExpenseRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date, time = excluded.time, category = excluded.category,
			description = excluded.description, amount = excluded.amount,
			payment_method = excluded.payment_method, icon = excluded.icon`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, e := range records {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Date.String(), e.Time, e.Category, e.Description,
			e.Amount.Decimal().String(), e.PaymentMethod, e.Icon); err != nil {
			return 0, fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Expenses imported to SQLite", "count", len(records))
	return len(records), nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, date civil.Date) (core.AccountState, error) {
	var (
		a               core.AccountState
		starting, today string
		closed          bool
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT starting_cash, today_starting_cash, is_closed FROM account_states WHERE date = ?`,
		date.String()).Scan(&starting, &today, &closed)
	if errors.Is(err, sql.ErrNoRows) {
		return core.AccountState{}, fmt.Errorf("account %s: %w", date, ports.ErrNotFound)
	}
	if err != nil {
		return core.AccountState{}, fmt.Errorf("get account %s: %w", date, err)
	}
	a.Date = date
	a.IsClosed = closed
	if a.StartingCash, err = core.ParseMoney(starting); err != nil {
		return core.AccountState{}, fmt.Errorf("account %s starting cash: %w", date, err)
	}
	if a.TodayStartingCash, err = core.ParseMoney(today); err != nil {
		return core.AccountState{}, fmt.Errorf("account %s today starting cash: %w", date, err)
	}
	return a, nil
}

// SaveAccount upserts the day's account. A closed day cannot be reopened.
func (r *SQLiteRepository) SaveAccount(ctx context.Context, a core.AccountState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save account: %w", err)
	}
	defer tx.Rollback()

	var closed bool
	err = tx.QueryRowContext(ctx, `SELECT is_closed FROM account_states WHERE date = ?`, a.Date.String()).Scan(&closed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read account %s: %w", a.Date, err)
	}
	if closed && !a.IsClosed {
		return fmt.Errorf("account %s: %w", a.Date, core.ErrAccountClosed)
	}

	var closedAt any
	if a.IsClosed && !closed {
		closedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO account_states (date, starting_cash, today_starting_cash, is_closed, closed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			starting_cash = excluded.starting_cash,
			today_starting_cash = excluded.today_starting_cash,
			is_closed = excluded.is_closed,
			closed_at = COALESCE(account_states.closed_at, excluded.closed_at)`,
		a.Date.String(), a.StartingCash.Decimal().String(), a.TodayStartingCash.Decimal().String(), a.IsClosed, closedAt)
	if err != nil {
		return fmt.Errorf("save account %s: %w", a.Date, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit account %s: %w", a.Date, err)
	}

	slog.InfoContext(ctx, "Account state saved", "date", a.Date.String(), "is_closed", a.IsClosed)
	return nil
}

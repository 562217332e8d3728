package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/civil"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

const saleColumns = `id, product_name, lc_number, quantity, price, customer, unit, invoice_status, product_id, category, size, notes, date`

func (r *SQLiteRepository) SaveSale(ctx context.Context, s core.SalesRecord) error {
	var date any
	if s.Date != nil {
		date = s.Date.String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			product_name = excluded.product_name, lc_number = excluded.lc_number,
			quantity = excluded.quantity, price = excluded.price, customer = excluded.customer,
			unit = excluded.unit, invoice_status = excluded.invoice_status,
			product_id = excluded.product_id, category = excluded.category, size = excluded.size,
			notes = excluded.notes, date = excluded.date,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		s.ID, s.ProductName, s.LCNumber, s.Quantity.Decimal().String(), s.Price.Decimal().String(),
		s.Customer, s.Unit, string(s.InvoiceStatus), s.ProductID, s.Category, s.Size, s.Notes, date)
	if err != nil {
		return fmt.Errorf("save sale %s: %w", s.ID, err)
	}

	slog.InfoContext(ctx, "Sale saved to SQLite", "id", s.ID, "product", s.ProductName, "total", s.TotalAmount().String())
	return nil
}

func (r *SQLiteRepository) GetSale(ctx context.Context, id string) (core.SalesRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	s, err := scanSale(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.SalesRecord{}, fmt.Errorf("sale %s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return core.SalesRecord{}, fmt.Errorf("get sale %s: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListSales(ctx context.Context) ([]core.SalesRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []core.SalesRecord
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSale(row scanner) (core.SalesRecord, error) {
	var (
		s               core.SalesRecord
		qty, price, inv string
		date            sql.NullString
	)
	if err := row.Scan(&s.ID, &s.ProductName, &s.LCNumber, &qty, &price, &s.Customer, &s.Unit, &inv,
		&s.ProductID, &s.Category, &s.Size, &s.Notes, &date); err != nil {
		return core.SalesRecord{}, err
	}
	var err error
	if s.Quantity, err = core.ParseMoney(qty); err != nil {
		return core.SalesRecord{}, fmt.Errorf("sale %s quantity %q: %w", s.ID, qty, err)
	}
	if s.Price, err = core.ParseMoney(price); err != nil {
		return core.SalesRecord{}, fmt.Errorf("sale %s price %q: %w", s.ID, price, err)
	}
	s.InvoiceStatus = core.InvoiceStatus(inv)
	if date.Valid && date.String != "" {
		d, err := civil.ParseDate(date.String)
		if err != nil {
			return core.SalesRecord{}, fmt.Errorf("sale %s date %q: %w", s.ID, date.String, err)
		}
		s.Date = &d
	}
	return s, nil
}

const teamColumns = `id, name, phone, role, location, status, avatar`

func (r *SQLiteRepository) SaveTeamMember(ctx context.Context, m core.TeamMember) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_members (`+teamColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, phone = excluded.phone, role = excluded.role,
			location = excluded.location, status = excluded.status, avatar = excluded.avatar,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		m.ID, m.Name, m.Phone, string(m.Role), m.Location, string(m.Status), m.Avatar)
	if err != nil {
		return fmt.Errorf("save team member %s: %w", m.ID, err)
	}

	slog.InfoContext(ctx, "Team member saved to SQLite", "id", m.ID, "role", string(m.Role))
	return nil
}

func (r *SQLiteRepository) GetTeamMember(ctx context.Context, id string) (core.TeamMember, error) {
	var m core.TeamMember
	err := r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM team_members WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Phone, &m.Role, &m.Location, &m.Status, &m.Avatar)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TeamMember{}, fmt.Errorf("team member %s: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return core.TeamMember{}, fmt.Errorf("get team member %s: %w", id, err)
	}
	return m, nil
}

func (r *SQLiteRepository) ListTeamMembers(ctx context.Context) ([]core.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM team_members ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var out []core.TeamMember
	for rows.Next() {
		var m core.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Role, &m.Location, &m.Status, &m.Avatar); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

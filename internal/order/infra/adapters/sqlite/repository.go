// Package sqlite provides a SQLite-backed implementation of
// ports.OrderRepository.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — order placement writes while list endpoints read concurrently.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orderhub/internal/order/core/domain"
	"orderhub/internal/order/core/ports"

	// Register the pure-Go SQLite driver.
	// modernc.org/sqlite avoids CGO, which keeps Docker (Alpine) builds simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup.
// Orders are write-once: rows in both tables are never updated or deleted
// by this service. Money columns are TEXT holding exact decimal strings;
// REAL would reintroduce binary floating point into the totals.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id            TEXT PRIMARY KEY,
    owner_id      TEXT NOT NULL,
    status        TEXT NOT NULL,
    total_amount  TEXT NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
    order_id    TEXT    NOT NULL REFERENCES orders(id),
    position    INTEGER NOT NULL,
    product_id  TEXT    NOT NULL,
    quantity    INTEGER NOT NULL,
    unit_price  TEXT    NOT NULL,
    line_total  TEXT    NOT NULL,
    PRIMARY KEY (order_id, position)
);

CREATE INDEX IF NOT EXISTS idx_orders_owner ON orders(owner_id, created_at);
`

// Repository is the SQLite implementation of ports.OrderRepository.
type Repository struct {
	db *sql.DB
}

var _ ports.OrderRepository = (*Repository)(nil)

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes _pragma query parameters for connection state.
	// WAL enables concurrent readers; busy_timeout waits for locks instead
	// of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts the aggregate and its lines in one transaction, so a
// half-written order is never visible to readers.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, owner_id, status, total_amount, created_at) VALUES (?, ?, ?, ?, ?)`,
		order.ID,
		order.OwnerID,
		string(order.Status),
		order.TotalAmount.String(),
		formatTime(order.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order %q: %w", order.ID, err)
	}

	const lineQ = `
		INSERT INTO order_lines (order_id, position, product_id, quantity, unit_price, line_total)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, lineQ,
			order.ID, i, line.ProductID, line.Quantity,
			line.UnitPrice.String(), line.LineTotal.String(),
		); err != nil {
			return fmt.Errorf("sqlite: insert line %d of order %q: %w", i, order.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit order %q: %w", order.ID, err)
	}
	return nil
}

// FindByID loads one aggregate with its lines in submitted order.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, status, total_amount, created_at FROM orders WHERE id = ?`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindByOwner returns the owner's orders in creation order.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, owner_id, status, total_amount, created_at
		 FROM orders WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
}

// FindAll returns every order in creation order.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, owner_id, status, total_amount, created_at
		 FROM orders ORDER BY created_at, id`)
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate orders: %w", err)
	}

	for _, order := range orders {
		if err := r.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) loadLines(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, quantity, unit_price, line_total
		 FROM order_lines WHERE order_id = ? ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("sqlite: query lines of %q: %w", order.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		var unitPrice, lineTotal string
		if err := rows.Scan(&line.ProductID, &line.Quantity, &unitPrice, &lineTotal); err != nil {
			return fmt.Errorf("sqlite: scan line of %q: %w", order.ID, err)
		}
		if line.UnitPrice, err = parseDecimal(unitPrice); err != nil {
			return err
		}
		if line.LineTotal, err = parseDecimal(lineTotal); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
	}
	return rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var order domain.Order
	var status, total, createdAt string
	if err := s.Scan(&order.ID, &order.OwnerID, &status, &total, &createdAt); err != nil {
		return nil, err
	}

	order.Status = domain.Status(status)

	var err error
	if order.TotalAmount, err = parseDecimal(total); err != nil {
		return nil, err
	}
	if order.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &order, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sqlite: parse amount %q: %w", s, err)
	}
	return d, nil
}

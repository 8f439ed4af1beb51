package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/supplyline/pricelist/internal/extract"
)

// Record is a stored product row.
type Record struct {
	ID       int64
	Supplier string
	Name     string
	Price    *float64
	Stock    string
	Facets   Facets
}

// Store wraps the SQLite products table.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS products (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	supplier   TEXT NOT NULL,
	name       TEXT NOT NULL,
	price      REAL,
	stock      TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT '',
	diameter   TEXT NOT NULL DEFAULT '',
	material   TEXT NOT NULL DEFAULT '',
	pressure   TEXT NOT NULL DEFAULT '',
	execution  TEXT NOT NULL DEFAULT '',
	standard   TEXT NOT NULL DEFAULT '',
	extra      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_supplier ON products(supplier);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_diameter ON products(diameter);

CREATE TABLE IF NOT EXISTS request_items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	source     TEXT NOT NULL,
	name       TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Open opens or creates the catalog database and ensures the schema.
// Use ":memory:" for an in-memory store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("catalog.open", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// modernc.org/sqlite serializes writes itself; one connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure catalog schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	s.logger.Info("catalog.close")
	return s.db.Close()
}

// ReplaceForSupplier swaps the supplier's rows for the given products in one
// transaction, so a reload never leaves the supplier half-updated. Facets
// are parsed from each product name at insert time.
func (s *Store) ReplaceForSupplier(ctx context.Context, supplier string, products []extract.Product) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE supplier = ?`, supplier); err != nil {
		return 0, fmt.Errorf("clear supplier rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (supplier, name, price, stock, category, diameter, material, pressure, execution, standard, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		f := ParseFacets(p.FullName)
		var price any
		if p.Price != nil {
			price = *p.Price
		}
		if _, err := stmt.ExecContext(ctx, supplier, p.FullName, price, p.Stock,
			f.Category, f.Diameter, f.Material, f.Pressure, f.Execution, f.Standard, f.Extra); err != nil {
			return 0, fmt.Errorf("insert product %q: %w", p.FullName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace: %w", err)
	}
	s.logger.Info("catalog.replace.ok", "supplier", supplier, "count", len(products))
	return len(products), nil
}

// SaveRequestItems appends the extracted positions of one client request,
// keyed by the source document, as the audit trail of what was asked for.
func (s *Store) SaveRequestItems(ctx context.Context, source string, items []extract.RequestedItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin request save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO request_items (source, name, quantity) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare request insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, source, it.FullName, it.Quantity); err != nil {
			return fmt.Errorf("insert request item %q: %w", it.FullName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit request save: %w", err)
	}
	s.logger.Info("catalog.request_items.saved", "source", source, "count", len(items))
	return nil
}

// All returns every stored record.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier, name, price, stock, category, diameter, material, pressure, execution, standard, extra
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var price sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Supplier, &r.Name, &price, &r.Stock,
			&r.Facets.Category, &r.Facets.Diameter, &r.Facets.Material,
			&r.Facets.Pressure, &r.Facets.Execution, &r.Facets.Standard, &r.Facets.Extra); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if price.Valid {
			v := price.Float64
			r.Price = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored products.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

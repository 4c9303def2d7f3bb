package repos

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the single process-wide handle, creates the schema and seeds
// demo data on an empty database. The handle is injected into every repo and
// closed at shutdown.
func OpenDB(dsn string) (*sqlx.DB, error) {
	if dsn != ":memory:" && !strings.Contains(dsn, "?") {
		dsn = "file:" + dsn + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema is idempotent; uniqueness among active records is modeled as
// partial unique indexes, with an application-level check inside the same
// transaction as each write so callers get a named CONFLICT error.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_active
  ON products(LOWER(name)) WHERE active = 1;

CREATE TABLE IF NOT EXISTS combos(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  description TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_combos_name_active
  ON combos(LOWER(name)) WHERE active = 1;

CREATE TABLE IF NOT EXISTS combo_items(
  combo_id TEXT NOT NULL REFERENCES combos(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id),
  PRIMARY KEY (combo_id, position)
);

CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  surname TEXT NOT NULL,
  rut TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_rut_active
  ON customers(rut) WHERE active = 1;
CREATE UNIQUE INDEX IF NOT EXISTS idx_customers_email_active
  ON customers(LOWER(email)) WHERE active = 1;

CREATE TABLE IF NOT EXISTS employees(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  surname TEXT NOT NULL,
  rut TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMINISTRATIVE','CASHIER','COOK','DELIVERY')),
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_rut_active
  ON employees(rut) WHERE active = 1;
CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_email_active
  ON employees(LOWER(email)) WHERE active = 1 AND email <> '';

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL REFERENCES customers(id),
  payment_method TEXT NOT NULL CHECK (payment_method IN ('DEBIT','CREDIT','CASH')),
  bank TEXT NOT NULL DEFAULT '',
  delivery_address TEXT NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0 CHECK (discount >= 0),
  total NUMERIC NOT NULL CHECK (total > 0),
  status TEXT NOT NULL DEFAULT 'PENDING',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_lines(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	ts := now()
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	products := []struct {
		name     string
		price    float64
		stock    int
		category string
	}{
		{"Classic Burger", 4990, 40, "Burgers"},
		{"Double Cheese Burger", 6490, 30, "Burgers"},
		{"French Fries", 1990, 80, "Sides"},
		{"Cola 500ml", 1490, 120, "Drinks"},
		{"Sundae", 2290, 25, "Desserts"},
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = uuid.NewString()
		tx.MustExec(`
			INSERT INTO products(id, name, price, stock, category, description, active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, '', 1, ?, ?)`,
			ids[i], p.name, p.price, p.stock, p.category, ts, ts)
	}

	// Demo combo: burger + fries + drink at 90% of the summed price.
	comboID := uuid.NewString()
	tx.MustExec(`
		INSERT INTO combos(id, name, price, description, active, created_at, updated_at)
		VALUES (?, 'Classic Combo', ?, 'Burger, fries and a drink', 1, ?, ?)`,
		comboID, 7623.0, ts, ts)
	for i, pid := range []string{ids[0], ids[2], ids[3]} {
		tx.MustExec(`INSERT INTO combo_items(combo_id, position, product_id) VALUES (?, ?, ?)`,
			comboID, i, pid)
	}

	tx.MustExec(`
		INSERT INTO customers(id, name, surname, rut, email, phone, address, active, created_at, updated_at)
		VALUES (?, 'Valentina', 'Rojas', '11.111.111-1', 'valentina@fastbite.test', '987654321', 'Av. Siempre Viva 742', 1, ?, ?)`,
		uuid.NewString(), ts, ts)

	return tx.Commit()
}

package repos

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Default credential seeded when the admin table is empty. It is public
// knowledge and must be changed with boutique-admin passwd.
const (
	DefaultAdminUser     = "admin"
	DefaultAdminPassword = "admin123"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer; also keeps a :memory: database on a single connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate brings any schema version up to date. It only ever creates tables,
// adds nullable columns and seeds the admin row when missing, so running it
// on every start is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := ensureSchema(ctx, db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if err := addMissingColumns(ctx, db); err != nil {
		return fmt.Errorf("add columns: %w", err)
	}
	if err := seedAdmin(ctx, db); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS admin(
  username TEXT PRIMARY KEY,
  password TEXT
);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  category TEXT,
  buy_price REAL,
  sell_price REAL,
  quantity INTEGER
);

CREATE TABLE IF NOT EXISTS sold_products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  category TEXT,
  buy_price REAL,
  sell_price REAL,
  quantity INTEGER,
  date_sold TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

type addedColumn struct {
	Table, Column, Type string
}

// Columns introduced after the first release, in the order they shipped.
// Append only.
var addedColumns = []addedColumn{
	{Table: "products", Column: "date_added", Type: "TEXT"},
	{Table: "sold_products", Column: "buy_price", Type: "REAL"},
}

func addMissingColumns(ctx context.Context, db *sqlx.DB) error {
	for _, ac := range addedColumns {
		cols, err := tableColumns(ctx, db, ac.Table)
		if err != nil {
			return err
		}
		if slices.Contains(cols, ac.Column) {
			continue
		}
		// Identifiers come from addedColumns, never from input.
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, ac.Table, ac.Column, ac.Type)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s.%s: %w", ac.Table, ac.Column, err)
		}
		logrus.WithFields(logrus.Fields{"table": ac.Table, "column": ac.Column}).Info("[migrate] column added")
	}
	return nil
}

func tableColumns(ctx context.Context, db *sqlx.DB, table string) ([]string, error) {
	var cols []string
	err := db.SelectContext(ctx, &cols, `SELECT name FROM pragma_table_info(?)`, table)
	return cols, err
}

func seedAdmin(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM admin`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO admin(username,password) VALUES(?,?)`, DefaultAdminUser, string(h)); err != nil {
		return err
	}
	logrus.Warnf("[seed] default admin %q created; change its password with boutique-admin passwd", DefaultAdminUser)
	return nil
}

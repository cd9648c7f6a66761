package engine_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"mdb-pump/internal/dialect"
	"mdb-pump/internal/engine"
	"mdb-pump/internal/schema"

	"github.com/go-test/deep"
	_ "github.com/mattn/go-sqlite3"
)

const customersScript = `-- CREATE TABLES
DROP TABLE IF EXISTS customers;
CREATE TABLE IF NOT EXISTS customers
 (
	ID			INTEGER NOT NULL, 
	First_Name			VARCHAR (50), 
	Balance			NUMERIC(15,2) DEFAULT 0
);
-- CREATE UNIQUE INDEX Customers_pkey ON Customers (ID);
ALTER TABLE customers ADD CONSTRAINT Customers_pkey PRIMARY KEY (ID);
`

type sliceSource [][]any

func (s sliceSource) Each(ctx context.Context, fn func(values []any) error) error {
	for _, row := range s {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	db := openDB(t)
	d := dialect.GetDialect("sqlite3")

	rows := sliceSource{
		{"1", "Ada", "10.5"},
		{"2", nil, "0"},
		{"3", "Grace", nil},
	}
	progress := 0
	result, err := engine.Load(context.Background(), db, d, engine.LoadRequest{
		Script:      customersScript,
		ApplySchema: true,
	}, rows, func() { progress++ })
	if err != nil {
		t.Fatal(err)
	}

	want := schema.LoadResult{TableName: "customers", Target: 3, Actual: 3, Status: "OK"}
	if diff := deep.Equal(result, want); diff != nil {
		t.Error(diff)
	}
	if progress != 3 {
		t.Errorf("Expected 3 progress ticks, got %d", progress)
	}

	var name sql.NullString
	if err := db.QueryRow("SELECT First_Name FROM customers WHERE ID = 2").Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name.Valid {
		t.Errorf("Expected NULL, got %q", name.String)
	}

	verified := engine.Verify(context.Background(), db, d, []schema.LoadResult{result})
	if verified[0].Status != "VERIFIED_OK" || verified[0].Actual != 3 {
		t.Errorf("unexpected verification: %+v", verified[0])
	}
}

func TestLoad_Clean(t *testing.T) {
	db := openDB(t)
	d := dialect.GetDialect("sqlite3")

	if _, err := db.Exec("CREATE TABLE customers (ID INTEGER NOT NULL, First_Name VARCHAR (50), Balance NUMERIC(15,2))"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO customers VALUES (7, 'old', 1), (8, 'old', 2)"); err != nil {
		t.Fatal(err)
	}

	result, err := engine.Load(context.Background(), db, d, engine.LoadRequest{
		Script: customersScript,
		Clean:  true,
	}, sliceSource{{"1", "Ada", "10.5"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Actual != 1 {
		t.Errorf("Expected 1 row, got %d", result.Actual)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected old rows to be removed, got %d rows", count)
	}
}

func TestLoad_FieldCountMismatchRollsBack(t *testing.T) {
	db := openDB(t)
	d := dialect.GetDialect("sqlite3")

	_, err := engine.Load(context.Background(), db, d, engine.LoadRequest{
		Script:      customersScript,
		ApplySchema: true,
	}, sliceSource{{"1", "Ada", "10.5"}, {"2", "Grace"}}, nil)
	if err == nil || !strings.Contains(err.Error(), "row 2 has 2 fields") {
		t.Fatalf("Expected field count error, got %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'customers'").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Error("Expected table creation to be rolled back")
	}
}

func TestLoad_NoCreateTable(t *testing.T) {
	db := openDB(t)
	_, err := engine.Load(context.Background(), db, dialect.GetDialect("sqlite3"), engine.LoadRequest{
		Script: "DROP TABLE IF EXISTS customers;",
	}, sliceSource{}, nil)
	if err != schema.ErrNoCreateTable {
		t.Errorf("Expected ErrNoCreateTable, got %v", err)
	}
}

const ordersLinesScript = `DROP TABLE IF EXISTS order_lines;
CREATE TABLE IF NOT EXISTS order_lines
 (
	ID			INTEGER NOT NULL, 
	Order_ID			INTEGER
);
-- CREATE Relationships ...
ALTER TABLE order_lines ADD CONSTRAINT Order_Lines_Order_ID_fk FOREIGN KEY (Order_ID) REFERENCES Orders(ID) ON UPDATE CASCADE ON DELETE CASCADE;
`

// passthroughDialect runs every statement as written, like the server dialects do.
type passthroughDialect struct {
	*dialect.SQLiteDialect
	applied []string
}

func (d *passthroughDialect) TranslateDDL(stmt string) (string, bool) {
	d.applied = append(d.applied, stmt)
	return stmt, true
}

func TestLoad_SkipsForeignKeys(t *testing.T) {
	db := openDB(t)
	d := &passthroughDialect{SQLiteDialect: &dialect.SQLiteDialect{}}

	result, err := engine.Load(context.Background(), db, d, engine.LoadRequest{
		Script:      ordersLinesScript,
		ApplySchema: true,
	}, sliceSource{{"1", "10"}, {"2", "11"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Actual != 2 {
		t.Errorf("Expected 2 rows, got %d", result.Actual)
	}
	for _, stmt := range d.applied {
		if strings.Contains(stmt, "FOREIGN KEY") {
			t.Errorf("foreign key applied: %s", stmt)
		}
	}
}

func TestLoad_ForeignKeysRunAfterRows(t *testing.T) {
	db := openDB(t)
	d := &passthroughDialect{SQLiteDialect: &dialect.SQLiteDialect{}}

	// SQLite rejects ADD CONSTRAINT, so the constraint fails like a missing
	// referenced table would on a server engine.
	_, err := engine.Load(context.Background(), db, d, engine.LoadRequest{
		Script:      ordersLinesScript,
		ApplySchema: true,
		ForeignKeys: true,
	}, sliceSource{{"1", "10"}}, nil)
	if err == nil || !strings.Contains(err.Error(), "Order_Lines_Order_ID_fk") {
		t.Fatalf("Expected foreign key error, got %v", err)
	}

	want := []string{
		"DROP TABLE IF EXISTS order_lines",
		"CREATE TABLE IF NOT EXISTS order_lines\n (\n\tID\t\t\tINTEGER NOT NULL,\n\tOrder_ID\t\t\tINTEGER\n)",
		"ALTER TABLE order_lines ADD CONSTRAINT Order_Lines_Order_ID_fk FOREIGN KEY (Order_ID) REFERENCES Orders(ID) ON UPDATE CASCADE ON DELETE CASCADE",
	}
	if diff := deep.Equal(d.applied, want); diff != nil {
		t.Error(diff)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'order_lines'").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Error("Expected table creation to be rolled back")
	}
}

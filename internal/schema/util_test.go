package schema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func unifiedTextDiff(aName, bName, aText, bText string) string {
	return fmt.Sprint(gotextdiff.ToUnified(
		aName,
		bName,
		aText,
		myers.ComputeEdits(span.URIFromPath(aName), aText, bText),
	))
}

func expectText(t *testing.T, actual, expected string) {
	if actual == expected {
		return
	}
	t.Helper()
	t.Errorf("unexpected value: %q\n%s", actual, unifiedTextDiff(`expected`, `actual`, expected, actual))
}

// orderDetailsSchema is mdb-schema postgres output for a small Access table.
var orderDetailsSchema = lines(
	"-- ----------------------------------------------------------",
	"-- MDB Tools - A library for reading MS Access database files",
	"-- ----------------------------------------------------------",
	"",
	"SET client_encoding = 'UTF-8';",
	"",
	"-- CREATE TABLES",
	`DROP TABLE IF EXISTS "Order Details";`,
	`CREATE TABLE IF NOT EXISTS "Order Details"`,
	" (",
	"\t\"ID\"\t\t\tSERIAL NOT NULL, ",
	"\t\"Order ID\"\t\t\tINTEGER, ",
	"\t\"1st Choice\"\t\t\tVARCHAR (50), ",
	"\t\"Desc\"\t\t\tTEXT, ",
	"\t\"New\"\t\t\tBOOL NOT NULL, ",
	"\t\"Unit Price\"\t\t\tNUMERIC(15,2) DEFAULT 0",
	");",
	`COMMENT ON COLUMN "Order Details"."Order ID" IS 'Link to orders';`,
	"",
	`CREATE UNIQUE INDEX "Order Details_pkey" ON "Order Details" ("ID");`,
	`CREATE INDEX "Order Details_Order ID_idx" ON "Order Details" ("Order ID");`,
	`ALTER TABLE "Order Details" ADD CONSTRAINT "Order Details_pkey" PRIMARY KEY ("ID");`,
	"",
	"-- CREATE Relationships ...",
	`ALTER TABLE "Order Details" ADD CONSTRAINT "Order Details_Order ID_fk" FOREIGN KEY ("Order ID") REFERENCES "Orders"("ID") ON UPDATE CASCADE ON DELETE CASCADE;`,
	"",
)

var orderDetailsFixed = lines(
	"-- ----------------------------------------------------------",
	"-- MDB Tools - A library for reading MS Access database files",
	"-- ----------------------------------------------------------",
	"",
	"",
	"",
	"-- CREATE TABLES",
	`DROP TABLE IF EXISTS order_details;`,
	`CREATE TABLE IF NOT EXISTS order_details`,
	" (",
	"\tID\t\t\tINTEGER NOT NULL, ",
	"\tOrder_ID\t\t\tINTEGER, ",
	"\t_1st_Choice\t\t\tVARCHAR (50), ",
	"\tDescription\t\t\tTEXT, ",
	"\tNewly\t\t\tBOOL NOT NULL, ",
	"\tUnit_Price\t\t\tNUMERIC(15,2) DEFAULT 0",
	");",
	`-- COMMENT ON COLUMN Order_Details.Order_ID IS 'Link to orders';`,
	"",
	`-- CREATE UNIQUE INDEX Order_Details_pkey ON Order_Details (ID);`,
	`-- CREATE INDEX Order_Details_Order_ID_idx ON Order_Details (Order_ID);`,
	`ALTER TABLE order_details ADD CONSTRAINT Order_Details_pkey PRIMARY KEY (ID);`,
	"",
	"-- CREATE Relationships ...",
	`ALTER TABLE order_details ADD CONSTRAINT Order_Details_Order_ID_fk FOREIGN KEY (Order_ID) REFERENCES Orders(ID) ON UPDATE CASCADE ON DELETE CASCADE;`,
	"",
)

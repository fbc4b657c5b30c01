package database

import "fmt"

// OrdersSchemaSQLite is the on-disk contract for the order store: one orders
// table keyed by order_id. Timestamps are stored as RFC3339 text.
const OrdersSchemaSQLite = `
CREATE TABLE IF NOT EXISTS orders (
    order_id TEXT PRIMARY KEY,
    customer_id TEXT,
    product_name TEXT,
    size TEXT,
    price REAL,
    status TEXT,
    order_date TEXT,
    estimated_delivery TEXT,
    shipping_address TEXT,
    payment_method TEXT,
    confirmed BOOLEAN DEFAULT FALSE
)`

// OrdersSchemaMySQL mirrors the sqlite layout for mysql deployments.
const OrdersSchemaMySQL = `
CREATE TABLE IF NOT EXISTS orders (
    order_id VARCHAR(16) PRIMARY KEY,
    customer_id VARCHAR(64),
    product_name VARCHAR(255),
    size VARCHAR(64),
    price DOUBLE,
    status VARCHAR(32),
    order_date VARCHAR(40),
    estimated_delivery VARCHAR(40),
    shipping_address TEXT,
    payment_method VARCHAR(64),
    confirmed BOOLEAN DEFAULT FALSE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// SetupSchema creates the orders table if it does not exist.
func (db *DB) SetupSchema() error {
	schema := OrdersSchemaSQLite
	if db.driver == "mysql" {
		schema = OrdersSchemaMySQL
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create orders table: %w", err)
	}

	return nil
}

// DropSchema removes the orders table. Used by setup --drop-first and tests.
func (db *DB) DropSchema() error {
	if _, err := db.Exec("DROP TABLE IF EXISTS orders"); err != nil {
		return fmt.Errorf("failed to drop orders table: %w", err)
	}

	return nil
}

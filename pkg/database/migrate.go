package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'customer',
		status TEXT NOT NULL DEFAULT 'none',
		profile JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS plants (
		id UUID PRIMARY KEY,
		seller_email TEXT NOT NULL,
		seller_name TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plants_seller_email ON plants (seller_email)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL,
		seller_email TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_image TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		address TEXT NOT NULL DEFAULT '',
		transaction_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders (customer_email)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_seller_email ON orders (seller_email)`,
}

// Migrate applies the idempotent schema statements in order.
func Migrate(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	"gretastore/pkg/errors"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	category TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	sales INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	nutrition_info TEXT NOT NULL DEFAULT '',
	shipping_info TEXT NOT NULL DEFAULT '',
	related_product_ids BIGINT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	customer_name TEXT NOT NULL,
	email TEXT NOT NULL,
	items JSONB NOT NULL,
	total NUMERIC(10,2) NOT NULL,
	status TEXT NOT NULL,
	payment_status TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS orders_date_idx ON orders (date DESC);

CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'client',
	phone TEXT NOT NULL DEFAULT ''
);
`

// EnsurePostgresSchema creates the store tables when they do not exist yet.
func EnsurePostgresSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return errors.Internal("Failed to create schema", err)
	}
	return nil
}

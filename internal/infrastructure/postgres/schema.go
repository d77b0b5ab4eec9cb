package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied idempotently at startup. Note that users.default_shop_id
// is deliberately not a foreign key: it is a logical pointer that may dangle
// after the user loses access to the shop, and then resolves to "no default".
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              UUID PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT UNIQUE,
		password_hash   TEXT NOT NULL,
		default_shop_id UUID,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shops (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		gstin         TEXT,
		pan           TEXT,
		cin           TEXT,
		address       TEXT,
		state         TEXT,
		state_code    TEXT,
		pin           TEXT,
		bank_detail   JSONB,
		signature_ref TEXT,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_shops (
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		shop_id    UUID NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
		role       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, shop_id)
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id              UUID PRIMARY KEY,
		shop_id         UUID NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
		created_by      UUID,
		serial_no       TEXT NOT NULL,
		date            TIMESTAMPTZ NOT NULL,
		type            TEXT NOT NULL DEFAULT 'INVOICE',
		gstin           TEXT,
		pan_no          TEXT,
		cin_no          TEXT,
		address         TEXT,
		state           TEXT,
		state_code      TEXT,
		shop_legal_name TEXT,
		bill_to         JSONB NOT NULL,
		ship_to         JSONB NOT NULL,
		bank_detail     JSONB,
		total           NUMERIC(10,2) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_shop_created ON invoices (shop_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS invoice_items (
		id            UUID PRIMARY KEY,
		invoice_id    UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		position      INT NOT NULL DEFAULT 0,
		description   TEXT,
		hsn_sac_code  TEXT,
		quantity      NUMERIC(10,2) NOT NULL DEFAULT 0,
		unit_value    NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount      NUMERIC(10,2) NOT NULL DEFAULT 0,
		taxable_value NUMERIC(10,2) NOT NULL DEFAULT 0,
		cgst_rate     NUMERIC(5,2) NOT NULL DEFAULT 0,
		cgst_amount   NUMERIC(10,2) NOT NULL DEFAULT 0,
		sgst_rate     NUMERIC(5,2) NOT NULL DEFAULT 0,
		sgst_amount   NUMERIC(10,2) NOT NULL DEFAULT 0,
		igst_rate     NUMERIC(5,2) NOT NULL DEFAULT 0,
		igst_amount   NUMERIC(10,2) NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id, position)`,
	`CREATE TABLE IF NOT EXISTS products (
		id               UUID PRIMARY KEY,
		shop_id          UUID NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		price            NUMERIC(10,2) NOT NULL DEFAULT 0,
		hsn              TEXT,
		category         TEXT,
		cgst             NUMERIC(5,2) NOT NULL DEFAULT 0,
		sgst             NUMERIC(5,2) NOT NULL DEFAULT 0,
		igst             NUMERIC(5,2) NOT NULL DEFAULT 0,
		discount_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_shop ON products (shop_id)`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
)

const migration = `
CREATE TABLE IF NOT EXISTS appointments (
    id uuid PRIMARY KEY,
    name text NOT NULL,
    phone text NOT NULL,
    email text NOT NULL,
    service text NOT NULL,
    date date NOT NULL,
    message text NOT NULL DEFAULT '',
    status text NOT NULL DEFAULT 'pending',
    ip_hash text NOT NULL,
    user_agent text,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS appointments_date_idx
ON appointments (date);

CREATE INDEX IF NOT EXISTS appointments_status_idx
ON appointments (status);

CREATE TABLE IF NOT EXISTS subscribers (
    id uuid PRIMARY KEY,
    email text NOT NULL,
    name text NOT NULL DEFAULT '',
    ip_hash text NOT NULL,
    subscribed_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS subscribers_email_lower_unique
ON subscribers (LOWER(email));

CREATE TABLE IF NOT EXISTS affiliate_clicks (
    id uuid PRIMARY KEY,
    asin text NOT NULL,
    product_name text NOT NULL,
    category text NOT NULL DEFAULT '',
    country text NOT NULL DEFAULT 'US',
    timezone text NOT NULL DEFAULT 'UTC',
    source text,
    campaign text,
    estimated_commission numeric,
    ip_hash text NOT NULL,
    user_agent text,
    clicked_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS affiliate_clicks_asin_idx
ON affiliate_clicks (asin);

CREATE INDEX IF NOT EXISTS affiliate_clicks_clicked_at_idx
ON affiliate_clicks (clicked_at);
`

// RunMigration applies the idempotent schema. There is no versioned
// migration history; every statement tolerates re-running.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, migration)
	return err
}

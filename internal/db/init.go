package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS bookmarks (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    url TEXT NOT NULL,
    title TEXT,
    notes TEXT,
    is_archived BOOLEAN NOT NULL DEFAULT FALSE,
    sort_order BIGINT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ,
    UNIQUE (user_id, url)
);

CREATE TABLE IF NOT EXISTS bookmark_images (
    id BIGSERIAL PRIMARY KEY,
    bookmark_id BIGINT NOT NULL REFERENCES bookmarks(id) ON DELETE CASCADE,
    image_url TEXT NOT NULL,
    content_type TEXT NOT NULL,
    width_px BIGINT,
    height_px BIGINT,
    size_bytes BIGINT,
    caption TEXT,
    position BIGINT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// DemoEmail is the address of the single seeded demo user.
const DemoEmail = "demo@bookmarks.local"

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// SeedDemoUser inserts the demo user the client signs in as. Safe to run
// on every startup.
func SeedDemoUser(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (email, display_name) VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`, DemoEmail, "Demo User")
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}
	return nil
}

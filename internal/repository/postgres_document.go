package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by the postgres documents
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresDocument struct {
	db   DBTX
	name string
}

// NewPostgresDocument creates a Document stored as one row of the snapshots table
func NewPostgresDocument(db DBTX, name string) Document {
	return &postgresDocument{db: db, name: name}
}

func (d *postgresDocument) Read(ctx context.Context) ([]byte, error) {
	var body []byte
	sql := `SELECT body FROM snapshots WHERE name = $1`
	err := d.db.QueryRow(ctx, sql, d.name).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", d.name, err)
	}
	return body, nil
}

func (d *postgresDocument) Write(ctx context.Context, data []byte) error {
	sql := `INSERT INTO snapshots (name, body, updated_at) VALUES ($1, $2, NOW())
            ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`
	if _, err := d.db.Exec(ctx, sql, d.name, data); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", d.name, err)
	}
	return nil
}

func (d *postgresDocument) Name() string {
	return "snapshots/" + d.name
}

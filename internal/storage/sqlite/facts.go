package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/anjali/internal/core"
)

type FactsRepo struct {
	db *sql.DB
}

func NewFactsRepo(db *sql.DB) *FactsRepo {
	return &FactsRepo{db: db}
}

func (r *FactsRepo) UpsertFact(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_info (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fact: %w", err)
	}
	return nil
}

func (r *FactsRepo) GetFact(ctx context.Context, key string) (core.Fact, error) {
	f := core.Fact{Key: key}
	err := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM user_info WHERE key = ?`, key,
	).Scan(&f.Value, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Fact{}, core.ErrNotFound
	}
	if err != nil {
		return core.Fact{}, fmt.Errorf("failed to get fact: %w", err)
	}
	return f, nil
}

func (r *FactsRepo) ListFacts(ctx context.Context) ([]core.Fact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM user_info ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	var facts []core.Fact
	for rows.Next() {
		var f core.Fact
		if err := rows.Scan(&f.Key, &f.Value, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/anjali/internal/core"
)

type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

// SaveMemory inserts rec and runs hook before commit.
func (r *MemoriesRepo) SaveMemory(ctx context.Context, rec core.MemoryRecord, hook core.TxHook) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO memories (id, memory_type, content, importance, context, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, string(rec.Type), rec.Content, rec.Importance, rec.Context, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert memory: %w", err)
		}
		return nil
	}, hook)
}

// ListMemories returns memories newest first. limit <= 0 means all.
func (r *MemoriesRepo) ListMemories(ctx context.Context, limit int) ([]core.MemoryRecord, error) {
	query := `SELECT id, memory_type, content, importance, context, created_at
		FROM memories ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var records []core.MemoryRecord
	for rows.Next() {
		var rec core.MemoryRecord
		var memType string
		if err := rows.Scan(&rec.ID, &memType, &rec.Content, &rec.Importance, &rec.Context, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		rec.Type = core.MemoryType(memType)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteMemory removes one memory and runs hook before commit.
// Returns core.ErrNotFound when id does not exist.
func (r *MemoriesRepo) DeleteMemory(ctx context.Context, id string, hook core.TxHook) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete memory: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return core.ErrNotFound
		}
		return nil
	}, hook)
}

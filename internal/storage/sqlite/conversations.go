package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

type ConversationsRepo struct {
	db *sql.DB
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{db: db}
}

func (r *ConversationsRepo) AddTurn(ctx context.Context, turn core.ConversationTurn) (int64, error) {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (role, content, mood, timestamp) VALUES (?, ?, ?, ?)`,
		turn.Role, turn.Content, string(turn.Mood), turn.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert conversation turn: %w", err)
	}
	return res.LastInsertId()
}

func (r *ConversationsRepo) RecentTurns(ctx context.Context, limit int) ([]core.ConversationTurn, error) {
	query := `SELECT id, role, content, mood, timestamp FROM conversations ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	var turns []core.ConversationTurn
	for rows.Next() {
		var t core.ConversationTurn
		var mood string
		if err := rows.Scan(&t.ID, &t.Role, &t.Content, &mood, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		t.Mood = core.Mood(mood)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded conversation turns")
	return turns, nil
}

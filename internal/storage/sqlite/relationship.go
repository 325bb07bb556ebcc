package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
)

type RelationshipRepo struct {
	db *sql.DB
}

func NewRelationshipRepo(db *sql.DB) *RelationshipRepo {
	return &RelationshipRepo{db: db}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readMetrics(ctx context.Context, q queryRower) (core.RelationshipMetrics, error) {
	var m core.RelationshipMetrics
	err := q.QueryRowContext(ctx,
		`SELECT interaction_count, positive_interactions, negative_interactions, relationship_points
		 FROM relationship_metrics WHERE id = 1`,
	).Scan(&m.InteractionCount, &m.PositiveInteractions, &m.NegativeInteractions, &m.RelationshipPoints)
	if err == sql.ErrNoRows {
		return core.RelationshipMetrics{}, nil
	}
	if err != nil {
		return core.RelationshipMetrics{}, fmt.Errorf("failed to read relationship metrics: %w", err)
	}
	return m, nil
}

func (r *RelationshipRepo) GetMetrics(ctx context.Context) (core.RelationshipMetrics, error) {
	return readMetrics(ctx, r.db)
}

// UpdateMetrics applies fn to the singleton row in one transaction.
func (r *RelationshipRepo) UpdateMetrics(ctx context.Context, fn func(core.RelationshipMetrics) core.RelationshipMetrics) (core.RelationshipMetrics, error) {
	var next core.RelationshipMetrics
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		cur, err := readMetrics(ctx, tx)
		if err != nil {
			return err
		}
		next = fn(cur)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO relationship_metrics (id, interaction_count, positive_interactions, negative_interactions, relationship_points)
			 VALUES (1, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			     interaction_count = excluded.interaction_count,
			     positive_interactions = excluded.positive_interactions,
			     negative_interactions = excluded.negative_interactions,
			     relationship_points = excluded.relationship_points`,
			next.InteractionCount, next.PositiveInteractions, next.NegativeInteractions, next.RelationshipPoints,
		)
		if err != nil {
			return fmt.Errorf("failed to update relationship metrics: %w", err)
		}
		return nil
	}, nil)
	if err != nil {
		return core.RelationshipMetrics{}, err
	}
	return next, nil
}

package relationship

import (
	"context"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

type Tracker struct {
	repo core.RelationshipRepository
}

func NewTracker(repo core.RelationshipRepository) *Tracker {
	return &Tracker{repo: repo}
}

// Update records one completed turn and returns the new metrics.
func (t *Tracker) Update(ctx context.Context, s core.Sentiment) (core.RelationshipMetrics, error) {
	m, err := t.repo.UpdateMetrics(ctx, func(cur core.RelationshipMetrics) core.RelationshipMetrics {
		return Apply(cur, s)
	})
	if err != nil {
		return core.RelationshipMetrics{}, fmt.Errorf("update relationship: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Str("sentiment", string(s)).
		Int("points", m.RelationshipPoints).
		Str("level", LevelFor(m.RelationshipPoints)).
		Msg("relationship updated")
	return m, nil
}

// Status reads the metrics and derives the level on every call.
func (t *Tracker) Status(ctx context.Context) (core.RelationshipStatus, error) {
	m, err := t.repo.GetMetrics(ctx)
	if err != nil {
		return core.RelationshipStatus{}, fmt.Errorf("read relationship: %w", err)
	}
	return StatusOf(m), nil
}

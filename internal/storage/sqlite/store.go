package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
)

// Store bundles the repositories over one database handle.
type Store struct {
	*FactsRepo
	*ConversationsRepo
	*MemoriesRepo
	*RelationshipRepo

	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		FactsRepo:         NewFactsRepo(db),
		ConversationsRepo: NewConversationsRepo(db),
		MemoriesRepo:      NewMemoriesRepo(db),
		RelationshipRepo:  NewRelationshipRepo(db),
		db:                db,
	}
}

// ClearAll wipes facts, conversations and memories, zeroes the relationship
// metrics and runs hook before commit.
func (s *Store) ClearAll(ctx context.Context, hook core.TxHook) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM memories`,
			`DELETE FROM conversations`,
			`DELETE FROM user_info`,
			`UPDATE relationship_metrics
			 SET interaction_count = 0, positive_interactions = 0, negative_interactions = 0, relationship_points = 0
			 WHERE id = 1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to clear store: %w", err)
			}
		}
		return nil
	}, hook)
}

var _ core.Store = (*Store)(nil)

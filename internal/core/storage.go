package core

import "context"

// TxHook runs inside a storage transaction right before commit.
// A non-nil error rolls the transaction back.
type TxHook func(ctx context.Context) error

type FactsRepository interface {
	UpsertFact(ctx context.Context, key, value string) error
	GetFact(ctx context.Context, key string) (Fact, error)
	ListFacts(ctx context.Context) ([]Fact, error)
}

type ConversationsRepository interface {
	AddTurn(ctx context.Context, turn ConversationTurn) (int64, error)
	// RecentTurns returns turns newest first. limit <= 0 means all.
	RecentTurns(ctx context.Context, limit int) ([]ConversationTurn, error)
}

type MemoriesRepository interface {
	SaveMemory(ctx context.Context, rec MemoryRecord, hook TxHook) error
	ListMemories(ctx context.Context, limit int) ([]MemoryRecord, error)
	DeleteMemory(ctx context.Context, id string, hook TxHook) error
}

type RelationshipRepository interface {
	GetMetrics(ctx context.Context) (RelationshipMetrics, error)
	UpdateMetrics(ctx context.Context, fn func(RelationshipMetrics) RelationshipMetrics) (RelationshipMetrics, error)
}

// Store is the structured store as a whole.
type Store interface {
	FactsRepository
	ConversationsRepository
	MemoriesRepository
	RelationshipRepository
	ClearAll(ctx context.Context, hook TxHook) error
}

// SemanticStore is the vector index over memory text.
type SemanticStore interface {
	Index(ctx context.Context, id, text string, metadata map[string]string) error
	Search(ctx context.Context, query string, k int) ([]SemanticHit, error)
	Delete(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

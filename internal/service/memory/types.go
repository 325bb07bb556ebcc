package memory

import (
	"context"

	"github.com/sandevgo/anjali/internal/core"
)

// Repository is the structured side the service writes through.
type Repository interface {
	core.MemoriesRepository
	ClearAll(ctx context.Context, hook core.TxHook) error
}

// indexLister is implemented by semantic stores that can enumerate ids.
type indexLister interface {
	IDs(ctx context.Context) ([]string, error)
}

// staleLister is implemented by semantic stores that can report entries
// embedded with a different embedder than the current one.
type staleLister interface {
	Stale(ctx context.Context) ([]string, error)
}

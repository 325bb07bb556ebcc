package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

const contextHeader = "Here's what I remember:"

// Memory keeps the structured and semantic stores in step. Writes to both
// stores and reconciliation runs are serialized on mu.
type Memory struct {
	mu    sync.Mutex
	repo  Repository
	index core.SemanticStore
	now   func() time.Time
}

func NewMemory(repo Repository, index core.SemanticStore) *Memory {
	return &Memory{
		repo:  repo,
		index: index,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Remember extracts candidates from text and stores each one under the
// given provenance label. Text with no cues stores nothing.
func (m *Memory) Remember(ctx context.Context, text, provenance string) ([]core.MemoryRecord, error) {
	candidates := Extract(text)
	if len(candidates) == 0 {
		return nil, nil
	}

	records := make([]core.MemoryRecord, 0, len(candidates))
	for _, c := range candidates {
		rec, err := m.Save(ctx, c, provenance)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}

	log.FromCtx(ctx).Debug().
		Int("count", len(records)).
		Str("context", provenance).
		Msg("stored memories")
	return records, nil
}

// Save writes one candidate to both stores. The semantic entry is indexed
// inside the structured transaction, so a failure on either side leaves
// neither committed.
func (m *Memory) Save(ctx context.Context, c core.MemoryCandidate, provenance string) (core.MemoryRecord, error) {
	rec := core.MemoryRecord{
		ID:         uuid.NewString(),
		Type:       c.Type,
		Content:    c.Content,
		Importance: c.Importance,
		Context:    provenance,
		CreatedAt:  m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.repo.SaveMemory(ctx, rec, func(ctx context.Context) error {
		return m.index.Index(ctx, rec.ID, rec.Content, metadataOf(rec))
	})
	if err != nil {
		return core.MemoryRecord{}, fmt.Errorf("save memory: %w", err)
	}
	return rec, nil
}

func metadataOf(rec core.MemoryRecord) map[string]string {
	return map[string]string{
		"type":       string(rec.Type),
		"importance": strconv.Itoa(rec.Importance),
		"context":    rec.Context,
		"timestamp":  rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

// recallOverfetch widens the search so that excluded ids and repeated
// texts can be dropped without coming back short.
const recallOverfetch = 3

// Recall returns up to k distinct memory texts, nearest first. Memories
// whose id is in exclude are skipped.
func (m *Memory) Recall(ctx context.Context, query string, k int, exclude ...string) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}
	hits, err := m.Search(ctx, query, k*recallOverfetch)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(hits))
	texts := make([]string, 0, k)
	for _, h := range hits {
		if _, ok := skip[h.ID]; ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(h.Text))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		texts = append(texts, h.Text)
		if len(texts) == k {
			break
		}
	}
	return texts, nil
}

func (m *Memory) Search(ctx context.Context, query string, k int) ([]core.SemanticHit, error) {
	hits, err := m.index.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search memories: %w", err)
	}
	return hits, nil
}

// RecallContext renders recalled memories as a context block, or "" when
// nothing was found.
func (m *Memory) RecallContext(ctx context.Context, query string, k int, exclude ...string) (string, error) {
	texts, err := m.Recall(ctx, query, k, exclude...)
	if err != nil {
		return "", err
	}
	return FormatContext(texts), nil
}

func FormatContext(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(contextHeader)
	for _, t := range texts {
		sb.WriteString("\n- ")
		sb.WriteString(t)
	}
	return sb.String()
}

func (m *Memory) List(ctx context.Context, limit int) ([]core.MemoryRecord, error) {
	return m.repo.ListMemories(ctx, limit)
}

// Forget deletes one memory from both stores.
func (m *Memory) Forget(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.repo.DeleteMemory(ctx, id, func(ctx context.Context) error {
		return m.index.Delete(ctx, id)
	})
}

// ClearAll wipes the structured store and resets the semantic collection
// as one operation.
func (m *Memory) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.ClearAll(ctx, m.index.Reset); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	log.FromCtx(ctx).Info().Msg("cleared all memories and conversations")
	return nil
}

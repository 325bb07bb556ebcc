package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "anjali_memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestFacts_UpsertLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.UpsertFact(ctx, "name", "Ravi"))
	require.NoError(t, s.UpsertFact(ctx, "name", "Ravi Kumar"))

	f, err := s.GetFact(ctx, "name")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", f.Value)

	facts, err := s.ListFacts(ctx)
	require.NoError(t, err)
	assert.Len(t, facts, 1)

	_, err = s.GetFact(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestConversations_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, content := range []string{"one", "two", "three"} {
		_, err := s.AddTurn(ctx, core.ConversationTurn{Role: core.RoleUser, Content: content, Mood: core.MoodFriendly})
		require.NoError(t, err)
	}

	turns, err := s.RecentTurns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "three", turns[0].Content)
	assert.Equal(t, "two", turns[1].Content)
	assert.Equal(t, core.MoodFriendly, turns[0].Mood)
	assert.False(t, turns[0].CreatedAt.IsZero())

	all, err := s.RecentTurns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestConversations_RejectsUnknownRole(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddTurn(context.Background(), core.ConversationTurn{Role: "tool", Content: "x"})
	assert.Error(t, err)
}

func TestMemories_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec := core.MemoryRecord{
		ID:         "a1",
		Type:       core.MemoryPreference,
		Content:    "I love mangoes",
		Importance: 6,
		Context:    "User said",
		CreatedAt:  time.Now().UTC().Add(-time.Minute),
	}
	hookCalls := 0
	require.NoError(t, s.SaveMemory(ctx, rec, func(ctx context.Context) error {
		hookCalls++
		return nil
	}))
	assert.Equal(t, 1, hookCalls)

	require.NoError(t, s.SaveMemory(ctx, core.MemoryRecord{
		ID: "a2", Type: core.MemoryEmotion, Content: "I am happy", Importance: 5, Context: "User said",
	}, nil))

	list, err := s.ListMemories(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a2", list[0].ID)

	got := list[1]
	assert.Equal(t, rec.Type, got.Type)
	assert.Equal(t, rec.Content, got.Content)
	assert.Equal(t, rec.Importance, got.Importance)
	assert.Equal(t, rec.Context, got.Context)
}

func TestMemories_HookFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.SaveMemory(ctx, core.MemoryRecord{ID: "x", Type: core.MemoryEvent, Content: "meeting", Importance: 7},
		func(ctx context.Context) error { return errors.New("index down") })
	require.Error(t, err)

	list, err := s.ListMemories(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemories_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveMemory(ctx, core.MemoryRecord{ID: "d1", Type: core.MemoryEvent, Content: "meeting", Importance: 7}, nil))

	err := s.DeleteMemory(ctx, "d1", func(ctx context.Context) error { return errors.New("index down") })
	require.Error(t, err)
	list, _ := s.ListMemories(ctx, 0)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeleteMemory(ctx, "d1", nil))
	list, _ = s.ListMemories(ctx, 0)
	assert.Empty(t, list)

	assert.ErrorIs(t, s.DeleteMemory(ctx, "d1", nil), core.ErrNotFound)
}

func TestRelationship_UpdateMetrics(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	m, err := s.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.RelationshipMetrics{}, m)

	m, err = s.UpdateMetrics(ctx, func(cur core.RelationshipMetrics) core.RelationshipMetrics {
		cur.InteractionCount++
		cur.NegativeInteractions++
		cur.RelationshipPoints--
		return cur
	})
	require.NoError(t, err)
	assert.Equal(t, -1, m.RelationshipPoints)

	stored, err := s.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, m, stored)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.UpsertFact(ctx, "city", "Pune"))
	_, err := s.AddTurn(ctx, core.ConversationTurn{Role: core.RoleAssistant, Content: "hi"})
	require.NoError(t, err)
	require.NoError(t, s.SaveMemory(ctx, core.MemoryRecord{ID: "c1", Type: core.MemoryEmotion, Content: "sad", Importance: 5}, nil))
	_, err = s.UpdateMetrics(ctx, func(cur core.RelationshipMetrics) core.RelationshipMetrics {
		return core.RelationshipMetrics{InteractionCount: 3, PositiveInteractions: 3, RelationshipPoints: 6}
	})
	require.NoError(t, err)

	t.Run("hook failure keeps data", func(t *testing.T) {
		err := s.ClearAll(ctx, func(ctx context.Context) error { return errors.New("reset failed") })
		require.Error(t, err)
		list, _ := s.ListMemories(ctx, 0)
		assert.Len(t, list, 1)
	})

	t.Run("clears everything", func(t *testing.T) {
		require.NoError(t, s.ClearAll(ctx, nil))

		facts, _ := s.ListFacts(ctx)
		turns, _ := s.RecentTurns(ctx, 0)
		mems, _ := s.ListMemories(ctx, 0)
		m, err := s.GetMetrics(ctx)
		require.NoError(t, err)

		assert.Empty(t, facts)
		assert.Empty(t, turns)
		assert.Empty(t, mems)
		assert.Equal(t, core.RelationshipMetrics{}, m)
	})
}

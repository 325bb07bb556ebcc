package relationship

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{-1000, "Acquaintance"},
		{-1, "Acquaintance"},
		{0, "Acquaintance"},
		{49, "Acquaintance"},
		{50, "Friend"},
		{149, "Friend"},
		{150, "Close Friend"},
		{300, "Best Friend"},
		{499, "Best Friend"},
		{500, "Soulmate"},
		{10000, "Soulmate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.points), "points=%d", tt.points)
	}
}

func TestLevelFor_Monotonic(t *testing.T) {
	rank := func(name string) int {
		for i, l := range Levels() {
			if l.Name == name {
				return i
			}
		}
		t.Fatalf("unknown level %q", name)
		return -1
	}
	for a := -200; a < 700; a++ {
		assert.LessOrEqual(t, rank(LevelFor(a)), rank(LevelFor(a+1)), "points=%d", a)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		sentiment core.Sentiment
		want      core.RelationshipMetrics
	}{
		{core.SentimentPositive, core.RelationshipMetrics{InteractionCount: 1, PositiveInteractions: 1, RelationshipPoints: 2}},
		{core.SentimentNeutral, core.RelationshipMetrics{InteractionCount: 1, RelationshipPoints: 1}},
		{core.SentimentNegative, core.RelationshipMetrics{InteractionCount: 1, NegativeInteractions: 1, RelationshipPoints: -1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sentiment), func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(core.RelationshipMetrics{}, tt.sentiment))
		})
	}
}

func TestStatusOf(t *testing.T) {
	st := StatusOf(core.RelationshipMetrics{InteractionCount: 30, PositiveInteractions: 22, RelationshipPoints: 52})
	assert.Equal(t, "Friend", st.Level)
	assert.Equal(t, "Close Friend", st.NextLevel)
	assert.Equal(t, 98, st.PointsToNext)
	assert.Equal(t, 52, st.Progress)

	top := StatusOf(core.RelationshipMetrics{RelationshipPoints: 640})
	assert.Equal(t, "Soulmate", top.Level)
	assert.Empty(t, top.NextLevel)
	assert.Equal(t, 100, top.Progress)

	low := StatusOf(core.RelationshipMetrics{RelationshipPoints: -7})
	assert.Equal(t, "Acquaintance", low.Level)
	assert.Equal(t, 0, low.Progress)
	assert.Equal(t, 57, low.PointsToNext)
}

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "anjali_memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTracker(sqlite.NewRelationshipRepo(db))
}

func TestTracker_ThreePositiveTurns(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	for range 3 {
		_, err := tr.Update(ctx, core.SentimentPositive)
		require.NoError(t, err)
	}

	st, err := tr.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Points)
	assert.Equal(t, "Acquaintance", st.Level)
	assert.Equal(t, 3, st.Interactions)
	assert.Equal(t, 3, st.Positive)
}

func TestTracker_CrossesIntoFriend(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	for range 26 {
		_, err := tr.Update(ctx, core.SentimentPositive)
		require.NoError(t, err)
	}

	st, err := tr.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 52, st.Points)
	assert.Equal(t, "Friend", st.Level)
}

func TestTracker_NegativeStaysAtLowestLevel(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t)

	for range 5 {
		_, err := tr.Update(ctx, core.SentimentNegative)
		require.NoError(t, err)
	}

	st, err := tr.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, -5, st.Points)
	assert.Equal(t, 5, st.Negative)
	assert.Equal(t, "Acquaintance", st.Level)
}

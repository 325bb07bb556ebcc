package relationship

import (
	"sort"

	"github.com/sandevgo/anjali/internal/core"
)

type Level struct {
	Threshold int
	Name      string
}

// levels is sorted by threshold at init.
var levels = []Level{
	{Threshold: 0, Name: "Acquaintance"},
	{Threshold: 50, Name: "Friend"},
	{Threshold: 150, Name: "Close Friend"},
	{Threshold: 300, Name: "Best Friend"},
	{Threshold: 500, Name: "Soulmate"},
}

func init() {
	sort.Slice(levels, func(i, j int) bool { return levels[i].Threshold < levels[j].Threshold })
}

// Levels returns a copy of the level table, lowest first.
func Levels() []Level {
	out := make([]Level, len(levels))
	copy(out, levels)
	return out
}

// levelIndex is the index of the highest threshold <= points, clamped to 0.
func levelIndex(points int) int {
	// first index whose threshold exceeds points
	i := sort.Search(len(levels), func(i int) bool { return levels[i].Threshold > points })
	if i == 0 {
		return 0
	}
	return i - 1
}

// LevelFor names the relationship level for points. Points below the
// lowest threshold resolve to the lowest level.
func LevelFor(points int) string {
	return levels[levelIndex(points)].Name
}

// Apply returns m after one turn with the given sentiment. Unknown
// sentiments count as neutral.
func Apply(m core.RelationshipMetrics, s core.Sentiment) core.RelationshipMetrics {
	m.InteractionCount++
	switch s {
	case core.SentimentPositive:
		m.PositiveInteractions++
		m.RelationshipPoints += 2
	case core.SentimentNegative:
		m.NegativeInteractions++
		m.RelationshipPoints--
	default:
		m.RelationshipPoints++
	}
	return m
}

// StatusOf derives the displayed status from stored metrics.
func StatusOf(m core.RelationshipMetrics) core.RelationshipStatus {
	points := m.RelationshipPoints
	idx := levelIndex(points)

	st := core.RelationshipStatus{
		Level:        levels[idx].Name,
		Points:       points,
		Interactions: m.InteractionCount,
		Positive:     m.PositiveInteractions,
		Negative:     m.NegativeInteractions,
		Progress:     progress(points),
	}
	if idx+1 < len(levels) {
		next := levels[idx+1]
		st.NextLevel = next.Name
		st.PointsToNext = next.Threshold - points
	}
	return st
}

func progress(points int) int {
	top := levels[len(levels)-1].Threshold
	switch {
	case points >= top:
		return 100
	case points < 0:
		return 0
	default:
		return points % 100
	}
}

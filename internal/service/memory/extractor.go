package memory

import (
	"strings"

	"github.com/sandevgo/anjali/internal/core"
)

type rule struct {
	memType    core.MemoryType
	importance int
	cues       []string
}

// rules are evaluated independently; every matching rule yields a candidate.
var rules = []rule{
	{memType: core.MemoryPersonalInfo, importance: 8, cues: []string{"my name is", "i'm", "i am"}},
	{memType: core.MemoryPreference, importance: 6, cues: []string{"favorite", "love", "like", "prefer"}},
	{memType: core.MemoryEvent, importance: 7, cues: []string{"birthday", "anniversary", "tomorrow", "yesterday", "meeting"}},
	{memType: core.MemoryEmotion, importance: 5, cues: []string{"happy", "sad", "excited", "worried", "stressed"}},
}

// Importance returns the fixed importance for t, or 0 for unknown types.
func Importance(t core.MemoryType) int {
	for _, r := range rules {
		if r.memType == t {
			return r.importance
		}
	}
	return 0
}

// Extract scans text for memory cues. Matching is a case-insensitive
// substring test, and each candidate carries the full text unchanged.
func Extract(text string) []core.MemoryCandidate {
	lower := strings.ToLower(text)

	var out []core.MemoryCandidate
	for _, r := range rules {
		for _, cue := range r.cues {
			if strings.Contains(lower, cue) {
				out = append(out, core.MemoryCandidate{
					Type:       r.memType,
					Content:    text,
					Importance: r.importance,
				})
				break
			}
		}
	}
	return out
}

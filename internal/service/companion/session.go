package companion

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sandevgo/anjali/internal/core"
)

// Session is the state of the one local user's conversation: active mood
// and whether replies are spoken. It is shared by every transport.
type Session struct {
	mu        sync.RWMutex
	id        ulid.ULID
	mood      core.Mood
	speak     bool
	startedAt time.Time
}

func NewSession(mood core.Mood) *Session {
	if mood == "" {
		mood = core.MoodFriendly
	}
	return &Session{
		id:        ulid.Make(),
		mood:      mood,
		startedAt: time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id.String()
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) Mood() core.Mood {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mood
}

// SetMood accepts only the known mood names.
func (s *Session) SetMood(name string) (core.Mood, error) {
	mood, err := core.ParseMood(name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.mood = mood
	s.mu.Unlock()
	return mood, nil
}

func (s *Session) Speak() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speak
}

func (s *Session) SetSpeak(on bool) {
	s.mu.Lock()
	s.speak = on
	s.mu.Unlock()
}

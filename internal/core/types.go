package core

import "time"

const (
	AppName          = "Anjali"
	AppUserAgent     = "Anjali-Companion/0.1"
	AppRepositoryURL = "https://github.com/sandevgo/anjali"
	AppVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of the payload sent to the response generator.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextLength int    `json:"context_length"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Mood string

const (
	MoodFriendly   Mood = "friendly"
	MoodRomantic   Mood = "romantic"
	MoodFunny      Mood = "funny"
	MoodSupportive Mood = "supportive"
	MoodThinking   Mood = "thinking"
)

// Moods lists every selectable mood in display order.
var Moods = []Mood{MoodFriendly, MoodRomantic, MoodFunny, MoodSupportive, MoodThinking}

func ParseMood(s string) (Mood, error) {
	for _, m := range Moods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", ErrUnknownMood
}

type MemoryType string

const (
	MemoryPersonalInfo MemoryType = "personal_info"
	MemoryPreference   MemoryType = "preference"
	MemoryEvent        MemoryType = "event"
	MemoryEmotion      MemoryType = "emotion"
)

// MemoryCandidate is an extractor hit that has not been stored yet.
type MemoryCandidate struct {
	Type       MemoryType
	Content    string
	Importance int
}

type MemoryRecord struct {
	ID         string     `json:"id"`
	Type       MemoryType `json:"memory_type"`
	Content    string     `json:"content"`
	Importance int        `json:"importance"`
	Context    string     `json:"context"`
	CreatedAt  time.Time  `json:"created_at"`
}

type ConversationTurn struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	CreatedAt time.Time `json:"timestamp"`
}

type Fact struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RelationshipMetrics struct {
	InteractionCount     int `json:"interaction_count"`
	PositiveInteractions int `json:"positive_interactions"`
	NegativeInteractions int `json:"negative_interactions"`
	RelationshipPoints   int `json:"relationship_points"`
}

type RelationshipStatus struct {
	Level        string `json:"level"`
	Points       int    `json:"points"`
	Interactions int    `json:"interactions"`
	Positive     int    `json:"positive"`
	Negative     int    `json:"negative"`
	NextLevel    string `json:"next_level,omitempty"`
	PointsToNext int    `json:"points_to_next"`
	Progress     int    `json:"progress"`
}

// SemanticHit is one nearest-neighbour result, best first.
type SemanticHit struct {
	ID       string
	Text     string
	Score    float32
	Metadata map[string]string
}

type Weather struct {
	City      string
	TempC     float64
	Condition string
}

type Quote struct {
	Text   string
	Author string
}

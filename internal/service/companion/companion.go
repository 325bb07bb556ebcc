package companion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/pkg/log"
)

const (
	defaultContextWindow   = 10
	defaultRecallLimit     = 3
	defaultGenerateTimeout = 60 * time.Second
)

type Memory interface {
	Remember(ctx context.Context, text, provenance string) ([]core.MemoryRecord, error)
	RecallContext(ctx context.Context, query string, k int, exclude ...string) (string, error)
}

type Tracker interface {
	Update(ctx context.Context, s core.Sentiment) (core.RelationshipMetrics, error)
	Status(ctx context.Context) (core.RelationshipStatus, error)
}

// Image is an attached picture for a turn.
type Image struct {
	Data     []byte
	MimeType string
}

// Reply is the outcome of one completed turn.
type Reply struct {
	Text         string                  `json:"reply"`
	Sentiment    core.Sentiment          `json:"sentiment"`
	Relationship core.RelationshipStatus `json:"relationship"`
}

type Options struct {
	Persona            string
	ContextWindow      int
	RecallLimit        int
	HistoryTokenBudget int
	GenerateTimeout    time.Duration
	Counter            TokenCounter
}

// Companion runs conversational turns for the single local session.
type Companion struct {
	mu sync.Mutex

	session   *Session
	turns     core.ConversationsRepository
	memory    Memory
	tracker   Tracker
	ai        core.AIProvider
	captioner core.Captioner
	opts      Options
}

func NewCompanion(
	session *Session,
	turns core.ConversationsRepository,
	memory Memory,
	tracker Tracker,
	ai core.AIProvider,
	captioner core.Captioner,
	opts Options,
) *Companion {
	if opts.Persona == "" {
		opts.Persona = core.AppName
	}
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = defaultContextWindow
	}
	if opts.RecallLimit <= 0 {
		opts.RecallLimit = defaultRecallLimit
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = defaultGenerateTimeout
	}
	if opts.Counter == nil {
		opts.Counter = TiktokenCounter
	}

	return &Companion{
		session:   session,
		turns:     turns,
		memory:    memory,
		tracker:   tracker,
		ai:        ai,
		captioner: captioner,
		opts:      opts,
	}
}

func (c *Companion) Session() *Session {
	return c.session
}

func (c *Companion) Persona() string {
	return c.opts.Persona
}

// Process runs one turn. Generator and captioner failures degrade to fixed
// fallbacks; only storage failures are returned.
func (c *Companion) Process(ctx context.Context, text string, image *Image) (Reply, error) {
	if strings.TrimSpace(text) == "" && (image == nil || len(image.Data) == 0) {
		return Reply{}, core.ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	mood := c.session.Mood()
	logger := log.FromCtx(ctx).With().
		Str("component", "companion").
		Str("session", c.session.ID()).
		Logger()
	ctx = logger.WithContext(ctx)

	if _, err := c.turns.AddTurn(ctx, core.ConversationTurn{Role: core.RoleUser, Content: text, Mood: mood}); err != nil {
		return Reply{}, fmt.Errorf("save user turn: %w", err)
	}

	saved, err := c.memory.Remember(ctx, text, "User said")
	if err != nil {
		return Reply{}, fmt.Errorf("remember user turn: %w", err)
	}
	current := make([]string, 0, len(saved))
	for _, rec := range saved {
		current = append(current, rec.ID)
	}

	messages, err := c.buildMessages(ctx, text, image, mood, current)
	if err != nil {
		return Reply{}, err
	}

	raw := c.generate(ctx, messages)
	visible, sentiment := ParseSentiment(raw)

	metrics, err := c.tracker.Update(ctx, sentiment)
	if err != nil {
		return Reply{}, err
	}

	if _, err := c.memory.Remember(ctx, visible, c.opts.Persona+" said"); err != nil {
		return Reply{}, fmt.Errorf("remember reply: %w", err)
	}

	if _, err := c.turns.AddTurn(ctx, core.ConversationTurn{Role: core.RoleAssistant, Content: visible, Mood: mood}); err != nil {
		return Reply{}, fmt.Errorf("save assistant turn: %w", err)
	}

	logger.Info().
		Str("mood", string(mood)).
		Str("sentiment", string(sentiment)).
		Int("points", metrics.RelationshipPoints).
		Msg("turn completed")

	status, err := c.tracker.Status(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: visible, Sentiment: sentiment, Relationship: status}, nil
}

// buildMessages assembles the generator payload: persona prompt, optional
// recalled context, then the recent history oldest first. Memories saved
// from the current turn are left out of the recalled context.
func (c *Companion) buildMessages(ctx context.Context, text string, image *Image, mood core.Mood, current []string) ([]core.Message, error) {
	logger := log.FromCtx(ctx)

	turns, err := c.turns.RecentTurns(ctx, c.opts.ContextWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	history := make([]core.Message, 0, len(turns))
	for _, t := range slices.Backward(turns) {
		history = append(history, core.Message{Role: t.Role, Content: t.Content})
	}
	history = trimToBudget(history, c.opts.HistoryTokenBudget, c.opts.Counter)

	if image != nil && len(image.Data) > 0 && len(history) > 0 {
		last := &history[len(history)-1]
		last.Content += fmt.Sprintf(imageContext, c.caption(ctx, image))
	}

	messages := make([]core.Message, 0, len(history)+2)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: SystemPrompt(c.opts.Persona, mood)})

	recalled, err := c.memory.RecallContext(ctx, text, c.opts.RecallLimit, current...)
	if err != nil {
		logger.Warn().Err(err).Msg("memory recall failed, continuing without context")
	} else if recalled != "" {
		messages = append(messages, core.Message{Role: core.RoleSystem, Content: recalled})
	}

	return append(messages, history...), nil
}

func (c *Companion) caption(ctx context.Context, image *Image) string {
	if c.captioner == nil {
		return FallbackCaption
	}
	caption, err := c.captioner.Caption(ctx, image.Data, image.MimeType)
	if err != nil || strings.TrimSpace(caption) == "" {
		log.FromCtx(ctx).Warn().Err(err).Msg("image caption failed")
		return FallbackCaption
	}
	return caption
}

func (c *Companion) generate(ctx context.Context, messages []core.Message) string {
	ctx, cancel := context.WithTimeout(ctx, c.opts.GenerateTimeout)
	defer cancel()

	resp, err := c.ai.Chat(ctx, messages)
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("response generator failed")
		return FallbackReply
	}
	return resp.Content
}

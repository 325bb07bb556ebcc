package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mood  core.Mood
	speak bool
}

func (s *fakeSession) Mood() core.Mood { return s.mood }

func (s *fakeSession) SetMood(name string) (core.Mood, error) {
	m, err := core.ParseMood(name)
	if err != nil {
		return "", err
	}
	s.mood = m
	return m, nil
}

func (s *fakeSession) Speak() bool       { return s.speak }
func (s *fakeSession) SetSpeak(on bool) { s.speak = on }

type fakeMemory struct {
	records []core.MemoryRecord
	cleared bool
}

func (m *fakeMemory) List(_ context.Context, limit int) ([]core.MemoryRecord, error) {
	if limit > 0 && limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *fakeMemory) Forget(_ context.Context, id string) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *fakeMemory) ClearAll(context.Context) error {
	m.records = nil
	m.cleared = true
	return nil
}

type fakeFacts struct {
	facts map[string]string
}

func (f *fakeFacts) UpsertFact(_ context.Context, key, value string) error {
	f.facts[key] = value
	return nil
}

func (f *fakeFacts) GetFact(_ context.Context, key string) (core.Fact, error) {
	v, ok := f.facts[key]
	if !ok {
		return core.Fact{}, core.ErrNotFound
	}
	return core.Fact{Key: key, Value: v}, nil
}

func (f *fakeFacts) ListFacts(context.Context) ([]core.Fact, error) {
	var out []core.Fact
	for k, v := range f.facts {
		out = append(out, core.Fact{Key: k, Value: v})
	}
	return out, nil
}

type fakeStatus struct{ s core.RelationshipStatus }

func (f fakeStatus) Status(context.Context) (core.RelationshipStatus, error) { return f.s, nil }

type fakeBriefing struct{ mood core.Mood }

func (f *fakeBriefing) Deliver(_ context.Context, mood core.Mood) (string, error) {
	f.mood = mood
	return "Good morning!", nil
}

type fakeModel struct {
	model string
	err   error
}

func (f *fakeModel) GetProvider() string { return "openrouter" }
func (f *fakeModel) GetModel() string    { return f.model }
func (f *fakeModel) SetModel(_ context.Context, model string) error {
	if f.err != nil {
		return f.err
	}
	f.model = model
	return nil
}

func newRouter(t *testing.T) (*Router, *fakeSession, *fakeMemory, *fakeFacts) {
	t.Helper()
	session := &fakeSession{mood: core.MoodFriendly}
	mem := &fakeMemory{records: []core.MemoryRecord{
		{ID: "3f2a9c10-aaaa-4bbb-8ccc-000000000001", Type: core.MemoryPreference, Content: "I love tea", Importance: 6, Context: "User said", CreatedAt: time.Now()},
		{ID: "7b1d0e22-aaaa-4bbb-8ccc-000000000002", Type: core.MemoryEmotion, Content: "I am happy", Importance: 5, Context: "User said", CreatedAt: time.Now()},
	}}
	facts := &fakeFacts{facts: map[string]string{}}
	r := New(NewCommands(Deps{
		Session:  session,
		Briefing: &fakeBriefing{},
		Status:   fakeStatus{s: core.RelationshipStatus{Level: "Friend", Points: 60, NextLevel: "Close Friend", PointsToNext: 90, Progress: 60}},
		Memory:   mem,
		Facts:    facts,
		Model:    &fakeModel{model: "m1"},
	}))
	return r, session, mem, facts
}

func TestRouter_IgnoresPlainText(t *testing.T) {
	r, _, _, _ := newRouter(t)
	out, handled := r.Execute(context.Background(), "hello there")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, _, _, _ := newRouter(t)
	out, handled := r.Execute(context.Background(), "/dance")
	assert.True(t, handled)
	assert.Contains(t, out, "Unknown command: /dance")
}

func TestRouter_HelpListsEveryCommandInOrder(t *testing.T) {
	r, _, _, _ := newRouter(t)

	names := make([]string, 0)
	for _, c := range r.ListCommands() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"mood", "speak", "briefing", "status", "memories", "forget", "clear", "remember", "recall", "model", "help"}, names)

	out, handled := r.Execute(context.Background(), "/help")
	assert.True(t, handled)
	for _, n := range names {
		assert.Contains(t, out, "**/"+n+"**")
	}
}

func TestMoodCommand(t *testing.T) {
	ctx := context.Background()
	r, session, _, _ := newRouter(t)

	out, _ := r.Execute(ctx, "/mood")
	assert.Contains(t, out, "`friendly`")
	assert.Contains(t, out, "`thinking`")

	out, _ = r.Execute(ctx, "/mood funny")
	assert.Contains(t, out, "Mood set to funny")
	assert.Equal(t, core.MoodFunny, session.mood)

	out, _ = r.Execute(ctx, "/mood grumpy")
	assert.Contains(t, out, "unknown mood: grumpy")
	assert.Equal(t, core.MoodFunny, session.mood)
}

func TestSpeakCommand(t *testing.T) {
	ctx := context.Background()
	r, session, _, _ := newRouter(t)

	r.Execute(ctx, "/speak on")
	assert.True(t, session.speak)
	r.Execute(ctx, "/speak OFF")
	assert.False(t, session.speak)

	out, _ := r.Execute(ctx, "/speak loud")
	assert.Contains(t, out, "failed")
}

func TestBriefingCommand_UsesSessionMood(t *testing.T) {
	b := &fakeBriefing{}
	cmd := NewBriefingCommand(b, &fakeSession{mood: core.MoodRomantic})
	out, err := cmd.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Good morning!", out)
	assert.Equal(t, core.MoodRomantic, b.mood)
}

func TestStatusCommand(t *testing.T) {
	r, _, _, _ := newRouter(t)
	out, _ := r.Execute(context.Background(), "/status")
	assert.Contains(t, out, "`Friend`")
	assert.Contains(t, out, "██████░░░░ 60%")
	assert.Contains(t, out, "90 points to Close Friend")
}

func TestMemoriesAndForget(t *testing.T) {
	ctx := context.Background()
	r, _, mem, _ := newRouter(t)

	out, _ := r.Execute(ctx, "/memories")
	assert.Contains(t, out, "`3f2a9c10`")
	assert.Contains(t, out, "I love tea")

	out, _ = r.Execute(ctx, "/memories 1")
	assert.NotContains(t, out, "I am happy")

	out, _ = r.Execute(ctx, "/forget 3f2a")
	assert.Contains(t, out, "Forgotten")
	require.Len(t, mem.records, 1)
	assert.Equal(t, "I am happy", mem.records[0].Content)

	out, _ = r.Execute(ctx, "/forget ffff")
	assert.Contains(t, out, "not found")
}

func TestForget_AmbiguousPrefix(t *testing.T) {
	mem := &fakeMemory{records: []core.MemoryRecord{{ID: "ab-1"}, {ID: "ab-2"}}}
	_, err := NewForgetCommand(mem).Execute(context.Background(), []string{"ab"})
	assert.Error(t, err)
	assert.Len(t, mem.records, 2)
}

func TestClearCommand(t *testing.T) {
	r, _, mem, _ := newRouter(t)
	out, _ := r.Execute(context.Background(), "/clear")
	assert.Contains(t, out, "cleared")
	assert.True(t, mem.cleared)
}

func TestRememberAndRecall(t *testing.T) {
	ctx := context.Background()
	r, _, _, facts := newRouter(t)

	out, _ := r.Execute(ctx, "/remember Birthday = March 3")
	assert.Contains(t, out, "I'll remember your birthday")
	assert.Equal(t, "March 3", facts.facts["birthday"])

	out, _ = r.Execute(ctx, "/recall birthday")
	assert.Contains(t, out, "`March 3`")

	out, _ = r.Execute(ctx, "/recall city")
	assert.Equal(t, "I don't know your city yet.", out)

	out, _ = r.Execute(ctx, "/remember nonsense")
	assert.Contains(t, out, "/remember key=value")
}

func TestModelCommand(t *testing.T) {
	ctx := context.Background()
	m := &fakeModel{model: "m1"}
	cmd := NewModelCommand(m)

	out, err := cmd.Execute(ctx, []string{"m2"})
	require.NoError(t, err)
	assert.Contains(t, out, "`openrouter/m2`")

	m.err = errors.New("boom")
	_, err = cmd.Execute(ctx, []string{"m3"})
	assert.ErrorContains(t, err, "failed to set model")
	assert.Equal(t, "m2", m.model)
}

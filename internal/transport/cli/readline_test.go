package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/service/command"
	"github.com/sandevgo/anjali/internal/service/companion"
	"github.com/stretchr/testify/assert"
)

type fakeCompanion struct {
	reply companion.Reply
	err   error
	seen  []string
}

func (f *fakeCompanion) Process(_ context.Context, text string, _ *companion.Image) (companion.Reply, error) {
	f.seen = append(f.seen, text)
	return f.reply, f.err
}

func (f *fakeCompanion) Persona() string { return "Anjali" }

func newTestReadLine(c Companion) (*ReadLine, *bytes.Buffer) {
	var buf bytes.Buffer
	return &ReadLine{companion: c, router: command.New(nil), out: &buf}, &buf
}

func TestHandle_Turn(t *testing.T) {
	c := &fakeCompanion{reply: companion.Reply{
		Text:         "Hi **there**!",
		Relationship: core.RelationshipStatus{Level: "Friend", Points: 52},
	}}
	r, out := newTestReadLine(c)

	r.handle(context.Background(), "hello")

	assert.Equal(t, []string{"hello"}, c.seen)
	assert.Contains(t, out.String(), "Anjali")
	assert.Contains(t, out.String(), "Hi there!")
	assert.Contains(t, out.String(), "Friend · 52 points")
}

func TestHandle_CommandSkipsCompanion(t *testing.T) {
	c := &fakeCompanion{}
	r, out := newTestReadLine(c)

	r.handle(context.Background(), "/help")

	assert.Empty(t, c.seen)
	assert.Contains(t, out.String(), "Commands")
}

func TestHandle_FailureShowsApology(t *testing.T) {
	c := &fakeCompanion{err: errors.New("disk full")}
	r, out := newTestReadLine(c)

	r.handle(context.Background(), "hello")

	assert.Contains(t, out.String(), companion.FallbackReply)
}

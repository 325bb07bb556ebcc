package command

import (
	"context"

	"github.com/sandevgo/anjali/internal/core"
)

type Session interface {
	Mood() core.Mood
	SetMood(name string) (core.Mood, error)
	Speak() bool
	SetSpeak(on bool)
}

type Briefer interface {
	Deliver(ctx context.Context, mood core.Mood) (string, error)
}

type StatusReader interface {
	Status(ctx context.Context) (core.RelationshipStatus, error)
}

type MemoryManager interface {
	List(ctx context.Context, limit int) ([]core.MemoryRecord, error)
	Forget(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

type ModelSwitcher interface {
	GetProvider() string
	GetModel() string
	SetModel(ctx context.Context, model string) error
}

// Deps are the collaborators shared by the built-in commands. Nil
// collaborators leave their commands out.
type Deps struct {
	Session  Session
	Briefing Briefer
	Status   StatusReader
	Memory   MemoryManager
	Facts    core.FactsRepository
	Model    ModelSwitcher
}

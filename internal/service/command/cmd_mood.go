package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/anjali/internal/core"
)

type MoodCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewMoodCommand(session Session) *MoodCommand {
	return &MoodCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *MoodCommand) Name() string {
	return "mood"
}

func (c *MoodCommand) Description() string {
	return "Show or change my mood"
}

func (c *MoodCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		names := make([]string, len(core.Moods))
		for i, m := range core.Moods {
			names[i] = fmt.Sprintf("`%s`", m)
		}
		return c.formatter.Combine(
			c.formatter.Info("Mood"),
			c.formatter.Label("Current", string(c.session.Mood())),
			c.formatter.List(names),
			c.formatter.Usage("/mood [name]"),
		), nil
	}

	mood, err := c.session.SetMood(args[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, args[0])
	}
	return c.formatter.Success(fmt.Sprintf("Mood set to %s", mood)), nil
}

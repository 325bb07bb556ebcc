package command

import (
	"context"
)

type BriefingCommand struct {
	briefing Briefer
	session  Session
}

func NewBriefingCommand(briefing Briefer, session Session) *BriefingCommand {
	return &BriefingCommand{
		briefing: briefing,
		session:  session,
	}
}

func (c *BriefingCommand) Name() string {
	return "briefing"
}

func (c *BriefingCommand) Description() string {
	return "Get today's weather and a quote"
}

func (c *BriefingCommand) Execute(ctx context.Context, args []string) (string, error) {
	return c.briefing.Deliver(ctx, c.session.Mood())
}

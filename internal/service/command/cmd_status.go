package command

import (
	"context"
	"strconv"
)

type StatusCommand struct {
	status    StatusReader
	formatter *ResponseFormatter
}

func NewStatusCommand(status StatusReader) *StatusCommand {
	return &StatusCommand{
		status:    status,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show our relationship status"
}

func (c *StatusCommand) Execute(ctx context.Context, args []string) (string, error) {
	s, err := c.status.Status(ctx)
	if err != nil {
		return "", err
	}

	sections := []string{
		c.formatter.Info("Relationship"),
		c.formatter.Label("Level", s.Level),
		c.formatter.Label("Points", strconv.Itoa(s.Points)),
		c.formatter.Label("Interactions", strconv.Itoa(s.Interactions)),
		c.formatter.Label("Positive", strconv.Itoa(s.Positive)),
		c.formatter.Label("Negative", strconv.Itoa(s.Negative)),
		c.formatter.Progress(s.Progress),
	}
	if s.NextLevel != "" {
		sections = append(sections, c.formatter.Tip(strconv.Itoa(s.PointsToNext)+" points to "+s.NextLevel))
	}
	return c.formatter.Combine(sections...), nil
}

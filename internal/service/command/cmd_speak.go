package command

import (
	"context"
	"fmt"
	"strings"
)

type SpeakCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewSpeakCommand(session Session) *SpeakCommand {
	return &SpeakCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *SpeakCommand) Name() string {
	return "speak"
}

func (c *SpeakCommand) Description() string {
	return "Turn voice replies on or off"
}

func (c *SpeakCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		state := "off"
		if c.session.Speak() {
			state = "on"
		}
		return c.formatter.Combine(
			c.formatter.Label("Voice replies", state),
			c.formatter.Usage("/speak on|off"),
		), nil
	}

	switch strings.ToLower(args[0]) {
	case "on":
		c.session.SetSpeak(true)
		return c.formatter.Success("Voice replies on"), nil
	case "off":
		c.session.SetSpeak(false)
		return c.formatter.Success("Voice replies off"), nil
	default:
		return "", fmt.Errorf("expected on or off, got %q", args[0])
	}
}

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/anjali/internal/core"
)

type Router struct {
	commands map[string]core.Command
	ordered  []core.Command
}

// New registers commands in order and adds /help when it is missing.
func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.register(cmd)
	}
	if _, ok := c.commands["help"]; !ok {
		c.register(NewHelpCommand(c))
	}
	return c
}

func (c *Router) register(cmd core.Command) {
	c.commands[cmd.Name()] = cmd
	c.ordered = append(c.ordered, cmd)
}

func (c *Router) Execute(ctx context.Context, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	// Telegram appends the bot name in groups: /status@anjali_bot
	name, _, _ = strings.Cut(name, "@")
	args := parts[1:]

	cmd, ok := c.commands[strings.ToLower(name)]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s\nType /help to see what I can do.", name), true
	}

	result, err := cmd.Execute(ctx, args)
	if err != nil {
		return NewResponseFormatter().Error(cmd.Name(), err), true
	}
	return result, true
}

// ListCommands returns commands in registration order.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, len(c.ordered))
	copy(res, c.ordered)
	return res
}

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/anjali/internal/core"
)

type ForgetCommand struct {
	memory    MemoryManager
	formatter *ResponseFormatter
}

func NewForgetCommand(memory MemoryManager) *ForgetCommand {
	return &ForgetCommand{
		memory:    memory,
		formatter: NewResponseFormatter(),
	}
}

func (c *ForgetCommand) Name() string {
	return "forget"
}

func (c *ForgetCommand) Description() string {
	return "Forget one memory by id"
}

func (c *ForgetCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/forget <id>"),
			c.formatter.Tip("/memories shows the ids"),
		), nil
	}

	id, err := c.resolve(ctx, args[0])
	if err != nil {
		return "", err
	}
	if err := c.memory.Forget(ctx, id); err != nil {
		return "", err
	}
	return c.formatter.Success("Forgotten"), nil
}

// resolve expands a short id to the full one. Ambiguous prefixes fail.
func (c *ForgetCommand) resolve(ctx context.Context, prefix string) (string, error) {
	records, err := c.memory.List(ctx, 0)
	if err != nil {
		return "", err
	}

	var found []string
	for _, r := range records {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			found = append(found, r.ID)
		}
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("memory %q: %w", prefix, core.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return "", errors.New("id prefix matches several memories, use more characters")
	}
}

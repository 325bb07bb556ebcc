package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const defaultMemoriesLimit = 10

type MemoriesCommand struct {
	memory    MemoryManager
	formatter *ResponseFormatter
}

func NewMemoriesCommand(memory MemoryManager) *MemoriesCommand {
	return &MemoriesCommand{
		memory:    memory,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoriesCommand) Name() string {
	return "memories"
}

func (c *MemoriesCommand) Description() string {
	return "List what I remember, newest first"
}

func (c *MemoriesCommand) Execute(ctx context.Context, args []string) (string, error) {
	limit := defaultMemoriesLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("limit must be a positive number, got %q", args[0])
		}
		limit = n
	}

	records, err := c.memory.List(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Memories"),
			"I don't remember anything yet. Tell me about yourself!",
		), nil
	}

	items := make([]string, len(records))
	for i, r := range records {
		items[i] = fmt.Sprintf("`%s` [%s·%d] %s _(%s, %s)_",
			shortID(r.ID), r.Type, r.Importance, oneLine(r.Content), r.Context, r.CreatedAt.Local().Format(time.DateTime))
	}
	return c.formatter.Combine(
		c.formatter.Info("Memories"),
		c.formatter.List(items),
		c.formatter.Tip("`/forget <id>` removes one memory"),
	), nil
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 120 {
		s = s[:117] + "..."
	}
	return s
}

// shortID keeps the first uuid group; /forget resolves it by prefix.
func shortID(id string) string {
	if head, _, ok := strings.Cut(id, "-"); ok {
		return head
	}
	return id
}

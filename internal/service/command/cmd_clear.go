package command

import (
	"context"
)

type ClearCommand struct {
	memory    MemoryManager
	formatter *ResponseFormatter
}

func NewClearCommand(memory MemoryManager) *ClearCommand {
	return &ClearCommand{
		memory:    memory,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Erase all memories, facts and history"
}

func (c *ClearCommand) Execute(ctx context.Context, args []string) (string, error) {
	if err := c.memory.ClearAll(ctx); err != nil {
		return "", err
	}
	return c.formatter.Success("All memories cleared. Let's start fresh!"), nil
}

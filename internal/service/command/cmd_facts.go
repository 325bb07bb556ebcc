package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/anjali/internal/core"
)

type RememberCommand struct {
	facts     core.FactsRepository
	formatter *ResponseFormatter
}

func NewRememberCommand(facts core.FactsRepository) *RememberCommand {
	return &RememberCommand{
		facts:     facts,
		formatter: NewResponseFormatter(),
	}
}

func (c *RememberCommand) Name() string {
	return "remember"
}

func (c *RememberCommand) Description() string {
	return "Store a fact about you: key=value"
}

func (c *RememberCommand) Execute(ctx context.Context, args []string) (string, error) {
	key, value, ok := strings.Cut(strings.Join(args, " "), "=")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return c.formatter.Combine(
			c.formatter.Usage("/remember key=value"),
			c.formatter.Examples([]string{"/remember birthday=March 3", "/remember city=Pune"}),
		), nil
	}

	if err := c.facts.UpsertFact(ctx, strings.ToLower(key), value); err != nil {
		return "", err
	}
	return c.formatter.Success(fmt.Sprintf("I'll remember your %s", strings.ToLower(key))), nil
}

type RecallCommand struct {
	facts     core.FactsRepository
	formatter *ResponseFormatter
}

func NewRecallCommand(facts core.FactsRepository) *RecallCommand {
	return &RecallCommand{
		facts:     facts,
		formatter: NewResponseFormatter(),
	}
}

func (c *RecallCommand) Name() string {
	return "recall"
}

func (c *RecallCommand) Description() string {
	return "Show stored facts, or one by key"
}

func (c *RecallCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		facts, err := c.facts.ListFacts(ctx)
		if err != nil {
			return "", err
		}
		if len(facts) == 0 {
			return c.formatter.Combine(
				c.formatter.Info("Facts"),
				c.formatter.Tip("/remember key=value stores one"),
			), nil
		}
		labels := make([]string, 0, len(facts)+1)
		labels = append(labels, c.formatter.Info("Facts"))
		for _, f := range facts {
			labels = append(labels, c.formatter.Label(f.Key, f.Value))
		}
		return c.formatter.Combine(labels...), nil
	}

	key := strings.ToLower(strings.Join(args, " "))
	f, err := c.facts.GetFact(ctx, key)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Sprintf("I don't know your %s yet.", key), nil
	}
	if err != nil {
		return "", err
	}
	return c.formatter.Label(f.Key, f.Value), nil
}

package command

import (
	"context"
	"fmt"
)

type ModelCommand struct {
	model     ModelSwitcher
	formatter *ResponseFormatter
}

func NewModelCommand(model ModelSwitcher) *ModelCommand {
	return &ModelCommand{
		model:     model,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change the language model"
}

func (c *ModelCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.model.GetProvider()),
			c.formatter.Label("Model", c.model.GetModel()),
			c.formatter.Usage("/model [model]"),
			c.formatter.Examples([]string{
				"/model mistralai/mistral-7b-instruct:free",
				"/model gpt-4o-mini",
			}),
		), nil
	}

	if err := c.model.SetModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Model changed to: `%s/%s`", c.model.GetProvider(), c.model.GetModel())), nil
}

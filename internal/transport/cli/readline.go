package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/service/companion"
	"github.com/sandevgo/anjali/internal/service/ui"
	"github.com/sandevgo/anjali/pkg/conv"
	"github.com/sandevgo/anjali/pkg/log"
)

type Companion interface {
	Process(ctx context.Context, text string, image *companion.Image) (companion.Reply, error)
	Persona() string
}

type ReadLine struct {
	companion Companion
	router    core.CmdRouter
	rl        *readline.Instance
	out       io.Writer
}

func NewReadLine(c Companion, router core.CmdRouter, runtimePath string) (*ReadLine, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.UsageStyle.Render("you") + " › ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		companion: c,
		router:    router,
		rl:        rl,
		out:       rl.Stdout(),
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msgf("Chat with %s started. Type 'exit' to quit, /help for commands.", r.companion.Persona())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handle(ctx, line)
	}
}

// handle runs one line: a slash command or a conversational turn.
func (r *ReadLine) handle(ctx context.Context, line string) {
	if out, ok := r.router.Execute(ctx, line); ok {
		fmt.Fprintln(r.out, ui.ReplyStyle.Render(conv.MarkdownToPlainText([]byte(out))))
		return
	}

	reply, err := r.companion.Process(ctx, line, nil)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("turn failed")
		fmt.Fprintln(r.out, ui.ErrorStyle.Render(companion.FallbackReply))
		return
	}

	fmt.Fprintf(r.out, "%s\n%s\n%s\n",
		ui.PersonaStyle.Render(r.companion.Persona()),
		ui.ReplyStyle.Render(conv.MarkdownToPlainText([]byte(reply.Text))),
		ui.StatusStyle.Render(fmt.Sprintf("%s · %d points", reply.Relationship.Level, reply.Relationship.Points)),
	)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

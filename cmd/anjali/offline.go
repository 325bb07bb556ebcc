package main

import (
	"fmt"
	"strings"

	"github.com/sandevgo/anjali/pkg/conv"
	"github.com/spf13/cobra"
)

// runCommand executes one slash command against the local stores and
// prints the result as plain text. No generator is needed.
func runCommand(cmd *cobra.Command, name string, args ...string) error {
	ctx, flushLog := setupLogger(cmd.Context())
	defer flushLog()

	s := newStores(ctx)
	defer s.close(ctx)

	input := "/" + strings.TrimSpace(name+" "+strings.Join(args, " "))
	out, ok := s.offlineRouter().Execute(ctx, input)
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}

	fmt.Fprintln(cmd.OutOrStdout(), conv.MarkdownToPlainText([]byte(out)))
	return nil
}

var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Show today's briefing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, "briefing")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the relationship status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, "status")
	},
}

var memoriesCmd = &cobra.Command{
	Use:   "memories [limit]",
	Short: "List stored memories, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, "memories", args...)
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <id>",
	Short: "Delete one memory from both stores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, "forget", args...)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase all memories, conversations, facts and relationship progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, "clear")
	},
}

func init() {
	rootCmd.AddCommand(briefingCmd, statusCmd, memoriesCmd, forgetCmd, clearCmd)
}

package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/anjali/internal/transport/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve memory, relationship and briefing tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctx, flushLog := setupLogger(ctx)
		defer flushLog()

		s := newStores(ctx)
		defer s.close(ctx)

		return mcpserver.NewServer(s.memory, s.tracker, s.briefing).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

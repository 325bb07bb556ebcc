package main

import (
	"github.com/sandevgo/anjali/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	Long:  `Opens the terminal chat only, whatever transports the .env enables. Type exit to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		a := newApp(ctx)
		defer a.close(ctx)

		rl, err := cli.NewReadLine(a.companion, a.router, a.cfg.GetRuntimePath())
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

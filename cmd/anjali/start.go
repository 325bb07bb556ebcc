package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/anjali/pkg/log"
	"github.com/sandevgo/anjali/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start Anjali on every enabled transport",
	Long:  `Starts the terminal chat, the Telegram bot and the HTTP API as enabled in the runtime .env, plus the memory reconciler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting anjali")

		services := NewServices(ctx, cancel)

		srv.StartServices(ctx, cancel, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("anjali has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/service/installer"
	"github.com/sandevgo/anjali/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Configure Anjali and create its stores",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// the wizard saves .env and creates both stores
		if _, err := installer.RunWizard(); err != nil {
			return err
		}

		envPath := config.GetEnvFilePath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", config.GetRuntimePath())
		logger.Info().Msg("Installation complete! You can now run 'anjali start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

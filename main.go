package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/mattsolo1/grove-topics/cmd"
	"github.com/mattsolo1/grove-topics/cmd/config"
	"github.com/mattsolo1/grove-topics/pkg/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var svc *service.Service

func main() {
	rootCmd := cli.NewStandardCommand(
		"topics",
		"Pick or create a subject and topic in your notes, then open it",
	)
	rootCmd.Args = cobra.NoArgs
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	config.AddOpenFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)

		// 1. Load configuration: grove.yml defaults, config file, environment
		config.InitConfig(logger)

		// 2. Flags of the running command take precedence
		if err := config.BindFlags(cmd); err != nil {
			return err
		}
		logger.SetLevel(config.LogLevel())
		if f := cmd.Flags().Lookup("verbose"); f != nil && f.Value.String() == "true" {
			logger.SetLevel(logrus.DebugLevel)
		}

		// 3. Initialize the main service
		var err error
		svc, err = config.InitService(logger)
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}
	rootCmd.RunE = cmd.RunOpen(&svc)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewOpenCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// One diagnostic line per failure; validation may report several.
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(os.Stderr, "Error: %s\n", line)
		}
		os.Exit(1)
	}
}

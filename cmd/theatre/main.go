// Package main provides the entry point for the theatre CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0-dev"
	globalStore    string
	globalJSON     bool
	globalLogLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "theatre",
		Short:         "Operating theatre scheduling against a hospital knowledge store",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalStore, "store", "s", "", "Knowledge store file (overrides store.path)")
	rootCmd.PersistentFlags().BoolVar(&globalJSON, "json", false, "Print machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCmd(),
		newCheckCmd(),
		newValidateCmd(),
		newScheduleCmd(),
		newAskCmd(),
		newBatchCmd(),
		newEntitiesCmd(),
		newSchedulesCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}

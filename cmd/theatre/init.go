package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/theatre-core/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new theatre project",
		Long: "Creates a .theatre directory with default configuration, a knowledge store " +
			"file and the decision journal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, sample)
		},
	}

	cmd.Flags().BoolVar(&sample, "sample", false, "Seed the knowledge store with a sample hospital")

	return cmd
}

func runInit(cmd *cobra.Command, sample bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler(openJournal).Handle(cmd.Context(), cwd, sample)
	if err != nil {
		return err
	}

	if globalJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	if result.StoreExists {
		fmt.Fprintf(out, "Using existing knowledge store %s\n", result.StorePath)
	} else {
		fmt.Fprintf(out, "Created knowledge store %s\n", result.StorePath)
	}
	if result.JournalPath != "" {
		fmt.Fprintf(out, "Created decision journal %s\n", result.JournalPath)
	}
	fmt.Fprintln(out, "Theatre initialized successfully!")

	return nil
}

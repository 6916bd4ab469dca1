package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "ask <request>",
		Short: "Decide a free-text scheduling request",
		Long: "Extracts a structured request from free text using the configured LLM, " +
			"then answers it as an availability check or a full validation.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				outcome, err := d.Scheduling.HandleAsk(cmd.Context(), args[0], confirm)
				if err != nil {
					return fmt.Errorf("handling request: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), outcome)
				}
				formatOutcome(cmd.OutOrStdout(), outcome)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirm, "confirm", "y", false, "Commit the request as a schedule when accepted")

	return cmd
}

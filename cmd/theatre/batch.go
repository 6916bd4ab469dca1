package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ersonp/theatre-core/internal/application/handlers"
)

func newBatchCmd() *cobra.Command {
	var (
		format string
		commit bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Decide a file of scheduling requests",
		Long: "Reads requests from a JSON array or CSV file and decides them in order. " +
			"Rows may carry structured columns or a free-text request column.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, format) {
				return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
			}
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Batch.Handle(cmd.Context(), args[0], handlers.BatchOptions{
					Format: format,
					Commit: commit,
				})
				if err != nil {
					return fmt.Errorf("processing batch: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				formatBatch(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "File format (auto, json, csv)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Commit accepted requests as schedules")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		path  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent decisions",
		Long:  "Lists the most recent decisions recorded in the decision journal, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.History.HandleList(cmd.Context(), path, limit)
				if err != nil {
					return fmt.Errorf("reading history: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				return formatHistory(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Filter by path (availability, validation, commit)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of decisions to display")

	return cmd
}

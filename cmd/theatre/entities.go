package main

import (
	"github.com/spf13/cobra"
)

func newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities <kind>",
		Short: "List entities of a kind",
		Long:  "Lists surgeons, patients, operations, theatres, timeslots or schedules from the knowledge store.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Catalog.HandleList(args[0])
				if err != nil {
					return err
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				return formatCatalog(cmd.OutOrStdout(), result)
			})
		},
	}
}

func newSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List committed schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				schedules := d.Catalog.HandleSchedules()
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), schedules)
				}
				return formatSchedules(cmd.OutOrStdout(), schedules)
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <theatre>",
		Short: "Check whether a theatre is available",
		Long:  "Reports whether the named theatre is clean and not under maintenance.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Scheduling.HandleCheck(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("checking availability: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				formatAvailability(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}
}

func newValidateCmd() *cobra.Command {
	var flags payloadFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scheduling request without committing it",
		Long:  "Runs the safety and availability rules against the request given by flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Scheduling.HandleValidate(cmd.Context(), flags.payload())
				if err != nil {
					return fmt.Errorf("validating request: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				formatValidation(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

func newScheduleCmd() *cobra.Command {
	var flags payloadFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Validate a request and commit it as a schedule",
		Long: "Validates the request given by flags and, when it passes, creates a schedule " +
			"linking surgeon, patient, operation, theatre and time slot.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.Scheduling.HandleSchedule(cmd.Context(), flags.payload())
				if err != nil {
					return fmt.Errorf("scheduling: %w", err)
				}
				if globalJSON {
					return printJSON(cmd.OutOrStdout(), result)
				}
				formatValidation(cmd.OutOrStdout(), &result.Validation)
				if result.Validation.IsValid {
					formatCommit(cmd.OutOrStdout(), &result.Commit)
				}
				return nil
			})
		},
	}

	flags.bind(cmd)
	return cmd
}

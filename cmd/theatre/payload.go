package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// payloadFlags binds the structured request fields to command flags.
type payloadFlags struct {
	surgeon   string
	patient   string
	operation string
	theatre   string
	date      string
	start     string
	end       string
}

func (f *payloadFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.surgeon, "surgeon", "", "Surgeon name")
	cmd.Flags().StringVar(&f.patient, "patient", "", "Patient name")
	cmd.Flags().StringVar(&f.operation, "operation", "", "Operation type")
	cmd.Flags().StringVar(&f.theatre, "theatre", "", "Theatre name")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (e.g. 2025-03-10)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start time (e.g. 09:00)")
	cmd.Flags().StringVar(&f.end, "end", "", "End time (e.g. 11:00)")
}

func (f *payloadFlags) payload() entities.Payload {
	fields := map[string]any{
		"surgeon_name":   f.surgeon,
		"patient_name":   f.patient,
		"operation_type": f.operation,
		"theatre_name":   f.theatre,
		"date":           f.date,
		"start_time":     f.start,
		"end_time":       f.end,
	}
	return entities.PayloadFromMap(fields)
}

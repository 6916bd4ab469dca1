package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ersonp/theatre-core/internal/application/handlers"
	"github.com/ersonp/theatre-core/internal/domain/entities"
	"github.com/ersonp/theatre-core/internal/domain/services"
)

const timeFormat = "2006-01-02 15:04"

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// verdict colors a headline outcome. Colors are dropped when stdout is not a
// terminal or NO_COLOR is set.
func verdict(ok bool, yes, no string) string {
	if ok {
		return green.Sprint(yes)
	}
	return red.Sprint(no)
}

// pick is verdict without color, for tabwriter columns.
func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func formatAvailability(w io.Writer, r *entities.AvailabilityResult) {
	fmt.Fprintf(w, "%s: %s\n", verdict(r.Available, "AVAILABLE", "UNAVAILABLE"), r.Reason)
}

func formatValidation(w io.Writer, r *entities.ValidationResult) {
	fmt.Fprintf(w, "%s: %s\n", verdict(r.IsValid, "VALID", "INVALID"), r.Reason)
}

func formatCommit(w io.Writer, r *entities.CommitResult) {
	if r.Success {
		fmt.Fprintf(w, "%s: %s\n", green.Sprint("COMMITTED"), r.ScheduleID)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", red.Sprint("NOT COMMITTED"), r.Reason)
}

func formatOutcome(w io.Writer, o *services.RequestOutcome) {
	if summary := describePayload(o.Payload); summary != "" {
		fmt.Fprintf(w, "Request: %s\n", summary)
	}
	switch o.Decision.Path {
	case entities.PathAvailability:
		formatAvailability(w, &entities.AvailabilityResult{Available: o.Decision.Valid, Reason: o.Decision.Reason})
	default:
		formatValidation(w, &entities.ValidationResult{IsValid: o.Decision.Valid, Reason: o.Decision.Reason})
	}
	if o.Commit != nil {
		formatCommit(w, o.Commit)
	}
}

// describePayload renders the provided request fields in a fixed order.
func describePayload(p entities.Payload) string {
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+"="+value)
		}
	}
	add("surgeon", p.SurgeonName)
	add("patient", p.PatientName)
	add("operation", p.OperationType)
	add("theatre", p.TheatreName)
	if slot := services.SlotLabel(p); slot != "" {
		add("slot", slot)
	}
	return strings.Join(parts, " ")
}

func formatBatch(w io.Writer, r *handlers.BatchResult) {
	for _, item := range r.Items {
		if item.Error != "" {
			fmt.Fprintf(w, "line %d: ERROR: %s\n", item.Line, item.Error)
			continue
		}
		d := item.Outcome.Decision
		fmt.Fprintf(w, "line %d: [%s] %s: %s\n", item.Line, d.Path, verdict(d.Valid, "ACCEPTED", "REJECTED"), d.Reason)
		if c := item.Outcome.Commit; c != nil {
			fmt.Fprint(w, "  ")
			formatCommit(w, c)
		}
	}
	fmt.Fprintf(w, "\n%d accepted, %d rejected, %d committed, %d failed\n",
		r.Accepted, r.Rejected, r.Committed, r.Failed)
}

func formatCatalog(w io.Writer, r *handlers.CatalogResult) error {
	if r.Total == 0 {
		fmt.Fprintf(w, "No %s entities found.\n", r.Kind)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range r.Entities {
		fmt.Fprintln(tw, entityRow(e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d %s(s)\n", r.Total, r.Kind)
	return nil
}

// entityRow renders one entity as tab-separated columns.
func entityRow(e entities.Entity) string {
	switch v := e.(type) {
	case *entities.Surgeon:
		return v.Name + "\t" + pick(v.IsPresent, "present", "absent")
	case *entities.Theatre:
		status := "ready"
		switch {
		case v.IsUnderMaintenance && !v.IsClean:
			status = "maintenance, not clean"
		case v.IsUnderMaintenance:
			status = "maintenance"
		case !v.IsClean:
			status = "not clean"
		}
		return v.Name + "\t" + status
	case *entities.Operation:
		row := v.Name + "\t" + string(v.PriorityLevel)
		if v.DurationMinutes > 0 {
			row += fmt.Sprintf("\t%d min", v.DurationMinutes)
		}
		return row
	case *entities.TimeSlot:
		row := fmt.Sprintf("%s\t%s - %s", v.Name, v.Start.Format(timeFormat), v.End.Format("15:04"))
		if len(v.ConflictsWith) > 0 {
			row += "\tconflicts: " + strings.Join(v.ConflictsWith, ", ")
		}
		return row
	case *entities.Schedule:
		return scheduleRow(v)
	default:
		return e.EntityName()
	}
}

func scheduleRow(s *entities.Schedule) string {
	return strings.Join([]string{s.ID, s.Surgeon, s.Patient, s.Operation, s.Theatre, s.TimeSlot}, "\t")
}

func formatSchedules(w io.Writer, schedules []*entities.Schedule) error {
	if len(schedules) == 0 {
		fmt.Fprintln(w, "No schedules found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSURGEON\tPATIENT\tOPERATION\tTHEATRE\tSLOT")
	for _, s := range schedules {
		fmt.Fprintln(tw, scheduleRow(s))
	}
	return tw.Flush()
}

func formatHistory(w io.Writer, r *handlers.HistoryResult) error {
	if len(r.Decisions) == 0 {
		fmt.Fprintln(w, "No decisions recorded.")
		return nil
	}

	fmt.Fprintf(w, "Showing %d of %d decisions:\n\n", len(r.Decisions), r.Total)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tPATH\tRESULT\tREASON")
	for _, d := range r.Decisions {
		reason := d.Reason
		if d.ScheduleID != "" && !strings.Contains(reason, d.ScheduleID) {
			reason += " (" + d.ScheduleID + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			d.CreatedAt.Local().Format(timeFormat), d.Path, pick(d.Valid, "ok", "refused"), reason)
	}
	return tw.Flush()
}

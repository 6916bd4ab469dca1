package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is a structured scheduling request. Empty fields mean "not provided".
// A payload carrying Error is an extraction failure, not a request.
type Payload struct {
	SurgeonName   string `json:"surgeon_name,omitempty"`
	PatientName   string `json:"patient_name,omitempty"`
	OperationType string `json:"operation_type,omitempty"`
	TheatreName   string `json:"theatre_name,omitempty"`
	Date          string `json:"date,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`

	Error       string `json:"error,omitempty"`
	Details     string `json:"details,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// ExtractionFailed reports whether the payload is the extraction error shape.
func (p Payload) ExtractionFailed() bool {
	return p.Error != ""
}

// HasTimeSlot reports whether the payload names a time slot.
func (p Payload) HasTimeSlot() bool {
	return p.Date != "" && p.StartTime != ""
}

// IsEmpty reports whether no scheduling field is set.
func (p Payload) IsEmpty() bool {
	return p.SurgeonName == "" && p.PatientName == "" && p.OperationType == "" &&
		p.TheatreName == "" && p.Date == "" && p.StartTime == "" && p.EndTime == ""
}

// DecodePayload parses a JSON object into a Payload. Fields with unexpected
// types degrade to "not provided"; numbers are kept in their decimal form.
// Only input that is not a JSON object is an error.
func DecodePayload(data []byte) (Payload, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("parsing payload JSON: %w", err)
	}
	if raw == nil {
		return Payload{}, fmt.Errorf("parsing payload JSON: not an object")
	}
	return PayloadFromMap(raw), nil
}

// PayloadFromMap builds a Payload from loosely typed fields.
func PayloadFromMap(raw map[string]any) Payload {
	return Payload{
		SurgeonName:   fieldString(raw["surgeon_name"]),
		PatientName:   fieldString(raw["patient_name"]),
		OperationType: fieldString(raw["operation_type"]),
		TheatreName:   fieldString(raw["theatre_name"]),
		Date:          fieldString(raw["date"]),
		StartTime:     fieldString(raw["start_time"]),
		EndTime:       fieldString(raw["end_time"]),
		Error:         fieldString(raw["error"]),
		Details:       fieldString(raw["details"]),
		RawResponse:   fieldString(raw["raw_response"]),
	}
}

// fieldString converts a decoded JSON value to a trimmed string.
func fieldString(v any) string {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
			return ""
		}
		return s
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return ""
	}
}

package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"medassist/pkg"
)

// SchemaError reports a summary that failed structural validation.  It is
// recoverable exactly once per session via a stricter reformulation prompt;
// a second failure ends the session as failed.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return "summary schema: " + e.Reason }

// ParseSummary validates the summary role's raw output against the fixed
// result schema.  Code fences are tolerated since models add them despite
// instructions; anything else non-conforming is a SchemaError.
func ParseSummary(raw string) (*pkg.ConsultationSummary, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var s pkg.ConsultationSummary
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if !s.UrgencyLevel.Valid() {
		return nil, &SchemaError{Reason: fmt.Sprintf("urgency_level %q is not one of LOW, MODERATE, URGENT", string(s.UrgencyLevel))}
	}
	if strings.TrimSpace(s.NextStep) == "" {
		return nil, &SchemaError{Reason: "next_step is empty"}
	}
	if strings.TrimSpace(s.Rationale) == "" {
		return nil, &SchemaError{Reason: "rationale is empty"}
	}
	return &s, nil
}

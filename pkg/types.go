package pkg

import (
	"fmt"
	"strings"
)

// RiskLevel orders triage risk.  Higher values dominate when several
// signatures match the same input, so aggregation is independent of
// signature order.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (l RiskLevel) String() string {
	switch l {
	case RiskHigh:
		return "high"
	case RiskMedium:
		return "medium"
	default:
		return "none"
	}
}

// MarshalText renders the level for JSON payloads.
func (l RiskLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText parses "none", "medium", or "high".
func (l *RiskLevel) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "none":
		*l = RiskNone
	case "medium":
		*l = RiskMedium
	case "high":
		*l = RiskHigh
	default:
		return fmt.Errorf("unknown risk level %q", string(text))
	}
	return nil
}

// RiskMatch records one signature hit: the category it belongs to and the
// matched snippet kept for audit and explanation.
type RiskMatch struct {
	Category string `json:"category"`
	Snippet  string `json:"snippet"`
}

// RiskVerdict is the result of evaluating a request against the full
// signature table.  Computed fresh per request and never cached.
type RiskVerdict struct {
	Level      RiskLevel   `json:"level"`
	Categories []string    `json:"categories,omitempty"`
	Matches    []RiskMatch `json:"matches,omitempty"`
}

// ConsultationRequest is the inbound payload.  Symptoms is required; the
// rest is optional context the intake role folds into the conversation.
// Immutable once submitted.
type ConsultationRequest struct {
	Symptoms string `json:"symptoms"`
	Age      string `json:"age,omitempty"`
	Duration string `json:"duration,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Role identifies one reasoning step in the consultation pipeline.
type Role string

const (
	RoleIntake    Role = "intake"
	RoleDiagnosis Role = "diagnosis"
	RolePharmacy  Role = "pharmacy"
	RoleSummary   Role = "summary"
)

// TranscriptEntry is one (role, output) pair.  A completed transcript
// always reads intake, diagnosis, pharmacy, summary in that order.
type TranscriptEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UrgencyLevel is the closed enum of the final summary.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "LOW"
	UrgencyModerate UrgencyLevel = "MODERATE"
	UrgencyUrgent   UrgencyLevel = "URGENT"
)

// Valid reports whether the level is one of the three allowed values.
func (u UrgencyLevel) Valid() bool {
	return u == UrgencyLow || u == UrgencyModerate || u == UrgencyUrgent
}

// ConsultationSummary is the validated structured output of the summary
// role.  A session whose summary does not conform is an error state, never
// a silently accepted partial result.
type ConsultationSummary struct {
	UrgencyLevel UrgencyLevel `json:"urgency_level"`
	NextStep     string       `json:"next_step"`
	Rationale    string       `json:"rationale"`
}

// ResultKind discriminates the consultation outcome.
type ResultKind string

const (
	KindHalted    ResultKind = "halted"
	KindCompleted ResultKind = "completed"
	KindFailed    ResultKind = "failed"
)

// ConsultationResult is the discriminated union returned to callers.
// Halted carries the emergency guidance and matched categories; completed
// carries the summary, transcript, and an optional caution banner; failed
// carries only a neutral reason.
type ConsultationResult struct {
	Kind             ResultKind           `json:"kind"`
	EmergencyMessage string               `json:"emergency_message,omitempty"`
	Categories       []string             `json:"categories,omitempty"`
	CautionBanner    string               `json:"caution_banner,omitempty"`
	Summary          *ConsultationSummary `json:"summary,omitempty"`
	Transcript       []TranscriptEntry    `json:"transcript,omitempty"`
	Reason           string               `json:"reason,omitempty"`
}

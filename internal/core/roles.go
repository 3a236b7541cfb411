package core

import (
	"fmt"
	"strings"

	"medassist/pkg"
)

// roleContract describes one reasoning step: which role it is and the
// system prompt it runs under.  Intake has no prompt because it never calls
// the backend.
type roleContract struct {
	role   pkg.Role
	system string
}

// roleSequence is the fixed invocation order.  The orchestrator never
// reorders or skips entries.
var roleSequence = [...]roleContract{
	{role: pkg.RoleIntake},
	{role: pkg.RoleDiagnosis, system: DiagnosisPrompt},
	{role: pkg.RolePharmacy, system: PharmacyPrompt},
	{role: pkg.RoleSummary, system: SummaryPrompt},
}

// intakeMessage formats the raw request into the opening conversation
// context.  Purely structural: no model call, no failure modes.
func intakeMessage(req pkg.ConsultationRequest) string {
	orDefault := func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return strings.TrimSpace(s)
	}
	return fmt.Sprintf(
		"I need a medical triage-style suggestion (not a diagnosis). Symptoms: %s | Age: %s | Duration: %s | Extra: %s.",
		strings.TrimSpace(req.Symptoms),
		orDefault(req.Age, "N/A"),
		orDefault(req.Duration, "N/A"),
		orDefault(req.Notes, "None"),
	)
}

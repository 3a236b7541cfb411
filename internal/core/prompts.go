package core

// prompts.go defines the role prompt contracts and user-facing strings.
// Keeping these in a separate file makes the consultation policy easy to
// tweak without touching the orchestration logic.

const (
	// DiagnosisPrompt instructs the diagnosis role.  It suggests possible
	// causes, never a definitive diagnosis.
	DiagnosisPrompt = "You analyze symptoms and provide possible causes (not a definitive diagnosis). " +
		"Summarize the key points in ONE response; do not ask follow-up questions. " +
		"Include red-flag symptoms the patient should watch for."

	// PharmacyPrompt instructs the self-care role.  Prescription-only
	// interventions are off limits by policy.
	PharmacyPrompt = "You recommend OTC/self-care options based on the analysis. " +
		"Be conservative, include contraindication warnings, and never suggest prescription-only medication. " +
		"Suggest consulting a pharmacist or doctor when relevant. Only respond once."

	// SummaryPrompt instructs the final role to emit the structured plan.
	// Output must be machine-validated, so it demands bare JSON.
	SummaryPrompt = "You decide if a doctor's visit is required and produce the final plan. " +
		"Respond with ONLY a JSON object, no prose and no code fences, shaped exactly as: " +
		`{"urgency_level": "LOW"|"MODERATE"|"URGENT", "next_step": "...", "rationale": "..."}`

	// ReformulationInstruction is appended to the summary prompt on the one
	// schema retry permitted per session.
	ReformulationInstruction = "Your previous answer was not valid. Output the JSON object alone on a single line. " +
		"urgency_level must be exactly LOW, MODERATE, or URGENT, and next_step and rationale must be non-empty."

	// CautionAddendum hardens every role prompt when the safety gate
	// flagged medium-risk symptoms.
	CautionAddendum = "The reported symptoms matched a medium-risk pattern. " +
		"Be extra conservative: prefer professional care over self-care whenever in doubt."

	// EmptyInputPrompt is returned when a request carries no usable symptom
	// text.  Such requests never reach the rule engine.
	EmptyInputPrompt = "Please describe your symptoms to begin."

	// UnavailableReason is the only failure text shown to users.  Partial
	// or unvalidated medical output is never surfaced.
	UnavailableReason = "The consultation service is temporarily unavailable. Please try again shortly."
)

package triage

import "medassist/pkg"

// Action is the control-flow outcome of the safety gate.
type Action int

const (
	ActionProceed Action = iota
	ActionCaution
	ActionHalt
)

// Directive is what downstream consumers act on, not the raw verdict.  The
// gate translates verdict levels into directives so the threshold policy
// can evolve without touching the matching logic.
type Directive struct {
	Action     Action
	Message    string // emergency guidance or caution banner
	Categories []string
}

const (
	// EmergencyMessage is shown verbatim on a halt.  The consultation must
	// not continue past it; halting is a correct outcome, not an error.
	EmergencyMessage = "Your symptoms may indicate a medical emergency. " +
		"Please call your local emergency number or go to the nearest emergency department now. " +
		"This assistant cannot help with emergencies."

	// CautionBanner is attached to completed consultations that matched a
	// medium-risk signature.
	CautionBanner = "Some of what you described can occasionally signal something more serious. " +
		"If symptoms worsen, persist, or you feel unsure, contact a healthcare professional."
)

// Decide maps a risk verdict to a control-flow directive.  Total and pure:
// every verdict maps to exactly one directive, no state is touched, no
// calls are made.
func Decide(v pkg.RiskVerdict) Directive {
	switch v.Level {
	case pkg.RiskHigh:
		return Directive{Action: ActionHalt, Message: EmergencyMessage, Categories: v.Categories}
	case pkg.RiskMedium:
		return Directive{Action: ActionCaution, Message: CautionBanner, Categories: v.Categories}
	default:
		return Directive{Action: ActionProceed}
	}
}

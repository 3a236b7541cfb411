package triage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"medassist/pkg"
)

func TestDecideHigh(t *testing.T) {
	d := Decide(pkg.RiskVerdict{
		Level:      pkg.RiskHigh,
		Categories: []string{"chest pain", "fever"},
	})
	require.Equal(t, ActionHalt, d.Action)
	require.Equal(t, EmergencyMessage, d.Message)
	require.Equal(t, []string{"chest pain", "fever"}, d.Categories)
}

func TestDecideMedium(t *testing.T) {
	d := Decide(pkg.RiskVerdict{Level: pkg.RiskMedium, Categories: []string{"fever"}})
	require.Equal(t, ActionCaution, d.Action)
	require.Equal(t, CautionBanner, d.Message)
	require.Equal(t, []string{"fever"}, d.Categories)
}

func TestDecideNone(t *testing.T) {
	d := Decide(pkg.RiskVerdict{Level: pkg.RiskNone})
	require.Equal(t, ActionProceed, d.Action)
	require.Empty(t, d.Message)
	require.Empty(t, d.Categories)
}

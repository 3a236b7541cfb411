package triage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"medassist/pkg"
)

func testSignatures() []Signature {
	return []Signature{
		{Category: "chest pain", Pattern: "chest pain", Level: pkg.RiskHigh},
		{Category: "breathing difficulty", Regex: `short(ness)? of breath`, Level: pkg.RiskHigh},
		{Category: "fever", Pattern: "fever", Level: pkg.RiskMedium},
		{Category: "spreading rash", Pattern: "rash", Level: pkg.RiskMedium},
	}
}

func mustTable(t *testing.T, sigs []Signature) *Table {
	t.Helper()
	table, err := NewTable(sigs)
	require.NoError(t, err)
	return table
}

func TestEvaluateAggregatesMaxLevel(t *testing.T) {
	table := mustTable(t, testSignatures())

	v := Evaluate(table, Normalize("Fever and crushing chest pain"))
	require.Equal(t, pkg.RiskHigh, v.Level)
	require.Equal(t, []string{"chest pain", "fever"}, v.Categories)
	require.Len(t, v.Matches, 2)
}

func TestEvaluateNoEarlyExit(t *testing.T) {
	// A high match in the first signature must not stop evidence
	// collection from the later ones.
	table := mustTable(t, testSignatures())

	v := Evaluate(table, "chest pain with shortness of breath and a rash")
	require.Equal(t, pkg.RiskHigh, v.Level)
	require.Equal(t, []string{"breathing difficulty", "chest pain", "spreading rash"}, v.Categories)
}

func TestEvaluateOrderIndependent(t *testing.T) {
	sigs := testSignatures()
	reversed := make([]Signature, len(sigs))
	for i, s := range sigs {
		reversed[len(sigs)-1-i] = s
	}

	text := "fever, rash, and chest pain"
	a := Evaluate(mustTable(t, sigs), text)
	b := Evaluate(mustTable(t, reversed), text)
	require.Equal(t, a.Level, b.Level)
	require.Equal(t, a.Categories, b.Categories)
}

func TestEvaluateIdempotent(t *testing.T) {
	table := mustTable(t, testSignatures())
	text := Normalize("mild fever for two days")

	first := Evaluate(table, text)
	second := Evaluate(table, text)
	require.Equal(t, first, second)
}

func TestEvaluateNoMatch(t *testing.T) {
	table := mustTable(t, testSignatures())

	for _, text := range []string{"", "asdfghjkl", "small paper cut on finger"} {
		v := Evaluate(table, text)
		require.Equal(t, pkg.RiskNone, v.Level, "input %q", text)
		require.Empty(t, v.Categories)
		require.Empty(t, v.Matches)
	}
}

func TestEvaluateRegexSnippet(t *testing.T) {
	table := mustTable(t, testSignatures())

	v := Evaluate(table, "sudden short of breath tonight")
	require.Equal(t, pkg.RiskHigh, v.Level)
	require.Len(t, v.Matches, 1)
	require.Equal(t, "short of breath", v.Matches[0].Snippet)
}

func TestDefaultTableCoversKnownInputs(t *testing.T) {
	table := DefaultTable()
	require.Greater(t, table.Len(), 0)

	cases := []struct {
		text string
		want pkg.RiskLevel
	}{
		{"crushing chest pain and shortness of breath", pkg.RiskHigh},
		{"sudden facial droop and slurred speech", pkg.RiskHigh},
		{"mild fever for two days", pkg.RiskMedium},
		{"small paper cut on finger", pkg.RiskNone},
	}
	for _, tc := range cases {
		v := Evaluate(table, Normalize(tc.text))
		require.Equal(t, tc.want, v.Level, "input %q matched %v", tc.text, v.Categories)
	}
}

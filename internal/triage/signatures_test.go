package triage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"medassist/pkg"
)

const sampleYAML = `signatures:
  - category: chest pain
    pattern: chest pain
    level: high
  - category: fever
    pattern: fever
    level: medium
`

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]byte(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	v := Evaluate(table, "fever and chills")
	require.Equal(t, pkg.RiskMedium, v.Level)
}

func TestParseTableRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty document", ``},
		{"no signatures", `signatures: []`},
		{"unknown level", "signatures:\n  - category: x\n    pattern: x\n    level: extreme\n"},
		{"level none", "signatures:\n  - category: x\n    pattern: x\n    level: none\n"},
		{"missing category", "signatures:\n  - pattern: x\n    level: high\n"},
		{"missing pattern and regex", "signatures:\n  - category: x\n    level: high\n"},
		{"invalid regex", "signatures:\n  - category: x\n    regex: '(unclosed'\n    level: high\n"},
		{"not yaml", `{{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tc.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signatures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	table, err := LoadTableFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	_, err = LoadTableFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestStoreSwapKeepsCapturedTable(t *testing.T) {
	first, err := ParseTable([]byte(sampleYAML))
	require.NoError(t, err)
	second, err := NewTable([]Signature{{Category: "rash", Pattern: "rash", Level: pkg.RiskMedium}})
	require.NoError(t, err)

	store := NewStore(first)
	captured := store.Table()

	store.Swap(second)
	require.Same(t, second, store.Table())

	// An evaluation that captured the old table is unaffected by the swap.
	require.Equal(t, 2, captured.Len())
	v := Evaluate(captured, "chest pain")
	require.Equal(t, pkg.RiskHigh, v.Level)
}

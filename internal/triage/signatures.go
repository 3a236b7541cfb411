package triage

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"medassist/pkg"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Signature is one curated risk rule.  Pattern is matched as a substring of
// the normalized text; Regex, when set, takes precedence and is compiled at
// load time.  Level must be medium or high: a signature that matches
// nothing dangerous has no reason to exist.
type Signature struct {
	Category string        `json:"category"`
	Pattern  string        `json:"pattern,omitempty"`
	Regex    string        `json:"regex,omitempty"`
	Level    pkg.RiskLevel `json:"level"`
}

// compiled pairs a signature with its ready-to-run matcher.
type compiled struct {
	sig Signature
	re  *regexp.Regexp // nil for substring signatures
}

func (c compiled) match(text string) (snippet string, ok bool) {
	if c.re != nil {
		loc := c.re.FindStringIndex(text)
		if loc == nil {
			return "", false
		}
		return text[loc[0]:loc[1]], true
	}
	if strings.Contains(text, c.sig.Pattern) {
		return c.sig.Pattern, true
	}
	return "", false
}

// Table is an immutable compiled signature set.  Build once, share freely;
// it is never mutated after construction.
type Table struct {
	sigs []compiled
}

// NewTable validates and compiles a signature list.
func NewTable(sigs []Signature) (*Table, error) {
	out := make([]compiled, 0, len(sigs))
	for i, s := range sigs {
		if strings.TrimSpace(s.Category) == "" {
			return nil, fmt.Errorf("signature %d: category is required", i)
		}
		if s.Level != pkg.RiskMedium && s.Level != pkg.RiskHigh {
			return nil, fmt.Errorf("signature %q: level must be medium or high", s.Category)
		}
		switch {
		case s.Regex != "":
			re, err := regexp.Compile(s.Regex)
			if err != nil {
				return nil, fmt.Errorf("signature %q: %w", s.Category, err)
			}
			out = append(out, compiled{sig: s, re: re})
		case s.Pattern != "":
			s.Pattern = Normalize(s.Pattern)
			out = append(out, compiled{sig: s})
		default:
			return nil, fmt.Errorf("signature %q: pattern or regex is required", s.Category)
		}
	}
	return &Table{sigs: out}, nil
}

// Len returns the number of compiled signatures.
func (t *Table) Len() int { return len(t.sigs) }

// rawSignature is the YAML shape; level is parsed separately so a typo
// fails loading instead of silently becoming RiskNone.
type rawSignature struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
	Regex    string `yaml:"regex"`
	Level    string `yaml:"level"`
}

type tableFile struct {
	Signatures []rawSignature `yaml:"signatures"`
}

// ParseTable reads a YAML signature document and compiles it.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse signatures: %w", err)
	}
	if len(f.Signatures) == 0 {
		return nil, fmt.Errorf("parse signatures: no signatures defined")
	}
	sigs := make([]Signature, 0, len(f.Signatures))
	for _, r := range f.Signatures {
		s := Signature{Category: r.Category, Pattern: r.Pattern, Regex: r.Regex}
		if err := s.Level.UnmarshalText([]byte(r.Level)); err != nil {
			return nil, fmt.Errorf("signature %q: %w", r.Category, err)
		}
		sigs = append(sigs, s)
	}
	return NewTable(sigs)
}

// LoadTableFile reads and compiles a signature YAML file.
func LoadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}
	return ParseTable(data)
}

// DefaultTable returns the embedded curated table.
func DefaultTable() *Table {
	t, err := ParseTable(defaultsYAML)
	if err != nil {
		panic("triage: invalid embedded signatures: " + err.Error())
	}
	return t
}

// Store holds the active table behind an atomic pointer so it can be
// hot-swapped between requests.  In-flight evaluations keep the table they
// captured; a swap never changes a running evaluation.
type Store struct {
	table atomic.Pointer[Table]
}

// NewStore wraps an initial table.
func NewStore(t *Table) *Store {
	s := &Store{}
	s.table.Store(t)
	return s
}

// Table returns the current table.
func (s *Store) Table() *Table { return s.table.Load() }

// Swap replaces the active table.
func (s *Store) Swap(t *Table) { s.table.Store(t) }

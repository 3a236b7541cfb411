package db

import (
	"context"
	"database/sql"
	"fmt"

	"medassist/internal/triage"
)

// SignatureRepo reads the curated risk-signature table from Postgres so a
// fleet of replicas shares one source of truth.  The table holds
// configuration only; consultation content is never written anywhere.
type SignatureRepo struct {
	DB *sql.DB
}

// NewSignatureRepo constructs a repo from an existing sql.DB.  The caller
// is responsible for managing the connection lifecycle.
func NewSignatureRepo(db *sql.DB) *SignatureRepo { return &SignatureRepo{DB: db} }

// LoadTable reads and compiles the full signature set.  A row with an
// invalid level or regex fails the whole load: a partially applied table
// would make matching depend on load order.
func (r *SignatureRepo) LoadTable(ctx context.Context) (*triage.Table, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT category, pattern, regex, level
         FROM risk_signatures
         ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load signatures: %w", err)
	}
	defer rows.Close()

	var sigs []triage.Signature
	for rows.Next() {
		var s triage.Signature
		var level string
		if err := rows.Scan(&s.Category, &s.Pattern, &s.Regex, &level); err != nil {
			return nil, err
		}
		if err := s.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("signature %q: %w", s.Category, err)
		}
		sigs = append(sigs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return triage.NewTable(sigs)
}

// Count returns the number of stored signatures.
func (r *SignatureRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM risk_signatures`).Scan(&n)
	return n, err
}

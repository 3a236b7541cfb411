package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"medassist/internal/triage"
)

// Reloader listens on a Postgres NOTIFY channel and swaps the signature
// store when the curated table changes.  Swaps land between requests;
// in-flight evaluations keep the table they captured at the start.
type Reloader struct {
	Repo    *SignatureRepo
	Store   *triage.Store
	DSN     string
	Channel string
	Logger  *slog.Logger
}

// Run blocks until ctx is done, reloading the table on every notification.
// A failed reload keeps the previous table active.
func (r *Reloader) Run(ctx context.Context) error {
	listener := pq.NewListener(r.DSN, 10*time.Second, time.Minute, nil)
	defer listener.Close()
	if err := listener.Listen(r.Channel); err != nil {
		return fmt.Errorf("listen %s: %w", r.Channel, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-listener.Notify:
			table, err := r.Repo.LoadTable(ctx)
			if err != nil {
				r.Logger.Error("signature reload failed", "err", err)
				continue
			}
			r.Store.Swap(table)
			r.Logger.Info("signature table reloaded", "signatures", table.Len())
		case <-time.After(90 * time.Second):
			if err := listener.Ping(); err != nil {
				r.Logger.Error("signature listener ping failed", "err", err)
			}
		}
	}
}

// NotifyReload signals every listening replica to reload the table.  Meant
// for ops tooling after editing risk_signatures.
func (r *SignatureRepo) NotifyReload(ctx context.Context, channel string) error {
	_, err := r.DB.ExecContext(ctx, "NOTIFY "+pq.QuoteIdentifier(channel))
	return err
}

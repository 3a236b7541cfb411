package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"medassist/internal/core"
	"medassist/internal/db"
	httpserver "medassist/internal/http"
	"medassist/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the consultation HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	ctx := cmd.Context()

	store, err := buildStore(cmd)
	if err != nil {
		return err
	}

	// Optional central signature table: when SIGNATURES_DB_URL is set the
	// curated table lives in Postgres and hot-reloads on NOTIFY.  Local
	// tables stay as the fallback if the database is unreachable.
	if dsn := os.Getenv("SIGNATURES_DB_URL"); dsn != "" {
		conn, err := sql.Open("postgres", dsn)
		if err != nil {
			return fmt.Errorf("open signatures db: %w", err)
		}
		if err := db.Migrate(ctx, conn); err != nil {
			return fmt.Errorf("migrate signatures db: %w", err)
		}
		repo := db.NewSignatureRepo(conn)
		if table, err := repo.LoadTable(ctx); err != nil {
			logger.Warn("falling back to local signature table", "err", err)
		} else if table.Len() > 0 {
			store.Swap(table)
			logger.Info("signature table loaded from database", "signatures", table.Len())
		}
		reloader := &db.Reloader{
			Repo:    repo,
			Store:   store,
			DSN:     dsn,
			Channel: signatureChannel(),
			Logger:  logger,
		}
		go func() {
			if err := reloader.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("signature reloader stopped", "err", err)
			}
		}()
	}

	metrics := httpserver.NewPromMetrics()
	consultor := core.NewConsultor(store, llm.NewOpenAIClient(), core.DefaultConfig(), logger, metrics)
	srv := httpserver.NewServer(consultor, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	log.Printf("Listening on %s", addr)
	return http.ListenAndServe(addr, srv)
}

func signatureChannel() string {
	if ch := os.Getenv("SIGNATURES_NOTIFY_CHANNEL"); ch != "" {
		return ch
	}
	return "risk_signatures_changed"
}

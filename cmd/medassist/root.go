package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"medassist/internal/triage"
)

var rootCmd = &cobra.Command{
	Use:   "medassist",
	Short: "Triage-style health guidance behind a deterministic safety gate",
	Long: `medassist answers symptom descriptions with triage-style guidance.
A red-flag rule engine screens every request before any model call;
emergencies are redirected to immediate care, never reasoned about.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { _ = godotenv.Load() })
	rootCmd.PersistentFlags().String("signatures", "", "Path to a risk-signature YAML file (overrides the built-in table)")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildStore resolves the signature table: --signatures flag, then the
// SIGNATURES_FILE env var, then the embedded defaults.
func buildStore(cmd *cobra.Command) (*triage.Store, error) {
	path, _ := cmd.Flags().GetString("signatures")
	if path == "" {
		path = os.Getenv("SIGNATURES_FILE")
	}
	if path == "" {
		return triage.NewStore(triage.DefaultTable()), nil
	}
	table, err := triage.LoadTableFile(path)
	if err != nil {
		return nil, err
	}
	return triage.NewStore(table), nil
}

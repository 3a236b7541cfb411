package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"medassist/internal/core"
	"medassist/internal/llm"
	"medassist/pkg"
)

var (
	consultAge      string
	consultDuration string
	consultNotes    string
)

var consultCmd = &cobra.Command{
	Use:   "consult [symptoms]",
	Short: "Run a single consultation from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConsult,
}

func init() {
	consultCmd.Flags().StringVar(&consultAge, "age", "", "Patient age")
	consultCmd.Flags().StringVar(&consultDuration, "duration", "", "How long the symptoms have lasted")
	consultCmd.Flags().StringVar(&consultNotes, "notes", "", "Allergies, medications, other context")
	rootCmd.AddCommand(consultCmd)
}

func runConsult(cmd *cobra.Command, args []string) error {
	store, err := buildStore(cmd)
	if err != nil {
		return err
	}
	consultor := core.NewConsultor(store, llm.NewOpenAIClient(), core.DefaultConfig(), newLogger(), nil)

	res, err := consultor.RunConsultation(cmd.Context(), pkg.ConsultationRequest{
		Symptoms: strings.Join(args, " "),
		Age:      consultAge,
		Duration: consultDuration,
		Notes:    consultNotes,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmptyInput) {
			fmt.Println(core.EmptyInputPrompt)
			return nil
		}
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

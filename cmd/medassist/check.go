package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"medassist/internal/triage"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a risk-signature YAML file",
	Long:  `check compiles a signature file without serving. With no argument it verifies the built-in table.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			table := triage.DefaultTable()
			fmt.Printf("built-in table OK (%d signatures)\n", table.Len())
			return nil
		}
		table, err := triage.LoadTableFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s OK (%d signatures)\n", args[0], table.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

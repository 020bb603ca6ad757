package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario>",
	Short: "Check the scenario for consistency",
	Long:  `Validates the scenario against its schema and reports unknown events, unknown stores and scripts that do not compile.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Validate(baseOptions(cmd, args), os.Stdout); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

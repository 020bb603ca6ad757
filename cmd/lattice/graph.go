package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scenario>",
	Short: "Export the store graph visualization",
	Long:  `Builds the scenario and outputs a Mermaid diagram (graph TD) of its events, stores and derivations.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := baseOptions(cmd, args)
		opts.ShowState, _ = cmd.Flags().GetBool("state")

		if err := cli.Graph(opts, os.Stdout); err != nil {
			fmt.Printf("Error generating graph: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("state", false, "Run the steps first and overlay the resulting states")
}

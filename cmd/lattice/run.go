package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run the steps of a scenario",
	Long: `Executes the steps of the scenario in order and prints every store
transition. A failing step is reported and the run continues; the command
exits with an error if any step failed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := baseOptions(cmd, args)
		opts.Render, _ = cmd.Flags().GetBool("render")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Watch, _ = cmd.Flags().GetBool("watch")

		if opts.Watch {
			if opts.JSON {
				fmt.Println("Error: --watch and --json cannot be used together")
				os.Exit(1)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := cli.RunWatch(ctx, opts, os.Stdout); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if err := cli.RunScenario(opts, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("render", false, "Render a markdown report instead of the trace")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().BoolP("watch", "w", false, "Run again whenever the scenario file changes")
}

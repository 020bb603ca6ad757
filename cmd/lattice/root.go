package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/lattice/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Lattice is a synchronous reactive store engine",
	Long: `Lattice runs scenarios of events and stores described in YAML:
stores react to events through Lua reducers, derived stores follow their
sources through Lua or JSONPath mappers, and every change is traced.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")
}

// baseOptions reads the persistent flags and the scenario argument.
func baseOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("log-format")
	opts := cli.RunOptions{Debug: debug, LogFormat: format}
	if len(args) > 0 {
		opts.File = args[0]
	}
	return opts
}

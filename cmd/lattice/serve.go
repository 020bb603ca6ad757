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

var serveCmd = &cobra.Command{
	Use:   "serve <scenario>",
	Short: "Start the HTTP server",
	Long:  `Builds the scenario and exposes its stores and events as a JSON API over HTTP, with a change stream and Prometheus metrics.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		// Listen for interrupt or terminate signals.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := cli.Serve(ctx, baseOptions(cmd, args), port, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frodo",
	Short: "Frodo - Sleep Better order assistant",
	Long: `Frodo is the conversational order-management backend for the Sleep Better
retail chatbot. It keeps customer orders in an embedded datastore and exposes
them to an LLM-driven agent through a small command toolkit.

Run it as a server for the chat API, or use the CLI commands to talk to the
agent directly and inspect stored orders.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

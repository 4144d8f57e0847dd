// Package cli implements the paradoxd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "paradoxd",
	Short: "paradoxd - tokenomics ledger daemon",
	Long: `paradoxd runs the tokenomics state machine: fee distribution,
vesting, treasury spending, LP locking and growth, and the armageddon
emergency mode, exposed over an HTTP JSON-RPC API and a websocket
event feed.`,
	Version: "0.1.0",
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
}

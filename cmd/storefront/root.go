package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "storefront",
	Short:        "Snowy Solutions storefront bot for Discord",
	Long:         `Runs the shop bot: product menus, per-user selections and private ticket channels.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("catalog", "", "YAML product seed file (overrides CATALOG_FILE)")
	rootCmd.PersistentFlags().String("addr", "", "Keep-alive listen address (overrides KEEPALIVE_ADDR)")

	// Running the binary without a subcommand starts the bot.
	rootCmd.RunE = runServe
}

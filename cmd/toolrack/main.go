package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolrack/toolrack/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "toolrack",
	Short: "Toolrack unit host CLI",
	Long:  "Toolrack discovers independently authored units at startup and dispatches one selected unit per cycle.",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./toolrack.yaml, then ~/.toolrack/config.yaml)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("toolrack version %s\n", version))

	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewRunCmd())
	rootCmd.AddCommand(cli.NewInspectCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())
	rootCmd.AddCommand(cli.NewScheduleCmd())
}

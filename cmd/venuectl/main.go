// Command venuectl is the operator CLI: bulk venue import from XLSX and access-token minting.
package main

import (
	"fmt"
	"os"

	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "venuectl",
		Short:         "Operator tooling for the venue directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Initialize(logger.Config{
				Level:       logLevel,
				Format:      "console",
				Output:      cmd.ErrOrStderr(),
				EnableColor: false,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(importCmd())
	cmd.AddCommand(tokenCmd())
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/locale"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the embedded locales",
	Args:  cobra.NoArgs,
	RunE:  runLocales,
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

func runLocales(cmd *cobra.Command, _ []string) error {
	defaultName := config.Defaults().Locale
	for _, name := range locale.Available() {
		line := name
		if name == defaultName {
			line += " (default)"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}
	return nil
}

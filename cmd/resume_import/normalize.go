package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/pipeline"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Print the normalized lines the parser reads",
	Long: `Print the candidate lines the parser would read from a resume, one per line, after
trimming, Unicode normalization and removal of page markers. Reads stdin when no file
is given. Useful for working out why a heading or date was not recognised.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

var (
	normalizeLocale     string
	normalizeLocaleFile string
	normalizeFormat     string
	normalizePretty     bool
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeLocale, "locale", "l", "", "Embedded locale name")
	normalizeCmd.Flags().StringVar(&normalizeLocaleFile, "locale-file", "", "Path to a custom locale YAML file")
	normalizeCmd.Flags().StringVarP(&normalizeFormat, "format", "f", "", "Input format: text or html (detected when empty)")
	normalizeCmd.Flags().BoolVar(&normalizePretty, "pretty", false, "Print numbered lines in a box")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := config.Config{Locale: normalizeLocale, LocaleFile: normalizeLocaleFile}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	loc, err := cfg.LoadLocale()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), verbose)
	parser, err := parsing.New(parsing.Config{Locale: loc, Logger: &logger})
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	var format ingestion.Format
	if normalizeFormat != "" {
		if format, err = ingestion.ParseFormat(normalizeFormat); err != nil {
			return err
		}
	}

	source := pipeline.StdinSource
	if len(args) == 1 {
		source = args[0]
	}

	text, err := readInput(cmd, source, format)
	if err != nil {
		return err
	}

	lines := parser.Normalize(text)
	out := cmd.OutOrStdout()
	if normalizePretty {
		observability.NewPrinter(out).PrintLines(lines)
		return nil
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// readInput ingests a file, or stdin for pipeline.StdinSource.
func readInput(cmd *cobra.Command, source string, format ingestion.Format) (string, error) {
	if source == pipeline.StdinSource {
		text, _, err := ingestion.IngestFromReader(cmd.InOrStdin(), "stdin", format)
		return text, err
	}
	if format == "" {
		text, _, err := ingestion.IngestFromFile(source)
		return text, err
	}

	f, err := os.Open(source)
	if err != nil {
		return "", &ingestion.ReadError{Source: source, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()
	text, _, err := ingestion.IngestFromReader(f, source, format)
	return text, err
}

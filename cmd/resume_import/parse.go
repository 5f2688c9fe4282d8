package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse resume text into a structured draft",
	Long: `Parse one or more resume files into structured drafts. With no files, or "-",
the resume is read from stdin. .html and .htm files are converted to text first.

Without --out the draft JSON is printed to stdout (a JSON array for several inputs).
With --out each input is written to <name>.draft.json next to <name>.meta.json.

Configuration can be loaded from a JSON or YAML file using --config. Command-line
flags override config file values.`,
	RunE: runParse,
}

var (
	parseConfigPath  string
	parseOutDir      string
	parseLocale      string
	parseLocaleFile  string
	parseFormat      string
	parseIDs         string
	parseIDPrefix    string
	parseFull        bool
	parseValidate    bool
	parsePretty      bool
	parseConcurrency int
)

func init() {
	// Config file flag (processed first)
	parseCmd.Flags().StringVar(&parseConfigPath, "config", "", "Path to a .json or .yaml config file (values can be overridden by other flags)")

	parseCmd.Flags().StringVarP(&parseOutDir, "out", "o", "", "Directory to write drafts to (prints to stdout when empty)")
	parseCmd.Flags().StringVarP(&parseLocale, "locale", "l", "", "Embedded locale name (default pt-BR, or RESUME_IMPORT_LOCALE)")
	parseCmd.Flags().StringVar(&parseLocaleFile, "locale-file", "", "Path to a custom locale YAML file (mutually exclusive with --locale)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Input format: text or html (detected per input when empty)")
	parseCmd.Flags().StringVar(&parseIDs, "ids", "", "Entry ID scheme: uuid or sequential")
	parseCmd.Flags().StringVar(&parseIDPrefix, "id-prefix", "", "Prefix for sequential entry IDs")
	parseCmd.Flags().BoolVar(&parseFull, "full", false, "Emit the full resume record with empty languages, certifications and photo")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate each document against the embedded JSON schema")
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", false, "Print a readable summary instead of JSON (stdout mode only)")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 0, "Maximum inputs parsed at once")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveParseConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	if parseConfigPath != "" {
		logger.Debug().Str("path", parseConfigPath).Msg("loaded config")
	}

	parser, err := newParser(&cfg, &logger)
	if err != nil {
		return err
	}

	var format ingestion.Format
	if cfg.Format != "" {
		if format, err = ingestion.ParseFormat(cfg.Format); err != nil {
			return err
		}
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{pipeline.StdinSource}
	}

	results, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{
		Inputs:      inputs,
		Stdin:       cmd.InOrStdin(),
		OutDir:      cfg.OutDir,
		Format:      format,
		Full:        cfg.Full,
		Validate:    cfg.ValidateOutput,
		Concurrency: cfg.Concurrency,
		Parser:      parser,
		Logger:      &logger,
		OnProgress: func(e pipeline.ProgressEvent) {
			logger.Debug().Str("step", e.Step).Str("source", e.Source).Msg(e.Message)
		},
	})
	if err != nil {
		return err
	}

	return writeParseOutput(cmd, cfg, results)
}

// resolveParseConfig layers flags over the config file over the defaults.
func resolveParseConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if parseConfigPath != "" {
		loaded, err := config.LoadConfig(parseConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("locale") && flags.Changed("locale-file") {
		return cfg, fmt.Errorf("--locale and --locale-file are mutually exclusive; provide only one")
	}
	if flags.Changed("locale") {
		cfg.Locale = parseLocale
		cfg.LocaleFile = ""
	}
	if flags.Changed("locale-file") {
		cfg.LocaleFile = parseLocaleFile
		cfg.Locale = ""
	}
	if flags.Changed("out") {
		cfg.OutDir = parseOutDir
	}
	if flags.Changed("format") {
		cfg.Format = parseFormat
	}
	if flags.Changed("ids") {
		cfg.IDs = parseIDs
	}
	if flags.Changed("id-prefix") {
		cfg.IDPrefix = parseIDPrefix
	}
	if flags.Changed("full") {
		cfg.Full = parseFull
	}
	if flags.Changed("validate") {
		cfg.ValidateOutput = parseValidate
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = parseConcurrency
	}
	if verbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newParser builds a parser for the configured locale and ID scheme.
func newParser(cfg *config.Config, logger *zerolog.Logger) (*parsing.Parser, error) {
	loc, err := cfg.LoadLocale()
	if err != nil {
		return nil, err
	}
	parser, err := parsing.New(parsing.Config{
		Locale: loc,
		NewIDs: cfg.IDFactory(),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}
	return parser, nil
}

func writeParseOutput(cmd *cobra.Command, cfg config.Config, results []pipeline.Result) error {
	out := cmd.OutOrStdout()

	if cfg.OutDir != "" {
		for _, res := range results {
			if _, err := fmt.Fprintf(out, "Wrote %s\n", res.OutputPath); err != nil {
				return err
			}
		}
		return nil
	}

	if parsePretty {
		printer := observability.NewPrinter(out)
		for i := range results {
			printer.PrintDraft(&results[i].Draft)
		}
		return nil
	}

	var doc any
	if len(results) == 1 {
		doc = results[0].Document()
	} else {
		docs := make([]json.RawMessage, len(results))
		for i := range results {
			data, err := json.Marshal(results[i].Document())
			if err != nil {
				return fmt.Errorf("failed to marshal document: %w", err)
			}
			docs[i] = data
		}
		doc = docs
	}

	data, err := pipeline.MarshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// Package pipeline provides batch orchestration for importing resumes: ingest,
// parse, merge, validate and write one draft per input.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-importer/internal/ingestion"
	"github.com/jonathan/resume-importer/internal/parsing"
	"github.com/jonathan/resume-importer/internal/schemas"
	"github.com/jonathan/resume-importer/internal/types"
)

// StdinSource is the input name that reads from RunOptions.Stdin
const StdinSource = "-"

// Pipeline steps reported through ProgressEvent.Step
const (
	StepIngest   = "ingest"
	StepParse    = "parse"
	StepValidate = "validate"
	StepWrite    = "write"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Source  string `json:"source"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Inputs are processed
// concurrently, so the callback must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Inputs      []string  // File paths; StdinSource reads Stdin
	Stdin       io.Reader // Required when Inputs contains StdinSource
	OutDir      string    // Where <name>.draft.json files go; nothing is written when empty
	Format      ingestion.Format
	Full        bool // Merge each draft over the empty full record
	Validate    bool // Validate each document against the embedded schema
	Concurrency int  // Maximum inputs in flight; <= 0 means one
	Parser      *parsing.Parser
	Logger      *zerolog.Logger
	OnProgress  ProgressCallback
}

// Result is the outcome for one input, in input order.
type Result struct {
	Source     string
	Name       string // Output base name, unique within a run
	OutputPath string // Empty when OutDir is not set
	Draft      types.ResumeDraft
	Full       *types.ResumeData // Set when RunOptions.Full
	Metadata   *ingestion.Metadata
	Blank      bool
}

// Document returns the value that is written for this result: the merged
// record when requested, otherwise the draft.
func (r *Result) Document() any {
	if r.Full != nil {
		return r.Full
	}
	return r.Draft
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, source, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Source:  source,
			Message: message,
			Content: content,
		})
	}
}

// Run imports every input. It stops at the first failure and returns it,
// wrapped with the input's name.
func Run(ctx context.Context, opts RunOptions) ([]Result, error) {
	if len(opts.Inputs) == 0 {
		return nil, fmt.Errorf("no inputs")
	}
	if err := checkStdin(opts); err != nil {
		return nil, err
	}
	if opts.Parser == nil {
		p, err := parsing.New(parsing.Config{Logger: opts.Logger})
		if err != nil {
			return nil, fmt.Errorf("failed to create parser: %w", err)
		}
		opts.Parser = p
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	names := OutputNames(opts.Inputs)
	results := make([]Result, len(opts.Inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, source := range opts.Inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := importOne(&opts, source, names[i])
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(source), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts.Logger.Info().Int("inputs", len(results)).Str("out_dir", opts.OutDir).Msg("import complete")
	return results, nil
}

func importOne(opts *RunOptions, source, name string) (Result, error) {
	log := opts.Logger.With().Str("source", displayName(source)).Logger()
	res := Result{Source: source, Name: name}

	var (
		text string
		err  error
	)
	if source == StdinSource {
		text, res.Metadata, err = ingestion.IngestFromReader(opts.Stdin, "stdin", opts.Format)
	} else {
		text, res.Metadata, err = ingestFile(source, opts.Format)
	}
	if err != nil {
		return res, err
	}
	emitProgress(opts, StepIngest, source, fmt.Sprintf("Read %d bytes (%s)", res.Metadata.Bytes, res.Metadata.Format), nil)

	res.Draft = opts.Parser.Parse(text)
	res.Blank = opts.Parser.IsBlank(res.Draft)
	if res.Blank {
		log.Warn().Msg("nothing could be extracted")
	}
	emitProgress(opts, StepParse, source,
		fmt.Sprintf("Parsed %d experiences, %d education entries", len(res.Draft.Experiences), len(res.Draft.Education)),
		res.Draft)

	if opts.Full {
		merged := types.MergeDraft(types.DefaultResumeData(), res.Draft)
		res.Full = &merged
	}

	if opts.Validate {
		schemaName := schemas.DraftSchema
		if opts.Full {
			schemaName = schemas.DataSchema
		}
		if err := schemas.ValidateValue(schemaName, res.Document()); err != nil {
			return res, err
		}
		emitProgress(opts, StepValidate, source, "Schema validation passed", nil)
	}

	if opts.OutDir != "" {
		path, err := writeResult(opts.OutDir, &res)
		if err != nil {
			return res, err
		}
		res.OutputPath = path
		log.Debug().Str("path", path).Msg("draft written")
		emitProgress(opts, StepWrite, source, "Wrote "+path, nil)
	}

	return res, nil
}

func ingestFile(path string, format ingestion.Format) (string, *ingestion.Metadata, error) {
	if format == "" {
		return ingestion.IngestFromFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, &ingestion.ReadError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()
	return ingestion.IngestFromReader(f, path, format)
}

// writeResult writes <name>.draft.json and <name>.meta.json into outDir
func writeResult(outDir string, res *Result) (string, error) {
	doc, err := MarshalDocument(res.Document())
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, res.Name+".draft.json")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("failed to write draft file: %w", err)
	}

	meta, err := res.Metadata.ToJSON()
	if err != nil {
		return "", err
	}
	metaPath := filepath.Join(outDir, res.Name+".meta.json")
	if err := os.WriteFile(metaPath, append(meta, '\n'), 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	return path, nil
}

// MarshalDocument renders a draft or record as indented JSON with a trailing newline.
func MarshalDocument(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// OutputNames derives a unique output base name per input from its file name.
// Repeated names get -2, -3, ... suffixes in input order.
func OutputNames(inputs []string) []string {
	names := make([]string, len(inputs))
	taken := make(map[string]bool, len(inputs))
	for i, input := range inputs {
		base := "stdin"
		if input != StdinSource {
			base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
		if base == "" || base == "." {
			base = "resume"
		}
		name := base
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s-%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func checkStdin(opts RunOptions) error {
	count := 0
	for _, input := range opts.Inputs {
		if input == StdinSource {
			count++
		}
	}
	switch {
	case count > 1:
		return fmt.Errorf("stdin can only be read once")
	case count == 1 && opts.Stdin == nil:
		return fmt.Errorf("stdin requested but no reader configured")
	}
	return nil
}

func displayName(source string) string {
	if source == StdinSource {
		return "stdin"
	}
	return source
}

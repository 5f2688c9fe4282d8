package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a JSON Schema",
	Long: `Validate a JSON document against a JSON Schema file, or against the embedded draft
schema when --schema is not given (the full record schema with --full).`,
	RunE: runValidate,
}

var (
	validateSchemaPath string
	validateJSONPath   string
	validateFull       bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to JSON Schema file (embedded draft schema when empty)")
	validateCmd.Flags().StringVarP(&validateJSONPath, "json", "j", "", "Path to JSON file to validate")
	validateCmd.Flags().BoolVar(&validateFull, "full", false, "Use the embedded full record schema")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchemaPath != "" {
		err = schemas.ValidateJSON(validateSchemaPath, validateJSONPath)
	} else {
		err = validateEmbedded(validateJSONPath)
	}

	var schemaLoadErr *schemas.SchemaLoadError
	if errors.As(err, &schemaLoadErr) {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(validateJSONPath, err)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func validateEmbedded(jsonPath string) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	schemaName := schemas.DraftSchema
	if validateFull {
		schemaName = schemas.DataSchema
	}
	return schemas.ValidateDocument(schemaName, data)
}

package schemas_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-importer/internal/types"
	"github.com/jonathan/resume-importer/schemas"
)

func schemaFiles(t *testing.T) []string {
	t.Helper()
	files, err := fs.Glob(schemas.FS, "*.schema.json")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles(t) {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := fs.ReadFile(schemas.FS, schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
		})
	}
}

func TestAllSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range schemaFiles(t) {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := fs.ReadFile(schemas.FS, schemaFile)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err)
		})
	}
}

func TestSchemas_AcceptEmptyRecords(t *testing.T) {
	tests := []struct {
		schemaFile string
		document   any
	}{
		{"resume_data.schema.json", types.DefaultResumeData()},
		{"resume_draft.schema.json", func() types.ResumeDraft {
			d := types.NewResumeDraft()
			d.FullName = "SEU NOME"
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.schemaFile, func(t *testing.T) {
			data, err := fs.ReadFile(schemas.FS, tt.schemaFile)
			require.NoError(t, err)

			result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(data), gojsonschema.NewGoLoader(tt.document))
			require.NoError(t, err)
			assert.True(t, result.Valid(), "%v", result.Errors())
		})
	}
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDraft = `{
  "fullName": "MARIA SOUZA",
  "email": "",
  "phone": "",
  "location": "",
  "summary": "",
  "experiences": [],
  "education": [],
  "skills": ""
}`

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.json", validDraft)
	invalid := writeFile(t, dir, "invalid.json", `{"fullName": ""}`)
	schema := writeFile(t, dir, "name.schema.json", `{
  "type": "object",
  "required": ["name"],
  "properties": {"name": {"type": "string"}}
}`)

	tests := []struct {
		name       string
		args       []string
		wantError  bool
		wantOutput string
	}{
		{
			name:       "valid against embedded draft schema",
			args:       []string{"validate", "--json", valid},
			wantOutput: "SCHEMA VALID",
		},
		{
			name:       "invalid against embedded draft schema",
			args:       []string{"validate", "--json", invalid},
			wantError:  true,
			wantOutput: "SCHEMA VALIDATION FAILED",
		},
		{
			name:       "draft lacks full record fields",
			args:       []string{"validate", "--full", "--json", valid},
			wantError:  true,
			wantOutput: "SCHEMA VALIDATION FAILED",
		},
		{
			name:       "schema file",
			args:       []string{"validate", "--schema", schema, "--json", valid},
			wantError:  true,
			wantOutput: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, "", tt.args...)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "validation failed")
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, stdout, tt.wantOutput)
		})
	}
}

func TestValidateCommand_MissingJSONFlag(t *testing.T) {
	_, _, err := executeCommand(t, "", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"json\" not set")
}

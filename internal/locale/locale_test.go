package locale

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, []string{"en-US", "pt-BR"}, Available())
}

func TestDefault(t *testing.T) {
	loc := Default()
	require.NotNil(t, loc)

	assert.Equal(t, "pt-BR", loc.Name)
	assert.Equal(t, language.BrazilianPortuguese, loc.Tag())
	assert.Equal(t, "SEU NOME", loc.Placeholders.Name)
	assert.Equal(t, "Cargo", loc.Placeholders.Position)
	assert.Equal(t, "Empresa", loc.Placeholders.Company)
	assert.Equal(t, "Instituição", loc.Placeholders.School)
	assert.Len(t, loc.Regions, 27)
	assert.Contains(t, loc.Regions, "SP")
	assert.Equal(t, []string{"Curriculum", "CV"}, loc.NameExclusions)
	assert.Contains(t, loc.RangeSeparators, "at[ée]")
}

func TestLoad_EnUS(t *testing.T) {
	loc, err := Load("en-US")
	require.NoError(t, err)

	assert.Equal(t, "YOUR NAME", loc.Placeholders.Name)
	assert.Equal(t, "Position", loc.Placeholders.Position)
	assert.Equal(t, "Company", loc.Placeholders.Company)
	assert.Equal(t, "Institution", loc.Placeholders.School)
	assert.Equal(t, language.AmericanEnglish, loc.Tag())
	assert.Contains(t, loc.Regions, "NY")
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("xx-XX")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "xx-XX", loadErr.Source)
	assert.Contains(t, err.Error(), "unknown locale")
	assert.Contains(t, err.Error(), "pt-BR")
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	valid := `name: test
language: es-ES
placeholders: {name: TU NOMBRE, position: Cargo, company: Empresa, school: Institución}
headings:
  experience: ["experiencia"]
  education: ["educaci[óo]n"]
  skills: [habilidades]
  summary: [resumen, perfil]
months: [ene, feb]
present: [actual]
rangeSeparators: ["-"]
regions: [MD, BCN]
phonePattern: '\d{9}'
pagination: ["Página"]
`

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid definition", valid, ""},
		{"invalid YAML", "name: [unterminated", "failed to parse YAML"},
		{"missing required fields", "name: partial\nlanguage: es\n", "invalid locale definition"},
		{"bad language tag", "name: x\nlanguage: \"!!\"\n" + valid[len("name: test\nlanguage: es-ES\n"):], "invalid language tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "locale.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			loc, err := LoadFile(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test", loc.Name)
			assert.Equal(t, "TU NOMBRE", loc.Placeholders.Name)
			assert.Equal(t, []string{"MD", "BCN"}, loc.Regions)
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

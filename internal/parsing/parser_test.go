package parsing

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/locale"
	"github.com/jonathan/resume-importer/internal/types"
)

const mariaSouza = `MARIA SOUZA
maria.souza@email.com
(11) 98888-7777
São Paulo, SP

Experiência
Jan 2020 - Atual
Empresa XPTO
Desenvolveu sistemas web.

Educação
2016 - 2020
Universidade Federal
`

func newTestParser(t *testing.T, localeName string) *Parser {
	t.Helper()
	loc, err := locale.Load(localeName)
	require.NoError(t, err)
	p, err := New(Config{Locale: loc, NewIDs: SequentialIDs("")})
	require.NoError(t, err)
	return p
}

func TestParse_EndToEnd(t *testing.T) {
	p := newTestParser(t, "pt-BR")

	draft := p.Parse(mariaSouza)

	assert.Equal(t, "MARIA SOUZA", draft.FullName)
	assert.Equal(t, "maria.souza@email.com", draft.Email)
	assert.Equal(t, "(11) 98888-7777", draft.Phone)
	assert.Contains(t, draft.Location, "São Paulo, SP")
	assert.Equal(t, "", draft.Summary)
	assert.Equal(t, "", draft.Skills)

	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, types.Experience{
		ID:          "1",
		Position:    "Cargo",
		Company:     "Empresa XPTO",
		Period:      "Jan 2020 - Atual",
		Description: "Desenvolveu sistemas web.",
	}, draft.Experiences[0])

	require.Len(t, draft.Education, 1)
	assert.Equal(t, types.Education{
		ID:     "2",
		School: "Universidade Federal",
		Year:   "2016 - 2020",
	}, draft.Education[0])
}

func TestParse_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"single blank line", "\n"},
		{"whitespace only", "   \t  \n  "},
		{"only pagination", "Página 1\n\nPage 2\n"},
		{"single characters", "a\nb\n-\n"},
	}

	p := newTestParser(t, "pt-BR")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := p.Parse(tt.input)

			expected := types.NewResumeDraft()
			expected.FullName = "SEU NOME"
			assert.Equal(t, expected, draft)
			assert.True(t, p.IsBlank(draft))
		})
	}
}

func TestParse_EmptyInputEnglishPlaceholder(t *testing.T) {
	p := newTestParser(t, "en-US")

	draft := p.Parse("\n")
	assert.Equal(t, "YOUR NAME", draft.FullName)
	assert.True(t, p.IsBlank(draft))
}

func TestParse_Email(t *testing.T) {
	draft := Parse("Contato: joao.silva+cv@empresa.com.br | LinkedIn\nJoão Silva")
	assert.Equal(t, "joao.silva+cv@empresa.com.br", draft.Email)
}

func TestParse_FullName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "first qualifying line",
			input:    "Ana Lima\nana@lima.com",
			expected: "ANA LIMA",
		},
		{
			name:     "skips curriculum and contact lines",
			input:    "Curriculum Vitae\njoao@x.com\n(21) 3333-4444\n• João da Silva",
			expected: "JOÃO DA SILVA",
		},
		{
			name:     "skips CV token case-sensitively",
			input:    "Meu CV\ncarla gomes",
			expected: "CARLA GOMES",
		},
		{
			name:     "lowercase cv is not excluded",
			input:    "meu cv atualizado\ncarla gomes",
			expected: "MEU CV ATUALIZADO",
		},
		{
			name:     "three runes is too short",
			input:    "Ana\nBeatriz Costa",
			expected: "BEATRIZ COSTA",
		},
		{
			name:     "fifty runes is too long",
			input:    strings.Repeat("x", 50) + "\nPedro Alves",
			expected: "PEDRO ALVES",
		},
		{
			name:     "no candidate in the first ten lines",
			input:    strings.Repeat("a@b.com\n", 10) + "Pedro Alves",
			expected: "SEU NOME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input).FullName)
		})
	}
}

func TestParse_HeaderBoundary(t *testing.T) {
	// Lines up to and including the name are not re-read by the section pass.
	input := "Habilidades\nJosé Pereira\nHabilidades\nGo, SQL"
	draft := newTestParser(t, "pt-BR").Parse(input)

	assert.Equal(t, "HABILIDADES", draft.FullName)
	assert.Equal(t, "Go, SQL", draft.Skills)
}

func TestParse_Experience(t *testing.T) {
	input := `Fulano de Tal
Experiência
Desenvolvedor Senior Jan 2020 - Atual
Empresa A
- Liderou equipe
- Entregou projetos
Mar/2018 a Dez/2019 Analista
Empresa B
Curto demais para ser empresa? não, já tem empresa
`
	draft := newTestParser(t, "pt-BR").Parse(input)

	require.Len(t, draft.Experiences, 2)
	assert.Equal(t, types.Experience{
		ID:          "1",
		Position:    "Desenvolvedor Senior",
		Company:     "Empresa A",
		Period:      "Jan 2020 - Atual",
		Description: "Liderou equipe\nEntregou projetos",
	}, draft.Experiences[0])
	assert.Equal(t, types.Experience{
		ID:          "2",
		Position:    "Analista",
		Company:     "Empresa B",
		Period:      "Mar/2018 - Dez/2019",
		Description: "Curto demais para ser empresa? não, já tem empresa",
	}, draft.Experiences[1])
}

func TestParse_ExperiencePeriodAnyPosition(t *testing.T) {
	periods := []string{"Jan 2020 - Atual", "fev/2015 até mar/2016", "01/2010 to 12/2012", "2005 - 2008", "Set 2021 - presente"}

	var sb strings.Builder
	sb.WriteString("Nome Qualquer\nExperiência\n")
	for _, period := range periods {
		sb.WriteString(period + "\n")
	}

	draft := Parse(sb.String())
	require.Len(t, draft.Experiences, len(periods))

	expected := []string{"Jan 2020 - Atual", "fev/2015 - mar/2016", "01/2010 - 12/2012", "2005 - 2008", "Set 2021 - presente"}
	for i, exp := range draft.Experiences {
		assert.Equal(t, expected[i], exp.Period)
		assert.Equal(t, "Cargo", exp.Position)
		assert.Equal(t, "Empresa", exp.Company)
	}
}

func TestParse_ExperienceCompanyCaptureOnce(t *testing.T) {
	input := "Nome Qualquer\nExperiência\nJan 2020 - Atual\nEmpresa XPTO\nOutra linha curta\nMais uma"
	draft := Parse(input)

	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, "Empresa XPTO", draft.Experiences[0].Company)
	assert.Equal(t, "Outra linha curta\nMais uma", draft.Experiences[0].Description)
}

func TestParse_ExperienceLongLineIsDescription(t *testing.T) {
	long := "Responsável pela arquitetura de microsserviços e pela migração para nuvem"
	draft := Parse("Nome Qualquer\nExperiência\nJan 2020 - Atual\n" + long)

	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, "Empresa", draft.Experiences[0].Company)
	assert.Equal(t, long, draft.Experiences[0].Description)
}

func TestParse_ExperienceUndatedFirstEntry(t *testing.T) {
	draft := newTestParser(t, "pt-BR").Parse("Nome Qualquer\nExperiência\nDev\n• Desenvolvedor Freelancer\nAutônomo")

	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, types.Experience{
		ID:       "1",
		Position: "Desenvolvedor Freelancer",
		Company:  "Autônomo",
	}, draft.Experiences[0])
}

func TestParse_Education(t *testing.T) {
	input := `Nome Sobrenome
Formação
Universidade de São Paulo 2015 - 2019
Bacharel em Letras
Linha ignorada
2021
MBA em Gestão
`
	draft := newTestParser(t, "pt-BR").Parse(input)

	require.Len(t, draft.Education, 2)
	assert.Equal(t, types.Education{
		ID:     "1",
		School: "Universidade de São Paulo",
		Degree: "Bacharel em Letras",
		Year:   "2015 - 2019",
	}, draft.Education[0])
	assert.Equal(t, types.Education{
		ID:     "2",
		School: "MBA em Gestão",
		Year:   "2021",
	}, draft.Education[1])
}

func TestParse_EducationUndatedFirstEntry(t *testing.T) {
	draft := Parse("Nome Sobrenome\nEscolaridade\nETEC\nColégio Técnico Estadual\nTécnico em Informática")

	require.Len(t, draft.Education, 1)
	assert.Equal(t, "Colégio Técnico Estadual", draft.Education[0].School)
	assert.Equal(t, "Técnico em Informática", draft.Education[0].Degree)
	assert.Equal(t, "", draft.Education[0].Year)
}

func TestParse_Skills(t *testing.T) {
	tests := []struct {
		name     string
		lines    string
		expected string
	}{
		{"order and multiplicity", "Python, Python, SQL", "Python, Python, SQL"},
		{"delimiter set", "Go; Docker | Kubernetes • Git\tLinux  AWS", "Go, Docker, Kubernetes, Git, Linux, AWS"},
		{"single rune tokens dropped", "C, R, Go", "Go"},
		{"bullets stripped", "• Comunicação\n- Liderança", "Comunicação, Liderança"},
		{"single space is not a delimiter", "Gestão do tempo, Excel avançado", "Gestão do tempo, Excel avançado"},
		{"overlong tokens dropped", strings.Repeat("y", 60) + ", Java", "Java"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Parse("Nome Sobrenome\nHabilidades\n" + tt.lines)
			assert.Equal(t, tt.expected, draft.Skills)
		})
	}
}

func TestParse_Summary(t *testing.T) {
	input := `Nome Sobrenome
Resumo
Engenheiro de software com 10 anos de experiência.
Jan 2020 - Atual
Focado em sistemas distribuídos.
`
	draft := Parse(input)
	assert.Equal(t, "Engenheiro de software com 10 anos de experiência. Focado em sistemas distribuídos.", draft.Summary)
}

func TestParse_ImplicitSummary(t *testing.T) {
	prose := "Profissional com ampla experiência em desenvolvimento de software, liderança técnica e entrega de produtos digitais."
	require.Greater(t, len([]rune(prose)), 100)

	input := "Nome Sobrenome\nRua das Flores 123\n" + prose + "\nContinuação curta\nExperiência\nJan 2020 - Atual"
	draft := Parse(input)

	assert.Equal(t, prose+" Continuação curta", draft.Summary)
	require.Len(t, draft.Experiences, 1)
}

func TestParse_ImplicitSummaryDatedOpenerSkipped(t *testing.T) {
	opener := "Profissional com experiência em desenvolvimento de sistemas desde Jan 2010 - Atual, atuando em projetos de grande porte."
	require.Greater(t, len([]rune(opener)), 100)

	draft := Parse("Nome Sobrenome\n" + opener + "\nOutra linha de resumo")

	assert.Equal(t, "Outra linha de resumo", draft.Summary)
	assert.Empty(t, draft.Experiences)
}

func TestParse_GroupedMonthFragments(t *testing.T) {
	loc := locale.Default()
	loc.Months = append([]string{"mar(ço)?", "(jan|fev)(eiro)?"}, loc.Months...)
	p, err := New(Config{Locale: loc, NewIDs: SequentialIDs("")})
	require.NoError(t, err)

	input := `Nome Sobrenome
Experiência
Março 2020 - Atual
Empresa XPTO
Educação
Fevereiro 2016 - Março 2020
Universidade Federal
`
	draft := p.Parse(input)

	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, "Março 2020 - Atual", draft.Experiences[0].Period)
	assert.Equal(t, "Cargo", draft.Experiences[0].Position)
	assert.Equal(t, "Empresa XPTO", draft.Experiences[0].Company)
	require.Len(t, draft.Education, 1)
	assert.Equal(t, "Fevereiro 2016 - Março 2020", draft.Education[0].Year)
	assert.Equal(t, "Universidade Federal", draft.Education[0].School)
}

func TestParse_LinesBeforeAnySectionAreDropped(t *testing.T) {
	draft := Parse("Nome Sobrenome\nRua das Flores 123\nDisponível para viagens\nHabilidades\nGo")

	assert.Equal(t, "", draft.Summary)
	assert.Equal(t, "Go", draft.Skills)
	assert.Empty(t, draft.Experiences)
}

func TestParse_EnglishLocale(t *testing.T) {
	input := `John Smith
john.smith@example.com
(555) 123-4567
Austin, TX
Experience
Software Engineer Jan 2019 - Present
Acme Corp
Built APIs.
Education
2010 - 2014
State University
BS Computer Science
Skills
Go, Python
`
	draft := newTestParser(t, "en-US").Parse(input)

	assert.Equal(t, "JOHN SMITH", draft.FullName)
	assert.Equal(t, "john.smith@example.com", draft.Email)
	assert.Equal(t, "(555) 123-4567", draft.Phone)
	assert.Equal(t, "Austin, TX", draft.Location)
	require.Len(t, draft.Experiences, 1)
	assert.Equal(t, "Software Engineer", draft.Experiences[0].Position)
	assert.Equal(t, "Acme Corp", draft.Experiences[0].Company)
	assert.Equal(t, "Jan 2019 - Present", draft.Experiences[0].Period)
	require.Len(t, draft.Education, 1)
	assert.Equal(t, types.Education{ID: "2", School: "State University", Degree: "BS Computer Science", Year: "2010 - 2014"}, draft.Education[0])
	assert.Equal(t, "Go, Python", draft.Skills)
}

func TestParse_DefaultIDsAreUniqueUUIDs(t *testing.T) {
	draft := Parse("Nome Qualquer\nExperiência\nJan 2020 - Atual\nJan 2018 - Dez 2019\nEducação\n2010 - 2014")

	seen := make(map[string]bool)
	for _, id := range []string{draft.Experiences[0].ID, draft.Experiences[1].ID, draft.Education[0].ID} {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser(t, "pt-BR")
	assert.Equal(t, p.Parse(mariaSouza), p.Parse(mariaSouza))
}

func TestParse_Concurrent(t *testing.T) {
	p := newTestParser(t, "pt-BR")
	expected := p.Parse(mariaSouza)

	var wg sync.WaitGroup
	results := make([]types.ResumeDraft, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Parse(mariaSouza)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, expected, got)
	}
}

func TestParse_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	p, err := New(Config{Logger: &logger})
	require.NoError(t, err)

	p.Parse(mariaSouza)

	assert.Contains(t, buf.String(), "section transition")
	assert.Contains(t, buf.String(), `"to":"experience"`)
	assert.Contains(t, buf.String(), "draft assembled")
}

func TestNew_InvalidLocalePattern(t *testing.T) {
	loc := locale.Default()
	loc.Months = []string{"("}

	_, err := New(Config{Locale: loc})
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "months", cfgErr.Field)
}

func TestIsBlank(t *testing.T) {
	ph := locale.Default().Placeholders

	draft := types.NewResumeDraft()
	assert.True(t, IsBlank(draft, ph))

	draft.FullName = ph.Name
	assert.True(t, IsBlank(draft, ph))

	draft.Skills = "Go"
	assert.False(t, IsBlank(draft, ph))

	named := types.NewResumeDraft()
	named.FullName = "ANA"
	assert.False(t, IsBlank(named, ph))
}

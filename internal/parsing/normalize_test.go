package parsing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"trims and drops blanks", "  Ana Lima  \n\n\t\nGo\n", []string{"Ana Lima", "Go"}},
		{"drops single runes", "a\n-\nab", []string{"ab"}},
		{"drops pagination anywhere in line", "Página 2\nPAGE 3 of 4\n-- page 10 --\nPágina", []string{"Página"}},
		{"keeps crlf content", "Linha 1\r\nLinha 2\r\n", []string{"Linha 1", "Linha 2"}},
		{"composes decomposed accents", "Experie\u0302ncia", []string{"Experi\u00eancia"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLines(tt.input))
		})
	}
}

func TestNormalizeLines_Idempotent(t *testing.T) {
	inputs := []string{
		mariaSouza,
		"  • item  \n\nPage 1\n x \n Nome \n",
		"Experiência\n\n\n2016 - 2020",
	}

	for _, input := range inputs {
		once := NormalizeLines(input)
		twice := NormalizeLines(strings.Join(once, "\n"))
		assert.Equal(t, once, twice)
	}
}

func TestCleanBullet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"• Item", "Item"},
		{"- Item", "Item"},
		{"* Item", "Item"},
		{"· Item", "Item"},
		{"> Item", "Item"},
		{" •-* Item - with dash ", "Item - with dash"},
		{"Item", "Item"},
		{"•", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cleanBullet(tt.input), "input %q", tt.input)
	}
}

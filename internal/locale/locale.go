// Package locale loads the vocabulary tables that tune resume parsing to one
// language and geographic convention.
package locale

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"
)

// DefaultName is the locale used when none is requested.
const DefaultName = "pt-BR"

//go:embed locales/*.yaml
var embedded embed.FS

// Locale holds the heading vocabulary, date tokens and contact conventions for
// one resume language. Vocabulary entries are RE2 fragments.
type Locale struct {
	Name            string       `yaml:"name" json:"name" validate:"required"`
	Language        string       `yaml:"language" json:"language" validate:"required"`
	Placeholders    Placeholders `yaml:"placeholders" json:"placeholders"`
	Headings        Headings     `yaml:"headings" json:"headings"`
	Months          []string     `yaml:"months" json:"months" validate:"required,min=1,dive,required"`
	Present         []string     `yaml:"present" json:"present" validate:"required,min=1,dive,required"`
	RangeSeparators []string     `yaml:"rangeSeparators" json:"rangeSeparators" validate:"required,min=1,dive,required"`
	Regions         []string     `yaml:"regions" json:"regions" validate:"required,min=1,dive,required"`
	PhonePattern    string       `yaml:"phonePattern" json:"phonePattern" validate:"required"`
	NameExclusions  []string     `yaml:"nameExclusions" json:"nameExclusions" validate:"dive,required"`
	Pagination      []string     `yaml:"pagination" json:"pagination" validate:"required,min=1,dive,required"`
}

// Placeholders are the sentinel values a field holds until the parser finds
// real content for it.
type Placeholders struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Position string `yaml:"position" json:"position" validate:"required"`
	Company  string `yaml:"company" json:"company" validate:"required"`
	School   string `yaml:"school" json:"school" validate:"required"`
}

// Headings lists the keyword prefixes that open each resume section.
type Headings struct {
	Experience []string `yaml:"experience" json:"experience" validate:"required,min=1,dive,required"`
	Education  []string `yaml:"education" json:"education" validate:"required,min=1,dive,required"`
	Skills     []string `yaml:"skills" json:"skills" validate:"required,min=1,dive,required"`
	Summary    []string `yaml:"summary" json:"summary" validate:"required,min=1,dive,required"`
}

// Tag returns the BCP 47 tag of the locale's language.
func (l *Locale) Tag() language.Tag {
	tag, err := language.Parse(l.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

// Default returns the embedded default locale.
func Default() *Locale {
	loc, err := Load(DefaultName)
	if err != nil {
		panic(fmt.Sprintf("embedded locale %s is invalid: %v", DefaultName, err))
	}
	return loc
}

// Load returns the embedded locale with the given name.
func Load(name string) (*Locale, error) {
	data, err := embedded.ReadFile(path.Join("locales", name+".yaml"))
	if err != nil {
		return nil, &LoadError{
			Source:  name,
			Message: fmt.Sprintf("unknown locale (available: %s)", strings.Join(Available(), ", ")),
			Cause:   err,
		}
	}
	return Parse(data, name)
}

// LoadFile reads a locale definition from a YAML file on disk.
func LoadFile(filePath string) (*Locale, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &LoadError{Source: filePath, Message: "failed to read file", Cause: err}
	}
	return Parse(data, filePath)
}

// Parse decodes and validates a YAML locale definition. source names the
// origin of data in error messages.
func Parse(data []byte, source string) (*Locale, error) {
	var loc Locale
	if err := yaml.Unmarshal(data, &loc); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to parse YAML", Cause: err}
	}
	if err := validator.New().Struct(&loc); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid locale definition", Cause: err}
	}
	if _, err := language.Parse(loc.Language); err != nil {
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("invalid language tag %q", loc.Language), Cause: err}
	}
	return &loc, nil
}

// Available lists the names of the embedded locales, sorted.
func Available() []string {
	entries, err := embedded.ReadDir("locales")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Package parsing turns unstructured resume text into a structured draft using
// line heuristics: a bounded header scan for identity and contact fields, then a
// single forward pass where section headings switch between per-section
// accumulators.
package parsing

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-importer/internal/locale"
	"github.com/jonathan/resume-importer/internal/types"
)

// Config holds parser configuration. Zero fields fall back to DefaultConfig values.
type Config struct {
	Locale *locale.Locale
	NewIDs func() IDSource
	Logger *zerolog.Logger
}

// DefaultConfig returns the default locale with random UUID identifiers and no logging.
func DefaultConfig() Config {
	nop := zerolog.Nop()
	return Config{
		Locale: locale.Default(),
		NewIDs: NewUUIDSource,
		Logger: &nop,
	}
}

// Parser extracts resume drafts. It is immutable after New and safe for
// concurrent use.
type Parser struct {
	locale     *locale.Locale
	tag        language.Tag
	patterns   *patterns
	classifier *Classifier
	newIDs     func() IDSource
	log        zerolog.Logger
}

// New compiles the locale tables into a Parser.
func New(cfg Config) (*Parser, error) {
	defaults := DefaultConfig()
	if cfg.Locale == nil {
		cfg.Locale = defaults.Locale
	}
	if cfg.NewIDs == nil {
		cfg.NewIDs = defaults.NewIDs
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}

	pats, err := compilePatterns(cfg.Locale)
	if err != nil {
		return nil, err
	}

	return &Parser{
		locale:     cfg.Locale,
		tag:        cfg.Locale.Tag(),
		patterns:   pats,
		classifier: &Classifier{headings: pats.headings},
		newIDs:     cfg.NewIDs,
		log:        cfg.Logger.With().Str("locale", cfg.Locale.Name).Logger(),
	}, nil
}

var defaultParser = sync.OnceValue(func() *Parser {
	p, err := New(DefaultConfig())
	if err != nil {
		panic("default parser: " + err.Error())
	}
	return p
})

// Parse extracts a draft from raw text using the default locale.
func Parse(rawText string) types.ResumeDraft {
	return defaultParser().Parse(rawText)
}

// NormalizeLines returns the candidate lines the default parser would read.
func NormalizeLines(rawText string) []string {
	return defaultParser().Normalize(rawText)
}

// Locale returns the locale the parser was built with.
func (p *Parser) Locale() *locale.Locale {
	return p.locale
}

// Classifier returns the parser's section heading classifier.
func (p *Parser) Classifier() *Classifier {
	return p.classifier
}

// Normalize returns the trimmed, non-degenerate, non-pagination lines of rawText.
func (p *Parser) Normalize(rawText string) []string {
	return normalizeLines(rawText, p.patterns.pagination)
}

// Parse extracts a draft from raw text. It accepts any input; fields it cannot
// find are left empty, and the name falls back to the locale placeholder.
func (p *Parser) Parse(rawText string) types.ResumeDraft {
	lines := p.Normalize(rawText)
	if len(lines) == 0 {
		return p.assemble(header{}, nil)
	}

	h := p.extractHeader(lines)
	r := p.newRun()

	for i := h.end; i < len(lines); i++ {
		line := lines[i]
		obs := p.classifier.Observe(line)
		step := Transition(r.section, obs)
		if step.Next != r.section {
			p.log.Debug().Int("line", i).Stringer("from", r.section).Stringer("to", step.Next).Msg("section transition")
		}
		r.section = step.Next
		r.route(step.Route, line)
	}

	return p.assemble(h, r)
}

// run carries the mutable state of a single Parse call
type run struct {
	section    Section
	experience experienceAccumulator
	education  educationAccumulator
	skills     skillsAccumulator
	summary    summaryAccumulator
}

func (p *Parser) newRun() *run {
	ids := p.newIDs()
	ph := p.locale.Placeholders
	return &run{
		experience: experienceAccumulator{
			dateRange: p.patterns.dateRange,
			position:  ph.Position,
			company:   ph.Company,
			ids:       ids,
		},
		education: educationAccumulator{
			dateRange: p.patterns.dateRange,
			year:      p.patterns.year,
			school:    ph.School,
			ids:       ids,
		},
		summary: summaryAccumulator{dateRange: p.patterns.dateRange},
	}
}

func (r *run) route(section Section, line string) {
	switch section {
	case SectionExperience:
		r.experience.consume(line)
	case SectionEducation:
		r.education.consume(line)
	case SectionSkills:
		r.skills.consume(line)
	case SectionSummary:
		r.summary.consume(line)
	}
}

// assemble merges header and accumulator output into a draft, applying the
// name placeholder. r may be nil when there was nothing to read.
func (p *Parser) assemble(h header, r *run) types.ResumeDraft {
	draft := types.NewResumeDraft()
	draft.FullName = h.name
	draft.Email = h.email
	draft.Phone = h.phone
	draft.Location = h.location

	if r != nil {
		draft.Summary = r.summary.result()
		draft.Experiences = r.experience.result()
		draft.Education = r.education.result()
		draft.Skills = r.skills.result()
	}

	if draft.FullName == "" {
		draft.FullName = p.locale.Placeholders.Name
	}

	p.log.Debug().
		Int("experiences", len(draft.Experiences)).
		Int("education", len(draft.Education)).
		Bool("blank", p.IsBlank(draft)).
		Msg("draft assembled")

	return draft
}

// IsBlank reports whether nothing useful was extracted: the name is empty or
// the placeholder, and every other field is empty.
func (p *Parser) IsBlank(d types.ResumeDraft) bool {
	return IsBlank(d, p.locale.Placeholders)
}

// IsBlank reports whether a draft carries no extracted content, treating the
// placeholder name as empty.
func IsBlank(d types.ResumeDraft, ph locale.Placeholders) bool {
	return (d.FullName == "" || d.FullName == ph.Name) &&
		d.Email == "" &&
		d.Phone == "" &&
		d.Location == "" &&
		d.Summary == "" &&
		d.Skills == "" &&
		len(d.Experiences) == 0 &&
		len(d.Education) == 0
}

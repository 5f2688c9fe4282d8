package parsing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-importer/internal/locale"
)

var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	yearPattern    = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	skillDelimiter = regexp.MustCompile(`[,;|•·\t]| {2,}`)
)

// patterns holds the locale-dependent regular expressions used by one Parser
type patterns struct {
	email      *regexp.Regexp
	phone      *regexp.Regexp
	location   *regexp.Regexp
	dateRange  *regexp.Regexp
	year       *regexp.Regexp
	pagination *regexp.Regexp
	headings   []headingPattern
}

// headingPattern pairs a section with the pattern that opens it
type headingPattern struct {
	section Section
	re      *regexp.Regexp
}

func alternation(fragments []string) string {
	return strings.Join(fragments, "|")
}

// compilePatterns builds the per-locale expressions. Heading order is the
// classifier's priority order.
func compilePatterns(loc *locale.Locale) (*patterns, error) {
	p := &patterns{
		email: emailPattern,
		year:  yearPattern,
	}

	// A date token is a month name or 1-2 digit month followed by a 2 or 4 digit year
	token := fmt.Sprintf(`(?:%s|\d{1,2})[/\s,.]*(?:\d{4}|\d{2})`, alternation(loc.Months))
	sources := []struct {
		field  string
		target **regexp.Regexp
		expr   string
	}{
		{"phonePattern", &p.phone, loc.PhonePattern},
		{"regions", &p.location, fmt.Sprintf(`(?i)([a-zA-ZÀ-ÿ\s]+)[\s,/-]+(%s)`, alternation(loc.Regions))},
		{"months", &p.dateRange, fmt.Sprintf(`(?i)(?P<start>%s)\s*(?:%s)\s*(?P<end>%s|%s)`,
			token, alternation(loc.RangeSeparators), token, alternation(loc.Present))},
		{"pagination", &p.pagination, fmt.Sprintf(`(?i)(?:%s) \d+`, alternation(loc.Pagination))},
	}
	for _, src := range sources {
		re, err := regexp.Compile(src.expr)
		if err != nil {
			return nil, &ConfigError{Field: src.field, Message: "pattern does not compile", Cause: err}
		}
		*src.target = re
	}

	headings := []struct {
		section   Section
		fragments []string
	}{
		{SectionExperience, loc.Headings.Experience},
		{SectionEducation, loc.Headings.Education},
		{SectionSkills, loc.Headings.Skills},
		{SectionSummary, loc.Headings.Summary},
	}
	for _, h := range headings {
		re, err := regexp.Compile(`(?i)^(?:` + alternation(h.fragments) + `)`)
		if err != nil {
			return nil, &ConfigError{Field: "headings." + h.section.String(), Message: "pattern does not compile", Cause: err}
		}
		p.headings = append(p.headings, headingPattern{section: h.section, re: re})
	}

	return p, nil
}

// dateRangeMatch is a date range found in a line: its byte span and the start
// and end tokens as written.
type dateRangeMatch struct {
	from, to   int
	start, end string
}

// findDateRange locates the first date range in line. Tokens are read from the
// named start and end groups, so locale fragments may carry their own groups.
func findDateRange(re *regexp.Regexp, line string) (dateRangeMatch, bool) {
	m := re.FindStringSubmatchIndex(line)
	if m == nil {
		return dateRangeMatch{}, false
	}
	s, e := re.SubexpIndex("start"), re.SubexpIndex("end")
	return dateRangeMatch{
		from:  m[0],
		to:    m[1],
		start: line[m[2*s]:m[2*s+1]],
		end:   line[m[2*e]:m[2*e+1]],
	}, true
}

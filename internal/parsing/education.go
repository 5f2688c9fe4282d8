package parsing

import (
	"regexp"

	"github.com/jonathan/resume-importer/internal/types"
)

// minUndatedSchoolRunes is the exclusive lower bound for an undated first entry
const minUndatedSchoolRunes = 4

// educationAccumulator builds education entries. A date range or a bare year
// opens a new entry; following lines fill the school, then the degree.
type educationAccumulator struct {
	dateRange *regexp.Regexp
	year      *regexp.Regexp
	school    string // placeholder
	ids       IDSource
	entries   []types.Education
}

func (a *educationAccumulator) consume(line string) {
	var period string
	if m, ok := findDateRange(a.dateRange, line); ok {
		period = m.start + " - " + m.end
	} else if a.year.MatchString(line) {
		period = line
	}

	if period != "" {
		rest := removeFirst(a.dateRange, line)
		if a.year.MatchString(rest) {
			rest = ""
		}
		school := cleanBullet(rest)
		if school == "" {
			school = a.school
		}
		a.entries = append(a.entries, types.Education{
			ID:     a.ids.NextID(),
			School: school,
			Year:   period,
		})
		return
	}

	if len(a.entries) == 0 {
		if runeLen(line) > minUndatedSchoolRunes {
			a.entries = append(a.entries, types.Education{
				ID:     a.ids.NextID(),
				School: cleanBullet(line),
			})
		}
		return
	}

	last := &a.entries[len(a.entries)-1]
	switch {
	case last.School == a.school:
		last.School = cleanBullet(line)
	case last.Degree == "":
		last.Degree = cleanBullet(line)
	}
}

func (a *educationAccumulator) result() []types.Education {
	if a.entries == nil {
		return []types.Education{}
	}
	return a.entries
}

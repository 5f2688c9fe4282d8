package parsing

import (
	"regexp"

	"github.com/jonathan/resume-importer/internal/types"
)

const (
	// maxCompanyRunes is the exclusive upper bound for a line to be taken as a company name
	maxCompanyRunes = 50
	// minUndatedPositionRunes is the exclusive lower bound for an undated first entry
	minUndatedPositionRunes = 3
)

// experienceAccumulator builds work-experience entries. A date range opens a
// new entry; the next short line names the company; anything else is description.
type experienceAccumulator struct {
	dateRange *regexp.Regexp
	position  string // placeholder
	company   string // placeholder
	ids       IDSource
	entries   []types.Experience
}

func (a *experienceAccumulator) consume(line string) {
	if m, ok := findDateRange(a.dateRange, line); ok {
		position := cleanBullet(line[:m.from] + line[m.to:])
		if position == "" {
			position = a.position
		}
		a.entries = append(a.entries, types.Experience{
			ID:       a.ids.NextID(),
			Position: position,
			Company:  a.company,
			Period:   m.start + " - " + m.end,
		})
		return
	}

	if len(a.entries) == 0 {
		// An undated line can open the first entry, so a stray line here becomes a position.
		if runeLen(line) > minUndatedPositionRunes {
			a.entries = append(a.entries, types.Experience{
				ID:       a.ids.NextID(),
				Position: cleanBullet(line),
				Company:  a.company,
			})
		}
		return
	}

	last := &a.entries[len(a.entries)-1]
	if runeLen(line) < maxCompanyRunes && last.Company == a.company {
		last.Company = cleanBullet(line)
		return
	}
	if last.Description != "" {
		last.Description += "\n"
	}
	last.Description += cleanBullet(line)
}

func (a *experienceAccumulator) result() []types.Experience {
	if a.entries == nil {
		return []types.Experience{}
	}
	return a.entries
}

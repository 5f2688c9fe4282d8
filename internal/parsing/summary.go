package parsing

import (
	"regexp"
	"strings"
)

// summaryAccumulator joins free-text lines. Lines carrying a date range are
// noise from a misrouted experience block and are skipped.
type summaryAccumulator struct {
	dateRange *regexp.Regexp
	buf       strings.Builder
}

func (a *summaryAccumulator) consume(line string) {
	if a.dateRange.MatchString(line) {
		return
	}
	a.buf.WriteString(line)
	a.buf.WriteByte(' ')
}

func (a *summaryAccumulator) result() string {
	return strings.TrimSpace(a.buf.String())
}

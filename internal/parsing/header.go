package parsing

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// contactWindow bounds how many leading lines are searched for contact fields
	contactWindow = 20
	// nameWindow bounds how many leading lines are searched for the name
	nameWindow = 10
	// name length bounds, both exclusive
	minNameRunes = 3
	maxNameRunes = 50
)

// header is what the identity extractor found in the leading lines. end is the
// index of the first line the section pass should read.
type header struct {
	email    string
	phone    string
	location string
	name     string
	end      int
}

// extractHeader scans the leading lines for contact fields and the name.
// Each contact field keeps its first match independently of the others.
func (p *Parser) extractHeader(lines []string) header {
	var h header

	for _, line := range lines[:min(len(lines), contactWindow)] {
		if h.email == "" {
			h.email = p.patterns.email.FindString(line)
		}
		if h.phone == "" {
			h.phone = p.patterns.phone.FindString(line)
		}
		if h.location == "" {
			h.location = p.patterns.location.FindString(line)
		}
	}

	for i, line := range lines[:min(len(lines), nameWindow)] {
		if p.isNameCandidate(line) {
			h.name = cases.Upper(p.tag).String(cleanBullet(line))
			h.end = i + 1
			break
		}
	}

	return h
}

func (p *Parser) isNameCandidate(line string) bool {
	if p.patterns.email.MatchString(line) || p.patterns.phone.MatchString(line) {
		return false
	}
	if n := runeLen(line); n <= minNameRunes || n >= maxNameRunes {
		return false
	}
	for _, token := range p.locale.NameExclusions {
		if strings.Contains(line, token) {
			return false
		}
	}
	return true
}

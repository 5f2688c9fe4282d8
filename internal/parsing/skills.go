package parsing

import "strings"

const (
	minSkillRunes = 1  // exclusive
	maxSkillRunes = 60 // exclusive
)

// skillsAccumulator collects skill tokens in order, duplicates included
type skillsAccumulator struct {
	tokens []string
}

func (a *skillsAccumulator) consume(line string) {
	for _, item := range skillDelimiter.Split(line, -1) {
		token := cleanBullet(item)
		if n := runeLen(token); n > minSkillRunes && n < maxSkillRunes {
			a.tokens = append(a.tokens, token)
		}
	}
}

func (a *skillsAccumulator) result() string {
	return strings.Join(a.tokens, ", ")
}

package engine

import "strings"

type Stat string

const (
	StatStrength     Stat = "strength"
	StatAgility      Stat = "agility"
	StatVitality     Stat = "vitality"
	StatIntelligence Stat = "intelligence"
	StatDiscipline   Stat = "discipline"
	StatCharisma     Stat = "charisma"
	StatWealth       Stat = "wealth"
)

// StatOrder is the canonical category order. Quest selection sorts by level
// ascending and breaks ties in this order.
var StatOrder = []Stat{
	StatStrength,
	StatAgility,
	StatVitality,
	StatIntelligence,
	StatDiscipline,
	StatCharisma,
	StatWealth,
}

func (s Stat) IsValid() bool {
	switch s {
	case StatStrength, StatAgility, StatVitality, StatIntelligence,
		StatDiscipline, StatCharisma, StatWealth:
		return true
	default:
		return false
	}
}

// ParseStat parses user/storage input to a Stat.
func ParseStat(input string) (Stat, bool) {
	s := Stat(strings.TrimSpace(strings.ToLower(input)))
	return s, s.IsValid()
}

package game

import (
	"fmt"
	"strings"
)

// EffectKey names a value an option's delta applies to: one of the six
// indicators, the acting player's capital, or the board position.
type EffectKey string

const (
	KeyEconomy          EffectKey = "economy"
	KeyEducation        EffectKey = "education"
	KeyWellbeing        EffectKey = "wellbeing"
	KeyPopularSupport   EffectKey = "popular_support"
	KeyHunger           EffectKey = "hunger"
	KeyMilitaryReligion EffectKey = "military_religion"
	KeyCapital          EffectKey = "capital"
	KeyBoardPosition    EffectKey = "board_position"
)

var knownKeys = map[EffectKey]bool{
	KeyEconomy:          true,
	KeyEducation:        true,
	KeyWellbeing:        true,
	KeyPopularSupport:   true,
	KeyHunger:           true,
	KeyMilitaryReligion: true,
	KeyCapital:          true,
	KeyBoardPosition:    true,
}

// KnownKey reports whether k is a valid effect target.
func KnownKey(k EffectKey) bool {
	return knownKeys[k]
}

// Effect is one signed change to a named key.
type Effect struct {
	Key   EffectKey
	Delta int
}

// Effects is the ordered list of changes an option applies. Order matters for
// log rendering, not for arithmetic.
type Effects []Effect

// String renders the deltas for the game log, e.g. "hunger: -2, capital: +10".
func (e Effects) String() string {
	parts := make([]string, 0, len(e))
	for _, eff := range e {
		parts = append(parts, fmt.Sprintf("%s: %+d", eff.Key, eff.Delta))
	}
	return strings.Join(parts, ", ")
}

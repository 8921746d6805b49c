package game

func clamp(v int) int {
	if v < IndicatorMin {
		return IndicatorMin
	}
	if v > IndicatorMax {
		return IndicatorMax
	}
	return v
}

// ApplyEffects applies an option's deltas to the nation and the acting
// player's capital. Indicators are clamped to [0,10], capital is floored at
// zero with no ceiling, and the board position moves by the option's base
// delta plus the difficulty-dependent movement bonus, floored at zero.
//
// Pure function: callers persist the results themselves.
func ApplyEffects(n NationState, capital int, effects Effects, d Difficulty) (NationState, int) {
	boardDelta := 0
	positive, classified := 0, 0

	for _, eff := range effects {
		switch eff.Key {
		case KeyEconomy:
			n.Economy = clamp(n.Economy + eff.Delta)
		case KeyEducation:
			n.Education = clamp(n.Education + eff.Delta)
		case KeyWellbeing:
			n.Wellbeing = clamp(n.Wellbeing + eff.Delta)
		case KeyPopularSupport:
			n.PopularSupport = clamp(n.PopularSupport + eff.Delta)
		case KeyHunger:
			n.Hunger = clamp(n.Hunger + eff.Delta)
		case KeyMilitaryReligion:
			n.MilitaryReligion = clamp(n.MilitaryReligion + eff.Delta)
		case KeyCapital:
			capital += eff.Delta
			if capital < 0 {
				capital = 0
			}
		case KeyBoardPosition:
			boardDelta += eff.Delta
		}

		// Hunger is a bad-is-high metric, so lowering it counts as a
		// positive move. Capital and board deltas are not classified.
		switch eff.Key {
		case KeyCapital, KeyBoardPosition:
		case KeyHunger:
			classified++
			if eff.Delta < 0 {
				positive++
			}
		default:
			classified++
			if eff.Delta > 0 {
				positive++
			}
		}
	}

	ratio := 0.0
	if classified > 0 {
		ratio = float64(positive) / float64(classified)
	}

	n.BoardPosition += boardDelta + boardMovement(ratio, d)
	if n.BoardPosition < 0 {
		n.BoardPosition = 0
	}

	return n, capital
}

// boardMovement converts the share of positive deltas into token movement.
// Hard mode never grants more than one step and punishes anything below a
// third positive; easy mode rewards mostly-good decisions with two steps.
func boardMovement(ratio float64, d Difficulty) int {
	if d == DifficultyHard {
		switch {
		case ratio > 0.50:
			return 1
		case ratio > 0.30:
			return 0
		default:
			return -1
		}
	}

	switch {
	case ratio > 0.66:
		return 2
	case ratio > 0.30:
		return 1
	case ratio > 0.10:
		return 0
	default:
		return -1
	}
}

package game

import "fmt"

const (
	msgCollapse = "A nação entrou em colapso. O povo tomou as ruas e o governo caiu."
	msgVictory  = "A nação atravessou o tabuleiro! O mandato termina em triunfo."
	msgMixed    = "O mandato chegou ao fim, mas a fome e a desigualdade persistem."
)

// Outcome is the evaluator's verdict. A zero Outcome means the game goes on.
type Outcome struct {
	Finished bool
	Reason   EndReason
	Message  string
}

// OpportunistStanding is the Oportunista's position after the current
// decision: the freshly updated capital when the opportunist is the acting
// player, the stored capital otherwise.
type OpportunistStanding struct {
	Name    string
	Capital int
}

// Evaluate decides whether the game has ended, checked in strict precedence:
// collapse first, then the board victory band, then the opportunist's hidden
// win. Collapse is an emergency stop and can never be shadowed by a
// simultaneous victory condition; the opportunist check runs last because it
// depends on the freshest capital figure. Pass opp as nil when no player
// holds the Oportunista role.
func Evaluate(n NationState, opp *OpportunistStanding) Outcome {
	if n.Hunger >= IndicatorMax ||
		n.Economy <= IndicatorMin ||
		n.Education <= IndicatorMin ||
		n.Wellbeing <= IndicatorMin ||
		n.PopularSupport <= IndicatorMin ||
		n.MilitaryReligion <= IndicatorMin {
		return Outcome{Finished: true, Reason: EndCollapse, Message: msgCollapse}
	}

	if n.BoardPosition >= FinishLine {
		if n.Hunger < IndicatorMax {
			return Outcome{Finished: true, Reason: EndVictory, Message: msgVictory}
		}
		return Outcome{Finished: true, Reason: EndBittersweet, Message: msgMixed}
	}

	if opp != nil && opp.Capital >= OpportunistCapitalGoal && n.Education < OpportunistEducationCeiling {
		msg := fmt.Sprintf("%s acumulou uma fortuna enquanto a educação ruía. O Oportunista venceu.", opp.Name)
		return Outcome{Finished: true, Reason: EndOpportunist, Message: msg}
	}

	return Outcome{}
}

package game

import "errors"

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Status is the lifecycle state of a session.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Difficulty selects the starting indicators and the board movement table.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty normalises a client-supplied difficulty. An empty string
// means easy, matching the original game's default.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", ErrUnknownDifficulty
}

// EndReason records why a finished session ended.
type EndReason string

const (
	EndCollapse    EndReason = "collapse"
	EndVictory     EndReason = "victory"
	EndBittersweet EndReason = "bittersweet"
	EndOpportunist EndReason = "opportunist"
)

// Role is a character a player governs as. Observers hold the observer
// marker and never take turns.
type Role string

const (
	RolePresidente  Role = "Presidente"
	RoleSenadora    Role = "Senadora"
	RoleGovernador  Role = "Governador"
	RolePrefeita    Role = "Prefeita"
	RolePolitico    Role = "Político" // generic fallback when all roles are held
	RoleOportunista Role = "Oportunista"
	RoleObservador  Role = "Observador"
)

const (
	// MaxActivePlayers is the room cap. Observers do not count towards it.
	MaxActivePlayers = 4

	// FinishLine is the board position that ends the game in victory.
	FinishLine = 25

	// OpportunistCapitalGoal and OpportunistEducationCeiling gate the
	// hidden win condition: a fortune amassed while education crumbles.
	OpportunistCapitalGoal      = 100
	OpportunistEducationCeiling = 3

	// OpportunistChance is the probability that one player is secretly
	// reassigned to the Oportunista role when the session starts.
	OpportunistChance = 0.25
)

const (
	IndicatorMin = 0
	IndicatorMax = 10
)

// NationState is the shared state every player in a session acts on. The six
// indicators stay within [IndicatorMin, IndicatorMax]; the board position
// never drops below zero.
type NationState struct {
	Economy          int
	Education        int
	Wellbeing        int
	PopularSupport   int
	Hunger           int
	MilitaryReligion int
	BoardPosition    int
}

// NewNationState returns the starting state for a difficulty: scarce
// indicators on hard, comfortable ones on easy. Hunger always starts at zero.
func NewNationState(d Difficulty) NationState {
	initial := 5
	if d == DifficultyHard {
		initial = 3
	}
	return NationState{
		Economy:          initial,
		Education:        initial,
		Wellbeing:        initial,
		PopularSupport:   initial,
		Hunger:           0,
		MilitaryReligion: initial,
	}
}

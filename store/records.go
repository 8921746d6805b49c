package store

import (
	"time"

	"github.com/republica-game/republica/game"
)

// SessionRecord is one row of game_sessions.
type SessionRecord struct {
	ID                 string
	GameCode           string
	Status             game.Status
	Difficulty         game.Difficulty
	CurrentTurn        int
	CurrentPlayerIndex int
	EndReason          game.EndReason
	EndMessage         string
	CreatorUID         string
	CreatedAt          time.Time
}

// PlayerRecord is one row of players. TurnOrder is nil for observers.
type PlayerRecord struct {
	ID            string
	GameSessionID string
	Name          string
	UserUID       string
	Role          game.Role
	Capital       int
	TurnOrder     *int
	JoinedAt      time.Time
}

// Active reports whether the player takes turns.
func (p PlayerRecord) Active() bool {
	return p.TurnOrder != nil
}

// CardSeed is one catalog membership row for draw bookkeeping.
type CardSeed struct {
	ID   string
	Role game.Role
}

// DrawRecord is one row of session_card_draws.
type DrawRecord struct {
	ID            int64
	GameSessionID string
	CardID        string
	Resolved      bool
	ChosenOption  *int
}

// LogRecord is one row of game_logs.
type LogRecord struct {
	ID            int64
	GameSessionID string
	Turn          int
	PlayerName    string
	PlayerRole    game.Role
	OptionText    string
	Effects       string
	CreatedAt     time.Time
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

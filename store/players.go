package store

import (
	"database/sql"

	"github.com/republica-game/republica/game"
)

const playerColumns = `id, game_session_id, name, user_uid, character_role, capital, turn_order, joined_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (PlayerRecord, error) {
	var rec PlayerRecord
	var turnOrder sql.NullInt64
	var joinedAt int64
	err := row.Scan(
		&rec.ID, &rec.GameSessionID, &rec.Name, &rec.UserUID,
		&rec.Role, &rec.Capital, &turnOrder, &joinedAt,
	)
	if err != nil {
		return PlayerRecord{}, err
	}
	if turnOrder.Valid {
		order := int(turnOrder.Int64)
		rec.TurnOrder = &order
	}
	rec.JoinedAt = fromMillis(joinedAt)
	return rec, nil
}

// InsertPlayer writes a joining player.
func (t *Tx) InsertPlayer(rec PlayerRecord) error {
	var turnOrder sql.NullInt64
	if rec.TurnOrder != nil {
		turnOrder = sql.NullInt64{Int64: int64(*rec.TurnOrder), Valid: true}
	}
	_, err := t.tx.Exec(`
		INSERT INTO players
			(id, game_session_id, name, user_uid, character_role, capital, turn_order, joined_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameSessionID, rec.Name, rec.UserUID,
		rec.Role, rec.Capital, turnOrder, toMillis(rec.JoinedAt),
	)
	return err
}

// PlayerByUID loads the player a stable external identity maps to within a
// session. Returns sql.ErrNoRows when the identity has not joined.
func (t *Tx) PlayerByUID(sessionID, uid string) (PlayerRecord, error) {
	row := t.tx.QueryRow(`
		SELECT `+playerColumns+` FROM players
		WHERE game_session_id = ? AND user_uid = ?`, sessionID, uid)
	return scanPlayer(row)
}

// ActingPlayer loads the active player holding a turn order slot.
func (t *Tx) ActingPlayer(sessionID string, turnOrder int) (PlayerRecord, error) {
	row := t.tx.QueryRow(`
		SELECT `+playerColumns+` FROM players
		WHERE game_session_id = ? AND turn_order = ?`, sessionID, turnOrder)
	return scanPlayer(row)
}

// Players lists every player in the session: active players first in turn
// order, then observers in join order.
func (t *Tx) Players(sessionID string) ([]PlayerRecord, error) {
	rows, err := t.tx.Query(`
		SELECT `+playerColumns+` FROM players
		WHERE game_session_id = ?
		ORDER BY turn_order IS NULL, turn_order, joined_at, id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		rec, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, rec)
	}
	return players, rows.Err()
}

// ActivePlayers lists only the players that take turns, in turn order.
func (t *Tx) ActivePlayers(sessionID string) ([]PlayerRecord, error) {
	rows, err := t.tx.Query(`
		SELECT `+playerColumns+` FROM players
		WHERE game_session_id = ? AND turn_order IS NOT NULL
		ORDER BY turn_order`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		rec, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, rec)
	}
	return players, rows.Err()
}

// ActivePlayerCount recounts the players in the turn rotation. Always
// recomputed from rows, never cached.
func (t *Tx) ActivePlayerCount(sessionID string) (int, error) {
	var count int
	err := t.tx.QueryRow(`
		SELECT COUNT(*) FROM players
		WHERE game_session_id = ? AND turn_order IS NOT NULL`, sessionID,
	).Scan(&count)
	return count, err
}

// HeldRoles lists the roles currently held by active players.
func (t *Tx) HeldRoles(sessionID string) ([]game.Role, error) {
	rows, err := t.tx.Query(`
		SELECT character_role FROM players
		WHERE game_session_id = ? AND turn_order IS NOT NULL`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []game.Role
	for rows.Next() {
		var r game.Role
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// SetCapital stores a player's recomputed capital.
func (t *Tx) SetCapital(playerID string, capital int) error {
	_, err := t.tx.Exec(
		`UPDATE players SET capital = ? WHERE id = ?`, capital, playerID)
	return err
}

// SetRole reassigns a player's character.
func (t *Tx) SetRole(playerID string, role game.Role) error {
	_, err := t.tx.Exec(
		`UPDATE players SET character_role = ? WHERE id = ?`, role, playerID)
	return err
}

// ZeroCapitals resets every player's capital on restart.
func (t *Tx) ZeroCapitals(sessionID string) error {
	_, err := t.tx.Exec(
		`UPDATE players SET capital = 0 WHERE game_session_id = ?`, sessionID)
	return err
}

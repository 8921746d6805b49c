package store

import (
	"github.com/republica-game/republica/game"
)

// InsertSession writes a freshly created session row.
func (t *Tx) InsertSession(rec SessionRecord) error {
	_, err := t.tx.Exec(`
		INSERT INTO game_sessions
			(id, game_code, status, difficulty, current_turn, current_player_index,
			 end_reason, end_message, creator_uid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameCode, rec.Status, rec.Difficulty,
		rec.CurrentTurn, rec.CurrentPlayerIndex,
		rec.EndReason, rec.EndMessage, rec.CreatorUID, toMillis(rec.CreatedAt),
	)
	return err
}

// SessionByCode loads a session row. Returns sql.ErrNoRows when the code is
// unknown.
func (t *Tx) SessionByCode(code string) (SessionRecord, error) {
	var rec SessionRecord
	var createdAt int64
	err := t.tx.QueryRow(`
		SELECT id, game_code, status, difficulty, current_turn, current_player_index,
		       end_reason, end_message, creator_uid, created_at
		FROM game_sessions WHERE game_code = ?`, code,
	).Scan(
		&rec.ID, &rec.GameCode, &rec.Status, &rec.Difficulty,
		&rec.CurrentTurn, &rec.CurrentPlayerIndex,
		&rec.EndReason, &rec.EndMessage, &rec.CreatorUID, &createdAt,
	)
	if err != nil {
		return SessionRecord{}, err
	}
	rec.CreatedAt = fromMillis(createdAt)
	return rec, nil
}

// CodeTaken reports whether a game code is already in use.
func (t *Tx) CodeTaken(code string) (bool, error) {
	var count int
	if err := t.tx.QueryRow(
		`SELECT COUNT(*) FROM game_sessions WHERE game_code = ?`, code,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetTurn advances the turn pointer.
func (t *Tx) SetTurn(sessionID string, playerIndex, turn int) error {
	_, err := t.tx.Exec(`
		UPDATE game_sessions SET current_player_index = ?, current_turn = ?
		WHERE id = ?`, playerIndex, turn, sessionID)
	return err
}

// SetStatus moves the session through its lifecycle.
func (t *Tx) SetStatus(sessionID string, status game.Status) error {
	_, err := t.tx.Exec(
		`UPDATE game_sessions SET status = ? WHERE id = ?`, status, sessionID)
	return err
}

// FinishSession marks the session over, recording why.
func (t *Tx) FinishSession(sessionID string, reason game.EndReason, message string) error {
	_, err := t.tx.Exec(`
		UPDATE game_sessions SET status = ?, end_reason = ?, end_message = ?
		WHERE id = ?`, game.StatusFinished, reason, message, sessionID)
	return err
}

// ResetSession returns a session to the waiting room with a clean slate.
func (t *Tx) ResetSession(sessionID string) error {
	_, err := t.tx.Exec(`
		UPDATE game_sessions
		SET status = ?, current_turn = 1, current_player_index = 0,
		    end_reason = '', end_message = ''
		WHERE id = ?`, game.StatusWaiting, sessionID)
	return err
}

package store

import (
	"context"
	"database/sql"

	"github.com/republica-game/republica/game"
)

// SeedCatalog upserts the card catalog's membership rows. Run once at boot;
// re-running with the same catalog is a no-op.
func (s *Store) SeedCatalog(ctx context.Context, seeds []CardSeed) error {
	return s.Transact(ctx, func(t *Tx) error {
		for _, seed := range seeds {
			if _, err := t.tx.Exec(`
				INSERT INTO decision_cards (id, character_role) VALUES (?, ?)
				ON CONFLICT(id) DO UPDATE SET character_role = excluded.character_role`,
				seed.ID, seed.Role,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// UnresolvedDraw loads the single open draw for a session. Returns
// sql.ErrNoRows when no card is waiting on a decision.
func (t *Tx) UnresolvedDraw(sessionID string) (DrawRecord, error) {
	var rec DrawRecord
	var resolved int
	var chosen sql.NullInt64
	err := t.tx.QueryRow(`
		SELECT id, game_session_id, decision_card_id, is_resolved, chosen_option
		FROM session_card_draws
		WHERE game_session_id = ? AND is_resolved = 0`, sessionID,
	).Scan(&rec.ID, &rec.GameSessionID, &rec.CardID, &resolved, &chosen)
	if err != nil {
		return DrawRecord{}, err
	}
	rec.Resolved = resolved != 0
	if chosen.Valid {
		option := int(chosen.Int64)
		rec.ChosenOption = &option
	}
	return rec, nil
}

// InsertDraw records that a card entered the session.
func (t *Tx) InsertDraw(sessionID, cardID string) error {
	_, err := t.tx.Exec(`
		INSERT INTO session_card_draws (game_session_id, decision_card_id, is_resolved)
		VALUES (?, ?, 0)`, sessionID, cardID)
	return err
}

// ResolveDraw marks a draw decided. Happens exactly once per draw.
func (t *Tx) ResolveDraw(drawID int64, chosenOption int) error {
	_, err := t.tx.Exec(`
		UPDATE session_card_draws SET is_resolved = 1, chosen_option = ?
		WHERE id = ?`, chosenOption, drawID)
	return err
}

// RandomEligibleCard picks a uniformly random card that matches the role (or
// is unscoped) and has not been drawn in this session. Returns sql.ErrNoRows
// when the pool is empty.
func (t *Tx) RandomEligibleCard(sessionID string, role game.Role) (string, error) {
	var id string
	err := t.tx.QueryRow(`
		SELECT id FROM decision_cards
		WHERE (character_role = ? OR character_role = '')
		  AND id NOT IN (
			SELECT decision_card_id FROM session_card_draws WHERE game_session_id = ?
		  )
		ORDER BY RANDOM() LIMIT 1`, role, sessionID,
	).Scan(&id)
	return id, err
}

// RandomUnscopedCard is the first fallback: any undrawn card open to all roles.
func (t *Tx) RandomUnscopedCard(sessionID string) (string, error) {
	var id string
	err := t.tx.QueryRow(`
		SELECT id FROM decision_cards
		WHERE character_role = ''
		  AND id NOT IN (
			SELECT decision_card_id FROM session_card_draws WHERE game_session_id = ?
		  )
		ORDER BY RANDOM() LIMIT 1`, sessionID,
	).Scan(&id)
	return id, err
}

// DeleteDrawsForRole forgets a role's drawn-card history in this session so
// its pool can be redrawn once exhausted.
func (t *Tx) DeleteDrawsForRole(sessionID string, role game.Role) error {
	_, err := t.tx.Exec(`
		DELETE FROM session_card_draws
		WHERE game_session_id = ?
		  AND decision_card_id IN (
			SELECT id FROM decision_cards WHERE character_role = ? OR character_role = ''
		  )`, sessionID, role)
	return err
}

// DeleteDraws clears every draw for a session on restart.
func (t *Tx) DeleteDraws(sessionID string) error {
	_, err := t.tx.Exec(
		`DELETE FROM session_card_draws WHERE game_session_id = ?`, sessionID)
	return err
}

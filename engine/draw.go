package engine

import (
	"database/sql"
	"errors"

	"github.com/republica-game/republica/game"
	"github.com/republica-game/republica/store"
)

// drawCard picks the next card for a role. The pool of undrawn cards scoped
// to the role or unscoped is tried first, then undrawn unscoped cards, then
// the role's draw history is wiped and the full pool retried. Only when all
// of that comes up empty is the deck considered exhausted.
func drawCard(tx *store.Tx, sessionID string, role game.Role) (string, error) {
	id, err := tx.RandomEligibleCard(sessionID, role)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	id, err = tx.RandomUnscopedCard(sessionID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	if err := tx.DeleteDrawsForRole(sessionID, role); err != nil {
		return "", err
	}
	id, err = tx.RandomEligibleCard(sessionID, role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrDeckExhausted
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

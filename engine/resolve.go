package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/republica-game/republica/deck"
	"github.com/republica-game/republica/game"
	"github.com/republica-game/republica/store"
)

// Decision is what a resolved turn reports back to the acting player.
type Decision struct {
	Status    game.Status    `json:"status"`
	EndReason game.EndReason `json:"end_reason,omitempty"`
	Message   string         `json:"message,omitempty"`
	Nation    NationView     `json:"nation"`
	Capital   int            `json:"capital"`
}

// ResolveDecision applies the acting player's chosen option to the nation,
// logs it, decides whether the game ended and, if not, hands the turn to the
// next player and draws their card. The whole thing happens in a single
// transaction; any failure rolls back every effect.
func (e *Engine) ResolveDecision(ctx context.Context, code, uid string, option int) (Decision, error) {
	var out Decision
	err := e.store.Transact(ctx, func(tx *store.Tx) error {
		session, err := tx.SessionByCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownSession
		}
		if err != nil {
			return err
		}

		nation, err := tx.Nation(session.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: session has no nation state", ErrNotFound)
		}
		if err != nil {
			return err
		}

		acting, err := tx.ActingPlayer(session.ID, session.CurrentPlayerIndex)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no player holds the current turn", ErrNotFound)
		}
		if err != nil {
			return err
		}

		if session.Status != game.StatusInProgress {
			return ErrNotInProgress
		}
		if acting.UserUID != uid {
			return ErrNotYourTurn
		}

		draw, err := tx.UnresolvedDraw(session.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoActiveCard
		}
		if err != nil {
			return err
		}

		card, err := deck.ByID(draw.CardID)
		if err != nil {
			return err
		}
		if option < 0 || option >= len(card.Options) {
			return ErrInvalidOption
		}
		chosen := card.Options[option]

		newNation, newCapital := game.ApplyEffects(nation, acting.Capital, chosen.Effects, session.Difficulty)

		opp, err := opportunistStanding(tx, session.ID, acting, newCapital)
		if err != nil {
			return err
		}
		outcome := game.Evaluate(newNation, opp)

		err = tx.InsertLog(store.LogRecord{
			GameSessionID: session.ID,
			Turn:          session.CurrentTurn,
			PlayerName:    acting.Name,
			PlayerRole:    acting.Role,
			OptionText:    chosen.Text,
			Effects:       chosen.Effects.String(),
			CreatedAt:     time.Now(),
		})
		if err != nil {
			return err
		}

		if err := tx.UpdateNation(session.ID, newNation); err != nil {
			return err
		}
		if err := tx.AppendEducation(session.ID, newNation.Education); err != nil {
			return err
		}
		if err := tx.SetCapital(acting.ID, newCapital); err != nil {
			return err
		}
		if err := tx.ResolveDraw(draw.ID, option); err != nil {
			return err
		}

		status := session.Status
		if outcome.Finished {
			status = game.StatusFinished
			if err := tx.FinishSession(session.ID, outcome.Reason, outcome.Message); err != nil {
				return err
			}
		} else {
			if err := advanceTurn(tx, session); err != nil {
				return err
			}
		}

		out = Decision{
			Status:    status,
			EndReason: outcome.Reason,
			Message:   outcome.Message,
			Nation:    nationView(newNation),
			Capital:   newCapital,
		}
		return nil
	})
	return out, err
}

// opportunistStanding reports the Oportunista's capital as of this decision,
// or nil when nobody holds the role. When the acting player is the
// opportunist their freshly computed capital is used; the stored row is
// stale inside the transaction.
func opportunistStanding(tx *store.Tx, sessionID string, acting store.PlayerRecord, actingCapital int) (*game.OpportunistStanding, error) {
	if acting.Role == game.RoleOportunista {
		return &game.OpportunistStanding{Name: acting.Name, Capital: actingCapital}, nil
	}

	players, err := tx.ActivePlayers(sessionID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.Role == game.RoleOportunista {
			return &game.OpportunistStanding{Name: p.Name, Capital: p.Capital}, nil
		}
	}
	return nil, nil
}

// advanceTurn hands play to the next active player, bumping the turn counter
// on wraparound, and draws that player's card.
func advanceTurn(tx *store.Tx, session store.SessionRecord) error {
	count, err := tx.ActivePlayerCount(session.ID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoActivePlayers
	}

	nextIndex := (session.CurrentPlayerIndex + 1) % count
	turn := session.CurrentTurn
	if nextIndex == 0 {
		turn++
	}
	if err := tx.SetTurn(session.ID, nextIndex, turn); err != nil {
		return err
	}

	next, err := tx.ActingPlayer(session.ID, nextIndex)
	if err != nil {
		return err
	}

	cardID, err := drawCard(tx, session.ID, next.Role)
	if err != nil {
		return err
	}
	return tx.InsertDraw(session.ID, cardID)
}

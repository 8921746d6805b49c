package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/republica-game/republica/deck"
	"github.com/republica-game/republica/game"
	"github.com/republica-game/republica/store"
)

func (e *Engine) pickRole(held []game.Role) game.Role {
	e.mu.Lock()
	defer e.mu.Unlock()
	return deck.PickRole(e.rand, held)
}

// CreateSession opens a new room, registers its creator and initialises the
// shared nation state for the given difficulty.
func (e *Engine) CreateSession(ctx context.Context, creatorUID, name string, difficulty game.Difficulty, observer bool) (Created, error) {
	if creatorUID == "" || name == "" {
		return Created{}, fmt.Errorf("%w: user id and player name are required", ErrInvalidInput)
	}

	var created Created
	err := e.store.Transact(ctx, func(tx *store.Tx) error {
		code, err := e.freeGameCode(tx)
		if err != nil {
			return err
		}

		session := store.SessionRecord{
			ID:          uuid.NewV4().String(),
			GameCode:    code,
			Status:      game.StatusWaiting,
			Difficulty:  difficulty,
			CurrentTurn: 1,
			CreatorUID:  creatorUID,
			CreatedAt:   time.Now(),
		}
		if err := tx.InsertSession(session); err != nil {
			return err
		}

		nation := game.NewNationState(difficulty)
		if err := tx.InsertNation(session.ID, nation); err != nil {
			return err
		}
		if err := tx.AppendEducation(session.ID, nation.Education); err != nil {
			return err
		}

		creator := store.PlayerRecord{
			ID:            uuid.NewV4().String(),
			GameSessionID: session.ID,
			Name:          name,
			UserUID:       creatorUID,
			Role:          game.RoleObservador,
			Capital:       creatorStartCapital,
			JoinedAt:      time.Now(),
		}
		if !observer {
			first := 0
			creator.TurnOrder = &first
			creator.Role = e.pickRole(nil)
		}
		if err := tx.InsertPlayer(creator); err != nil {
			return err
		}

		created = Created{GameCode: code, SessionID: session.ID}
		return nil
	})
	return created, err
}

// freeGameCode generates a short code not held by any session. After a few
// collisions it falls back to a longer code rather than looping forever.
func (e *Engine) freeGameCode(tx *store.Tx) (string, error) {
	for i := 0; i < gameCodeAttempts; i++ {
		code := e.newGameCode(gameCodeLength)
		taken, err := tx.CodeTaken(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	code := e.newGameCode(gameCodeLongLength)
	taken, err := tx.CodeTaken(code)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("could not find a free game code for %q", code)
	}
	return code, nil
}

// JoinSession adds a player to a waiting room. Joining with an identity that
// is already in the room succeeds without changing anything, so reconnecting
// clients can re-join mid-game.
func (e *Engine) JoinSession(ctx context.Context, code, uid, name string, observer bool) error {
	if uid == "" || name == "" {
		return fmt.Errorf("%w: user id and player name are required", ErrInvalidInput)
	}

	return e.store.Transact(ctx, func(tx *store.Tx) error {
		session, err := tx.SessionByCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownSession
		}
		if err != nil {
			return err
		}

		if _, err := tx.PlayerByUID(session.ID, uid); err == nil {
			return nil
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if session.Status != game.StatusWaiting {
			return ErrAlreadyStarted
		}

		player := store.PlayerRecord{
			ID:            uuid.NewV4().String(),
			GameSessionID: session.ID,
			Name:          name,
			UserUID:       uid,
			Role:          game.RoleObservador,
			Capital:       joinerStartCapital,
			JoinedAt:      time.Now(),
		}
		if !observer {
			count, err := tx.ActivePlayerCount(session.ID)
			if err != nil {
				return err
			}
			if count >= game.MaxActivePlayers {
				return ErrRoomFull
			}

			held, err := tx.HeldRoles(session.ID)
			if err != nil {
				return err
			}
			player.TurnOrder = &count
			player.Role = e.pickRole(held)
		}

		return tx.InsertPlayer(player)
	})
}

// StartSession moves a waiting room into play: it may secretly reassign one
// active player to the Oportunista role and draws the first player's card.
func (e *Engine) StartSession(ctx context.Context, code string) error {
	return e.store.Transact(ctx, func(tx *store.Tx) error {
		session, err := tx.SessionByCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownSession
		}
		if err != nil {
			return err
		}

		if session.Status != game.StatusWaiting {
			return ErrAlreadyStarted
		}

		active, err := tx.ActivePlayers(session.ID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return ErrNoActivePlayers
		}

		if e.roll() < game.OpportunistChance {
			chosen := active[e.intn(len(active))]
			if err := tx.SetRole(chosen.ID, game.RoleOportunista); err != nil {
				return err
			}
			if chosen.TurnOrder != nil && *chosen.TurnOrder == 0 {
				active[0].Role = game.RoleOportunista
			}
		}

		if err := tx.SetStatus(session.ID, game.StatusInProgress); err != nil {
			return err
		}

		cardID, err := drawCard(tx, session.ID, active[0].Role)
		if err != nil {
			return err
		}
		return tx.InsertDraw(session.ID, cardID)
	})
}

// RestartSession puts a finished (or stuck) room back into the waiting state
// with a fresh nation, empty log and no draw history. Only the room's creator
// may do this.
func (e *Engine) RestartSession(ctx context.Context, code, uid string) error {
	return e.store.Transact(ctx, func(tx *store.Tx) error {
		session, err := tx.SessionByCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownSession
		}
		if err != nil {
			return err
		}

		if session.CreatorUID != uid {
			return ErrNotCreator
		}

		if err := tx.ResetSession(session.ID); err != nil {
			return err
		}

		// The secret role only enters play through the start roll. A holder
		// from the previous game goes back to a regular character, otherwise
		// the next roll could seat a second Oportunista.
		players, err := tx.ActivePlayers(session.ID)
		if err != nil {
			return err
		}
		held := []game.Role{}
		for _, p := range players {
			if p.Role != game.RoleOportunista {
				held = append(held, p.Role)
			}
		}
		for _, p := range players {
			if p.Role != game.RoleOportunista {
				continue
			}
			role := e.pickRole(held)
			if err := tx.SetRole(p.ID, role); err != nil {
				return err
			}
			held = append(held, role)
		}

		nation := game.NewNationState(session.Difficulty)
		if err := tx.UpdateNation(session.ID, nation); err != nil {
			return err
		}
		if err := tx.DeleteEducationHistory(session.ID); err != nil {
			return err
		}
		if err := tx.AppendEducation(session.ID, nation.Education); err != nil {
			return err
		}

		if err := tx.ZeroCapitals(session.ID); err != nil {
			return err
		}
		if err := tx.DeleteDraws(session.ID); err != nil {
			return err
		}
		return tx.DeleteLogs(session.ID)
	})
}

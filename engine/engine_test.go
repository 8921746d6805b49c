package engine

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/republica-game/republica/deck"
	"github.com/republica-game/republica/game"
	utils "github.com/republica-game/republica/internal"
	"github.com/republica-game/republica/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	utils.AssertNoError(t, err)
	t.Cleanup(func() { st.Close() })

	seeds := []store.CardSeed{}
	for _, s := range deck.Seeds() {
		seeds = append(seeds, store.CardSeed{ID: s.ID, Role: s.Role})
	}
	utils.AssertNoError(t, st.SeedCatalog(context.Background(), seeds))

	eng, err := New(Opts{Store: st, Rand: rand.New(rand.NewSource(1))})
	utils.AssertNoError(t, err)

	return eng, st
}

func createRoom(t *testing.T, eng *Engine, d game.Difficulty) Created {
	t.Helper()

	created, err := eng.CreateSession(context.Background(), "uid-dilma", "Dilma", d, false)
	utils.AssertNoError(t, err)

	return created
}

// doctor runs fn in a transaction so tests can set up exact game states.
func doctor(t *testing.T, st *store.Store, fn func(tx *store.Tx) error) {
	t.Helper()
	utils.AssertNoError(t, st.Transact(context.Background(), fn))
}

// forceCard swaps the session's unresolved draw for a known catalog card so a
// decision's effects are predictable.
func forceCard(t *testing.T, st *store.Store, sessionID, cardID string) {
	t.Helper()
	doctor(t, st, func(tx *store.Tx) error {
		if err := tx.DeleteDraws(sessionID); err != nil {
			return err
		}
		return tx.InsertDraw(sessionID, cardID)
	})
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()

	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}

func snapshot(t *testing.T, eng *Engine, code string) Snapshot {
	t.Helper()

	snap, err := eng.FullState(context.Background(), code)
	utils.AssertNoError(t, err)

	return snap
}

func TestNew(t *testing.T) {
	t.Run("requires a store", func(t *testing.T) {
		_, err := New(Opts{})
		utils.AssertErrored(t, err)
	})

	t.Run("seeds its own randomness when none given", func(t *testing.T) {
		st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
		utils.AssertNoError(t, err)
		t.Cleanup(func() { st.Close() })

		eng, err := New(Opts{Store: st})
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, eng.rand != nil)
	})
}

func TestDrawCardFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausted role history is reset and redrawn", func(t *testing.T) {
		st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
		utils.AssertNoError(t, err)
		t.Cleanup(func() { st.Close() })

		seeds := []store.CardSeed{{ID: "merenda-escolar"}}
		utils.AssertNoError(t, st.SeedCatalog(ctx, seeds))

		session := insertBareSession(t, st, "AAAAAA")

		doctor(t, st, func(tx *store.Tx) error {
			if err := tx.InsertDraw(session, "merenda-escolar"); err != nil {
				return err
			}
			draw, err := tx.UnresolvedDraw(session)
			if err != nil {
				return err
			}
			return tx.ResolveDraw(draw.ID, 0)
		})

		doctor(t, st, func(tx *store.Tx) error {
			id, err := drawCard(tx, session, game.RolePresidente)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, id, "merenda-escolar")
			return nil
		})
	})

	t.Run("empty catalog is a hard failure", func(t *testing.T) {
		st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
		utils.AssertNoError(t, err)
		t.Cleanup(func() { st.Close() })

		session := insertBareSession(t, st, "BBBBBB")

		err = st.Transact(ctx, func(tx *store.Tx) error {
			_, err := drawCard(tx, session, game.RolePresidente)
			return err
		})
		assertErrorIs(t, err, ErrDeckExhausted)
	})
}

func insertBareSession(t *testing.T, st *store.Store, code string) string {
	t.Helper()

	rec := store.SessionRecord{
		ID:          "session-" + code,
		GameCode:    code,
		Status:      game.StatusInProgress,
		Difficulty:  game.DifficultyEasy,
		CurrentTurn: 1,
		CreatorUID:  "uid-creator",
	}
	doctor(t, st, func(tx *store.Tx) error {
		return tx.InsertSession(rec)
	})

	return rec.ID
}

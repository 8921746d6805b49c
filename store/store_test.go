package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/republica-game/republica/game"
	utils "github.com/republica-game/republica/internal"
	"github.com/stretchr/testify/assert"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	utils.AssertNoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func insertSession(t *testing.T, s *Store, code string) SessionRecord {
	t.Helper()

	rec := SessionRecord{
		ID:          "session-" + code,
		GameCode:    code,
		Status:      game.StatusWaiting,
		Difficulty:  game.DifficultyEasy,
		CurrentTurn: 1,
		CreatorUID:  "uid-creator",
		CreatedAt:   time.Now(),
	}
	err := s.Transact(context.Background(), func(tx *Tx) error {
		return tx.InsertSession(rec)
	})
	utils.AssertNoError(t, err)

	return rec
}

func intptr(v int) *int { return &v }

func TestOpen(t *testing.T) {
	t.Run("creates the schema", func(t *testing.T) {
		s := testStore(t)
		insertSession(t, s, "AAAAAA")
	})

	t.Run("reopening applies migrations at most once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")

		s, err := Open(path)
		utils.AssertNoError(t, err)
		utils.AssertNoError(t, s.Close())

		s, err = Open(path)
		utils.AssertNoError(t, err)
		utils.AssertNoError(t, s.Close())
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := Open("")
		utils.AssertErrored(t, err)
	})
}

func TestTransactRollback(t *testing.T) {
	s := testStore(t)
	boom := errors.New("boom")

	err := s.Transact(context.Background(), func(tx *Tx) error {
		if err := tx.InsertSession(SessionRecord{
			ID: "s1", GameCode: "ROLLBK", Status: game.StatusWaiting,
			Difficulty: game.DifficultyEasy, CurrentTurn: 1,
			CreatorUID: "uid", CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	err = s.Transact(context.Background(), func(tx *Tx) error {
		_, err := tx.SessionByCode("ROLLBK")
		return err
	})
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestSessions(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	t.Run("insert and load by code", func(t *testing.T) {
		want := insertSession(t, s, "XJ3K9M")

		err := s.Transact(ctx, func(tx *Tx) error {
			got, err := tx.SessionByCode("XJ3K9M")
			if err != nil {
				return err
			}
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, game.StatusWaiting, got.Status)
			assert.Equal(t, 1, got.CurrentTurn)

			taken, err := tx.CodeTaken("XJ3K9M")
			utils.AssertNoError(t, err)
			utils.AssertTrue(t, taken)

			free, err := tx.CodeTaken("ZZZZZZ")
			utils.AssertNoError(t, err)
			assert.False(t, free)
			return nil
		})
		utils.AssertNoError(t, err)
	})

	t.Run("duplicate codes are rejected", func(t *testing.T) {
		insertSession(t, s, "DUPQQQ")
		err := s.Transact(ctx, func(tx *Tx) error {
			return tx.InsertSession(SessionRecord{
				ID: "other", GameCode: "DUPQQQ", Status: game.StatusWaiting,
				Difficulty: game.DifficultyEasy, CurrentTurn: 1,
				CreatorUID: "uid", CreatedAt: time.Now(),
			})
		})
		utils.AssertErrored(t, err)
	})

	t.Run("finish and reset", func(t *testing.T) {
		rec := insertSession(t, s, "FINISH")

		err := s.Transact(ctx, func(tx *Tx) error {
			if err := tx.FinishSession(rec.ID, game.EndCollapse, "acabou"); err != nil {
				return err
			}
			got, err := tx.SessionByCode("FINISH")
			if err != nil {
				return err
			}
			assert.Equal(t, game.StatusFinished, got.Status)
			assert.Equal(t, game.EndCollapse, got.EndReason)
			assert.Equal(t, "acabou", got.EndMessage)

			if err := tx.ResetSession(rec.ID); err != nil {
				return err
			}
			got, err = tx.SessionByCode("FINISH")
			if err != nil {
				return err
			}
			assert.Equal(t, game.StatusWaiting, got.Status)
			assert.Equal(t, game.EndReason(""), got.EndReason)
			assert.Equal(t, 1, got.CurrentTurn)
			assert.Equal(t, 0, got.CurrentPlayerIndex)
			return nil
		})
		utils.AssertNoError(t, err)
	})
}

func TestPlayers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	session := insertSession(t, s, "PLAYRS")

	base := time.Now()
	seed := []PlayerRecord{
		{ID: "p1", GameSessionID: session.ID, Name: "Ana", UserUID: "uid-1",
			Role: game.RolePresidente, Capital: 50, TurnOrder: intptr(0), JoinedAt: base},
		{ID: "p2", GameSessionID: session.ID, Name: "Bruno", UserUID: "uid-2",
			Role: game.RoleSenadora, Capital: 10, TurnOrder: intptr(1), JoinedAt: base.Add(time.Second)},
		{ID: "p3", GameSessionID: session.ID, Name: "Clara", UserUID: "uid-3",
			Role: game.RoleObservador, JoinedAt: base.Add(2 * time.Second)},
	}

	err := s.Transact(ctx, func(tx *Tx) error {
		for _, p := range seed {
			if err := tx.InsertPlayer(p); err != nil {
				return err
			}
		}
		return nil
	})
	utils.AssertNoError(t, err)

	err = s.Transact(ctx, func(tx *Tx) error {
		t.Run("active players come first, observers last", func(t *testing.T) {
			players, err := tx.Players(session.ID)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, len(players), 3)
			assert.Equal(t, "Ana", players[0].Name)
			assert.Equal(t, "Bruno", players[1].Name)
			assert.Equal(t, "Clara", players[2].Name)
			assert.False(t, players[2].Active())
		})

		t.Run("acting player by turn order", func(t *testing.T) {
			acting, err := tx.ActingPlayer(session.ID, 1)
			utils.AssertNoError(t, err)
			assert.Equal(t, "Bruno", acting.Name)

			_, err = tx.ActingPlayer(session.ID, 5)
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})

		t.Run("observers are excluded from the rotation count", func(t *testing.T) {
			count, err := tx.ActivePlayerCount(session.ID)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, count, 2)

			active, err := tx.ActivePlayers(session.ID)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, len(active), 2)
		})

		t.Run("held roles ignore observers", func(t *testing.T) {
			roles, err := tx.HeldRoles(session.ID)
			utils.AssertNoError(t, err)
			utils.AssertDeepEqual(t, roles, []game.Role{game.RolePresidente, game.RoleSenadora})
		})

		t.Run("lookup by external identity", func(t *testing.T) {
			p, err := tx.PlayerByUID(session.ID, "uid-2")
			utils.AssertNoError(t, err)
			assert.Equal(t, "Bruno", p.Name)

			_, err = tx.PlayerByUID(session.ID, "uid-missing")
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})
		return nil
	})
	utils.AssertNoError(t, err)

	t.Run("duplicate identity in one session is rejected", func(t *testing.T) {
		err := s.Transact(ctx, func(tx *Tx) error {
			return tx.InsertPlayer(PlayerRecord{
				ID: "p4", GameSessionID: session.ID, Name: "Outra Ana",
				UserUID: "uid-1", Role: game.RolePolitico, JoinedAt: time.Now(),
			})
		})
		utils.AssertErrored(t, err)
	})

	t.Run("capital and role updates", func(t *testing.T) {
		err := s.Transact(ctx, func(tx *Tx) error {
			if err := tx.SetCapital("p1", 75); err != nil {
				return err
			}
			if err := tx.SetRole("p2", game.RoleOportunista); err != nil {
				return err
			}
			if err := tx.ZeroCapitals(session.ID); err != nil {
				return err
			}
			p, err := tx.PlayerByUID(session.ID, "uid-2")
			if err != nil {
				return err
			}
			assert.Equal(t, game.RoleOportunista, p.Role)
			assert.Equal(t, 0, p.Capital)
			return nil
		})
		utils.AssertNoError(t, err)
	})
}

func TestNation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	session := insertSession(t, s, "NATION")

	err := s.Transact(ctx, func(tx *Tx) error {
		initial := game.NewNationState(game.DifficultyHard)
		if err := tx.InsertNation(session.ID, initial); err != nil {
			return err
		}
		if err := tx.AppendEducation(session.ID, initial.Education); err != nil {
			return err
		}

		got, err := tx.Nation(session.ID)
		if err != nil {
			return err
		}
		utils.AssertDeepEqual(t, got, initial)

		got.Economy = 9
		got.BoardPosition = 12
		if err := tx.UpdateNation(session.ID, got); err != nil {
			return err
		}
		if err := tx.AppendEducation(session.ID, 4); err != nil {
			return err
		}

		reread, err := tx.Nation(session.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, 9, reread.Economy)
		assert.Equal(t, 12, reread.BoardPosition)

		history, err := tx.EducationHistory(session.ID)
		if err != nil {
			return err
		}
		utils.AssertDeepEqual(t, history, []int{3, 4})

		if err := tx.DeleteEducationHistory(session.ID); err != nil {
			return err
		}
		history, err = tx.EducationHistory(session.ID)
		if err != nil {
			return err
		}
		utils.AssertEqual(t, len(history), 0)
		return nil
	})
	utils.AssertNoError(t, err)
}

func TestCardDraws(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	session := insertSession(t, s, "CARDSS")

	seeds := []CardSeed{
		{ID: "c-presidente", Role: game.RolePresidente},
		{ID: "c-senadora", Role: game.RoleSenadora},
		{ID: "c-livre-1", Role: ""},
		{ID: "c-livre-2", Role: ""},
	}
	utils.AssertNoError(t, s.SeedCatalog(ctx, seeds))

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		utils.AssertNoError(t, s.SeedCatalog(ctx, seeds))
	})

	err := s.Transact(ctx, func(tx *Tx) error {
		t.Run("eligible pool respects role scope and draw history", func(t *testing.T) {
			drawn := map[string]bool{}
			// the presidente pool has three cards: its own plus the two unscoped
			for i := 0; i < 3; i++ {
				id, err := tx.RandomEligibleCard(session.ID, game.RolePresidente)
				utils.AssertNoError(t, err)
				assert.NotEqual(t, "c-senadora", id)
				assert.False(t, drawn[id])
				drawn[id] = true
				utils.AssertNoError(t, tx.InsertDraw(session.ID, id))
				resolveOpenDraw(t, tx, session.ID)
			}

			_, err := tx.RandomEligibleCard(session.ID, game.RolePresidente)
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})

		t.Run("unscoped fallback ignores role cards", func(t *testing.T) {
			_, err := tx.RandomUnscopedCard(session.ID)
			assert.True(t, errors.Is(err, sql.ErrNoRows))
		})

		t.Run("resetting a role's history reopens its pool", func(t *testing.T) {
			if err := tx.DeleteDrawsForRole(session.ID, game.RolePresidente); err != nil {
				t.Fatal(err)
			}
			id, err := tx.RandomEligibleCard(session.ID, game.RolePresidente)
			utils.AssertNoError(t, err)
			utils.AssertNotEmptyString(t, id)
		})
		return nil
	})
	utils.AssertNoError(t, err)

	t.Run("at most one unresolved draw", func(t *testing.T) {
		err := s.Transact(ctx, func(tx *Tx) error {
			if err := tx.InsertDraw(session.ID, "c-senadora"); err != nil {
				return err
			}
			draw, err := tx.UnresolvedDraw(session.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, "c-senadora", draw.CardID)
			assert.False(t, draw.Resolved)

			if err := tx.ResolveDraw(draw.ID, 1); err != nil {
				return err
			}
			_, err = tx.UnresolvedDraw(session.ID)
			assert.True(t, errors.Is(err, sql.ErrNoRows))
			return nil
		})
		utils.AssertNoError(t, err)
	})
}

func resolveOpenDraw(t *testing.T, tx *Tx, sessionID string) {
	t.Helper()

	draw, err := tx.UnresolvedDraw(sessionID)
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, tx.ResolveDraw(draw.ID, 0))
}

func TestLogs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	session := insertSession(t, s, "LOGENT")

	err := s.Transact(ctx, func(tx *Tx) error {
		for i, text := range []string{"primeira", "segunda", "terceira"} {
			if err := tx.InsertLog(LogRecord{
				GameSessionID: session.ID,
				Turn:          i + 1,
				PlayerName:    "Ana",
				PlayerRole:    game.RolePresidente,
				OptionText:    text,
				Effects:       "economy: +1",
				CreatedAt:     time.Now(),
			}); err != nil {
				return err
			}
		}

		logs, err := tx.Logs(session.ID)
		if err != nil {
			return err
		}
		utils.AssertEqual(t, len(logs), 3)
		assert.Equal(t, "terceira", logs[0].OptionText)
		assert.Equal(t, "primeira", logs[2].OptionText)

		if err := tx.DeleteLogs(session.ID); err != nil {
			return err
		}
		logs, err = tx.Logs(session.ID)
		if err != nil {
			return err
		}
		utils.AssertEqual(t, len(logs), 0)
		return nil
	})
	utils.AssertNoError(t, err)
}

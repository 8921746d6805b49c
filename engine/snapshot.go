package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/republica-game/republica/deck"
	"github.com/republica-game/republica/game"
	"github.com/republica-game/republica/store"
)

// Created identifies a freshly opened room.
type Created struct {
	GameCode  string `json:"game_code"`
	SessionID string `json:"session_id"`
}

// Snapshot is the full read-only projection of a session.
type Snapshot struct {
	GameCode           string          `json:"game_code"`
	Status             game.Status     `json:"status"`
	Difficulty         game.Difficulty `json:"difficulty"`
	CurrentTurn        int             `json:"current_turn"`
	CurrentPlayerIndex int             `json:"current_player_index"`
	EndReason          game.EndReason  `json:"end_reason,omitempty"`
	EndMessage         string          `json:"end_message,omitempty"`
	Nation             NationView      `json:"nation"`
	EducationHistory   []int           `json:"education_history"`
	Players            []PlayerView    `json:"players"`
	Card               *CardView       `json:"card,omitempty"`
	Logs               []LogView       `json:"logs"`
}

type NationView struct {
	Economy          int `json:"economy"`
	Education        int `json:"education"`
	Wellbeing        int `json:"wellbeing"`
	PopularSupport   int `json:"popular_support"`
	Hunger           int `json:"hunger"`
	MilitaryReligion int `json:"military_religion"`
	BoardPosition    int `json:"board_position"`
}

type PlayerView struct {
	Name      string    `json:"name"`
	Role      game.Role `json:"role"`
	Capital   int       `json:"capital"`
	TurnOrder *int      `json:"turn_order"`
}

type CardView struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Dilemma string       `json:"dilemma"`
	Role    game.Role    `json:"role,omitempty"`
	Options []OptionView `json:"options"`
}

type OptionView struct {
	Text    string       `json:"text"`
	Effects []EffectView `json:"effects"`
}

type EffectView struct {
	Key   game.EffectKey `json:"key"`
	Delta int            `json:"delta"`
}

type LogView struct {
	Turn       int       `json:"turn"`
	PlayerName string    `json:"player_name"`
	PlayerRole game.Role `json:"player_role"`
	OptionText string    `json:"option_text"`
	Effects    string    `json:"effects"`
	CreatedAt  time.Time `json:"created_at"`
}

func nationView(n game.NationState) NationView {
	return NationView{
		Economy:          n.Economy,
		Education:        n.Education,
		Wellbeing:        n.Wellbeing,
		PopularSupport:   n.PopularSupport,
		Hunger:           n.Hunger,
		MilitaryReligion: n.MilitaryReligion,
		BoardPosition:    n.BoardPosition,
	}
}

// FullState assembles the whole visible state of a session: metadata, nation
// with its education trend, every player, the card waiting to be resolved and
// the decision log, newest first.
func (e *Engine) FullState(ctx context.Context, code string) (Snapshot, error) {
	var snap Snapshot
	err := e.store.Transact(ctx, func(tx *store.Tx) error {
		session, err := tx.SessionByCode(code)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownSession
		}
		if err != nil {
			return err
		}

		nation, err := tx.Nation(session.ID)
		if err != nil {
			return err
		}
		history, err := tx.EducationHistory(session.ID)
		if err != nil {
			return err
		}
		players, err := tx.Players(session.ID)
		if err != nil {
			return err
		}
		logs, err := tx.Logs(session.ID)
		if err != nil {
			return err
		}

		snap = Snapshot{
			GameCode:           session.GameCode,
			Status:             session.Status,
			Difficulty:         session.Difficulty,
			CurrentTurn:        session.CurrentTurn,
			CurrentPlayerIndex: session.CurrentPlayerIndex,
			EndReason:          session.EndReason,
			EndMessage:         session.EndMessage,
			Nation:             nationView(nation),
			EducationHistory:   history,
			Players:            make([]PlayerView, 0, len(players)),
			Logs:               make([]LogView, 0, len(logs)),
		}

		for _, p := range players {
			snap.Players = append(snap.Players, PlayerView{
				Name:      p.Name,
				Role:      p.Role,
				Capital:   p.Capital,
				TurnOrder: p.TurnOrder,
			})
		}
		for _, l := range logs {
			snap.Logs = append(snap.Logs, LogView{
				Turn:       l.Turn,
				PlayerName: l.PlayerName,
				PlayerRole: l.PlayerRole,
				OptionText: l.OptionText,
				Effects:    l.Effects,
				CreatedAt:  l.CreatedAt,
			})
		}

		draw, err := tx.UnresolvedDraw(session.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		card, err := deck.ByID(draw.CardID)
		if err != nil {
			return err
		}
		snap.Card = cardView(card)
		return nil
	})
	return snap, err
}

func cardView(c deck.Card) *CardView {
	view := &CardView{
		ID:      c.ID,
		Title:   c.Title,
		Dilemma: c.Dilemma,
		Role:    c.Role,
		Options: make([]OptionView, 0, len(c.Options)),
	}
	for _, opt := range c.Options {
		ov := OptionView{Text: opt.Text}
		for _, eff := range opt.Effects {
			ov.Effects = append(ov.Effects, EffectView{Key: eff.Key, Delta: eff.Delta})
		}
		view.Options = append(view.Options, ov)
	}
	return view
}

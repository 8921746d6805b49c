package store

import "github.com/republica-game/republica/game"

// InsertNation creates the one nation row a session owns.
func (t *Tx) InsertNation(sessionID string, n game.NationState) error {
	_, err := t.tx.Exec(`
		INSERT INTO nation_states
			(game_session_id, economy, education, wellbeing, popular_support,
			 hunger, military_religion, board_position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, n.Economy, n.Education, n.Wellbeing, n.PopularSupport,
		n.Hunger, n.MilitaryReligion, n.BoardPosition,
	)
	return err
}

// Nation loads the session's nation state.
func (t *Tx) Nation(sessionID string) (game.NationState, error) {
	var n game.NationState
	err := t.tx.QueryRow(`
		SELECT economy, education, wellbeing, popular_support,
		       hunger, military_religion, board_position
		FROM nation_states WHERE game_session_id = ?`, sessionID,
	).Scan(
		&n.Economy, &n.Education, &n.Wellbeing, &n.PopularSupport,
		&n.Hunger, &n.MilitaryReligion, &n.BoardPosition,
	)
	return n, err
}

// UpdateNation overwrites the session's nation state.
func (t *Tx) UpdateNation(sessionID string, n game.NationState) error {
	_, err := t.tx.Exec(`
		UPDATE nation_states
		SET economy = ?, education = ?, wellbeing = ?, popular_support = ?,
		    hunger = ?, military_religion = ?, board_position = ?
		WHERE game_session_id = ?`,
		n.Economy, n.Education, n.Wellbeing, n.PopularSupport,
		n.Hunger, n.MilitaryReligion, n.BoardPosition, sessionID,
	)
	return err
}

// AppendEducation pushes one more value onto the education trend.
func (t *Tx) AppendEducation(sessionID string, value int) error {
	_, err := t.tx.Exec(`
		INSERT INTO education_history (game_session_id, value) VALUES (?, ?)`,
		sessionID, value)
	return err
}

// EducationHistory returns the trend in insertion order.
func (t *Tx) EducationHistory(sessionID string) ([]int, error) {
	rows, err := t.tx.Query(`
		SELECT value FROM education_history
		WHERE game_session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// DeleteEducationHistory clears the trend on restart.
func (t *Tx) DeleteEducationHistory(sessionID string) error {
	_, err := t.tx.Exec(
		`DELETE FROM education_history WHERE game_session_id = ?`, sessionID)
	return err
}

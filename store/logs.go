package store

// InsertLog appends one resolved-decision row. Logs are write-only; nothing
// ever mutates them except a full restart.
func (t *Tx) InsertLog(rec LogRecord) error {
	_, err := t.tx.Exec(`
		INSERT INTO game_logs
			(game_session_id, turn, player_name, player_role, option_text, effects, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.GameSessionID, rec.Turn, rec.PlayerName, rec.PlayerRole,
		rec.OptionText, rec.Effects, toMillis(rec.CreatedAt),
	)
	return err
}

// Logs returns the session's history, most recent first.
func (t *Tx) Logs(sessionID string) ([]LogRecord, error) {
	rows, err := t.tx.Query(`
		SELECT id, game_session_id, turn, player_name, player_role, option_text, effects, created_at
		FROM game_logs WHERE game_session_id = ?
		ORDER BY id DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []LogRecord
	for rows.Next() {
		var rec LogRecord
		var createdAt int64
		if err := rows.Scan(
			&rec.ID, &rec.GameSessionID, &rec.Turn, &rec.PlayerName,
			&rec.PlayerRole, &rec.OptionText, &rec.Effects, &createdAt,
		); err != nil {
			return nil, err
		}
		rec.CreatedAt = fromMillis(createdAt)
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}

// DeleteLogs clears the history on restart.
func (t *Tx) DeleteLogs(sessionID string) error {
	_, err := t.tx.Exec(
		`DELETE FROM game_logs WHERE game_session_id = ?`, sessionID)
	return err
}

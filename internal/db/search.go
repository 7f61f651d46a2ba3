package db

import (
	"strings"

	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/models"
)

// LogLine is one raw log line queued for full-text indexing.
type LogLine struct {
	CharacterID models.UUID
	Content     string
	Timestamp   string
	FilePath    string
}

// InsertLogLines bulk-inserts lines into the full-text index using a
// single prepared statement.
func (r *Repository) InsertLogLines(lines []LogLine) error {
	if len(lines) == 0 {
		return nil
	}
	stmt, err := r.PrepareStmt("INSERT INTO log_lines (content, character_id, timestamp, file_path) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := stmt.Exec(line.Content, line.CharacterID, line.Timestamp, line.FilePath); err != nil {
			return errors.Wrap(errors.ErrDatabase, "indexing log line", err)
		}
	}
	return nil
}

// SearchLogLines runs a full-text query over the indexed log lines.
// The query is wrapped in FTS5 string-literal quotes so user input is
// matched as a phrase rather than interpreted as query syntax.
// characterID narrows results to one character when non-empty.
func (r *Repository) SearchLogLines(query string, characterID models.UUID, limit int) ([]*models.SearchHit, error) {
	if limit <= 0 {
		limit = 50
	}
	escaped := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`

	sqlQuery := `SELECT COALESCE(c.name, ''), log_lines.timestamp, log_lines.file_path,
			snippet(log_lines, 0, '<mark>', '</mark>', '...', 64)
		FROM log_lines
		LEFT JOIN characters c ON c.id = log_lines.character_id
		WHERE log_lines MATCH ?`
	args := []interface{}{escaped}
	if characterID != "" {
		sqlQuery += " AND log_lines.character_id = ?"
		args = append(args, characterID)
	}
	sqlQuery += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "searching log lines", err)
	}
	defer rows.Close()

	var hits []*models.SearchHit
	for rows.Next() {
		var h models.SearchHit
		if err := rows.Scan(&h.CharacterName, &h.Timestamp, &h.FilePath, &h.Snippet); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "scanning search hit", err)
		}
		hits = append(hits, &h)
	}
	return hits, rows.Err()
}

// LogLineCount returns the number of indexed log lines.
func (r *Repository) LogLineCount() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM log_lines").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "counting log lines", err)
	}
	return count, nil
}

package models

// ScannedFile is the ledger entry that makes rescans idempotent:
// a file is skipped if its path or its content hash is already here.
type ScannedFile struct {
	ID          UUID   `db:"id" json:"id"`
	CharacterID UUID   `db:"character_id" json:"character_id"`
	FilePath    string `db:"file_path" json:"file_path"`
	ContentHash string `db:"content_hash" json:"content_hash"`
	DateRead    string `db:"date_read" json:"date_read"`
}

// TableName returns the table name for ScannedFile.
func (ScannedFile) TableName() string {
	return "log_files"
}

// ScanResult summarizes one scan invocation. Counts are reported even
// on partial failure so a caller can tell "nothing new" from "broken".
type ScanResult struct {
	Characters   []string `json:"characters"`
	FilesScanned int      `json:"files_scanned"`
	Skipped      int      `json:"skipped"`
	LinesParsed  int      `json:"lines_parsed"`
	EventsFound  int      `json:"events_found"`
	Errors       int      `json:"errors"`
}

// SearchHit is one full-text search result over ingested log lines.
type SearchHit struct {
	CharacterName string `json:"character_name"`
	Timestamp     string `json:"timestamp"`
	FilePath      string `json:"file_path"`
	Snippet       string `json:"snippet"`
}

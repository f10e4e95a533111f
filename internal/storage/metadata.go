package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
)

// MetadataDB handles SQLite database operations
type MetadataDB struct {
	db *sql.DB
}

// NewMetadataDB creates a new metadata database
func NewMetadataDB(dbPath string) (*MetadataDB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Create tables if not exists
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS conversations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL UNIQUE,
		request_name TEXT NOT NULL,
		source_type TEXT NOT NULL,
		gdrive_url TEXT,
		local_path TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		turn_count INTEGER,
		word_count INTEGER
	);

	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		display_name TEXT NOT NULL,
		content TEXT NOT NULL,
		label_prefix TEXT
	);

	CREATE TABLE IF NOT EXISTS corrections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		from_speaker TEXT NOT NULL,
		to_speaker TEXT NOT NULL,
		rule TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_created_at ON conversations(created_at);
	CREATE INDEX IF NOT EXISTS idx_request_name ON conversations(request_name);
	CREATE INDEX IF NOT EXISTS idx_turns_job ON turns(job_id, position);
	CREATE INDEX IF NOT EXISTS idx_corrections_job ON corrections(job_id);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &MetadataDB{db: db}, nil
}

// SaveConversation saves conversation metadata to the database
func (mdb *MetadataDB) SaveConversation(
	jobID, requestName, sourceType, gdriveURL, localPath string,
	turnCount, wordCount int,
) error {
	query := `
	INSERT INTO conversations (job_id, request_name, source_type, gdrive_url, local_path, created_at, turn_count, word_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := mdb.db.Exec(query, jobID, requestName, sourceType, gdriveURL, localPath,
		time.Now(), turnCount, wordCount)
	if err != nil {
		return fmt.Errorf("failed to save conversation metadata: %v", err)
	}

	return nil
}

// SaveTurns stores the ordered turn list for a conversation
func (mdb *MetadataDB) SaveTurns(jobID string, turns []dialogue.Turn) error {
	tx, err := mdb.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	query := `
	INSERT INTO turns (job_id, position, kind, display_name, content, label_prefix)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	for i, t := range turns {
		if _, err := tx.Exec(query, jobID, i, t.Kind, t.DisplayName, t.Content, t.LabelPrefix); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save turn %d: %v", i, err)
		}
	}

	return tx.Commit()
}

// GetTurns retrieves the ordered turn list for a conversation
func (mdb *MetadataDB) GetTurns(jobID string) ([]dialogue.Turn, error) {
	query := `
	SELECT kind, display_name, content, label_prefix
	FROM turns WHERE job_id = ? ORDER BY position ASC
	`

	rows, err := mdb.db.Query(query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %v", err)
	}
	defer rows.Close()

	var turns []dialogue.Turn
	for rows.Next() {
		var t dialogue.Turn
		var prefix sql.NullString
		if err := rows.Scan(&t.Kind, &t.DisplayName, &t.Content, &prefix); err != nil {
			continue
		}
		t.LabelPrefix = prefix.String
		turns = append(turns, t)
	}

	return turns, nil
}

// GetConversation retrieves conversation metadata by job ID
func (mdb *MetadataDB) GetConversation(jobID string) (map[string]interface{}, error) {
	query := `
	SELECT job_id, request_name, source_type, gdrive_url, local_path, created_at, turn_count, word_count
	FROM conversations WHERE job_id = ?
	`

	row := mdb.db.QueryRow(query, jobID)

	var (
		jid, name, source, local string
		gdrive                   sql.NullString
		createdAt                time.Time
		turnCount, wordCount     int
	)

	err := row.Scan(&jid, &name, &source, &gdrive, &local, &createdAt, &turnCount, &wordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %v", err)
	}

	return map[string]interface{}{
		"job_id":       jid,
		"request_name": name,
		"source_type":  source,
		"gdrive_url":   gdrive.String,
		"local_path":   local,
		"created_at":   createdAt,
		"turn_count":   turnCount,
		"word_count":   wordCount,
	}, nil
}

// ListConversations returns the most recent conversations
func (mdb *MetadataDB) ListConversations(limit int) ([]map[string]interface{}, error) {
	query := `
	SELECT job_id, request_name, source_type, gdrive_url, local_path, created_at, turn_count, word_count
	FROM conversations ORDER BY created_at DESC LIMIT ?
	`

	rows, err := mdb.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %v", err)
	}
	defer rows.Close()

	var conversations []map[string]interface{}

	for rows.Next() {
		var (
			jid, name, source, local string
			gdrive                   sql.NullString
			createdAt                time.Time
			turnCount, wordCount     int
		)

		if err := rows.Scan(&jid, &name, &source, &gdrive, &local, &createdAt, &turnCount, &wordCount); err != nil {
			continue
		}

		conversations = append(conversations, map[string]interface{}{
			"job_id":       jid,
			"request_name": name,
			"source_type":  source,
			"gdrive_url":   gdrive.String,
			"local_path":   local,
			"created_at":   createdAt,
			"turn_count":   turnCount,
			"word_count":   wordCount,
		})
	}

	return conversations, nil
}

// CorrectionRecorder returns an append-only correction log bound to a job.
// The returned logger satisfies dialogue.CorrectionLogger; insert failures
// are logged and dropped so segmentation itself is never blocked.
func (mdb *MetadataDB) CorrectionRecorder(jobID string) dialogue.CorrectionLogger {
	return &correctionRecorder{db: mdb.db, jobID: jobID}
}

// ListCorrections returns every recorded override for a job, oldest first
func (mdb *MetadataDB) ListCorrections(jobID string) ([]dialogue.Correction, error) {
	query := `
	SELECT position, from_speaker, to_speaker, rule
	FROM corrections WHERE job_id = ? ORDER BY id ASC
	`

	rows, err := mdb.db.Query(query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %v", err)
	}
	defer rows.Close()

	var corrections []dialogue.Correction
	for rows.Next() {
		var c dialogue.Correction
		var from, to string
		if err := rows.Scan(&c.Index, &from, &to, &c.Rule); err != nil {
			continue
		}
		c.From = dialogue.Speaker(from)
		c.To = dialogue.Speaker(to)
		corrections = append(corrections, c)
	}

	return corrections, nil
}

// Close closes the database connection
func (mdb *MetadataDB) Close() error {
	return mdb.db.Close()
}

type correctionRecorder struct {
	db    *sql.DB
	jobID string
}

func (r *correctionRecorder) Record(c dialogue.Correction) {
	query := `
	INSERT INTO corrections (job_id, position, from_speaker, to_speaker, rule, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, r.jobID, c.Index, string(c.From), string(c.To), c.Rule, time.Now()); err != nil {
		log.Printf("Failed to record correction for job %s: %v", r.jobID, err)
	}
}

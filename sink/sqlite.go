package sink

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteSink persists submissions, comments, walk checkpoints, and the
// alias table to the four tables spec §6 names. Grounded on
// sqldef's sqlite3.Sqlite3Database: sql.Open("sqlite", path) against
// modernc.org/sqlite, a thin struct wrapping *sql.DB.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a SQLite database at path
// and ensures the reference schema exists.
func OpenSQLite(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "sink: opening sqlite database")
	}
	s := &SQLiteSink{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSink) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			submission_id TEXT PRIMARY KEY,
			username TEXT,
			timestamp INTEGER,
			title TEXT,
			body TEXT,
			base_count INTEGER,
			thread_id TEXT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			position INTEGER,
			username TEXT,
			timestamp INTEGER,
			comment_id TEXT PRIMARY KEY,
			submission_id TEXT,
			body TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS checkpoints (
			thread_id TEXT,
			submission_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS counters (
			username TEXT,
			canonical_username TEXT,
			is_mod INTEGER,
			is_banned INTEGER
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "sink: creating schema")
		}
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// InsertSubmission records one thread's opening post.
func (s *SQLiteSink) InsertSubmission(submissionID, username string, timestamp int64, title, body string, baseCount int64, threadID string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO submissions (submission_id, username, timestamp, title, body, base_count, thread_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		submissionID, username, timestamp, title, body, baseCount, nullableString(threadID),
	)
	if err != nil {
		return errors.Wrap(err, "sink: inserting submission")
	}
	return nil
}

// InsertComments persists rows (each already carrying its decoded
// position and its own SubmissionID) as comments, in a single
// transaction.
func (s *SQLiteSink) InsertComments(rows []CountRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "sink: beginning comments transaction")
	}
	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO comments (position, username, timestamp, comment_id, submission_id, body)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "sink: preparing comment insert")
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.Count, r.Username, r.Timestamp.Unix(), r.CommentID, r.SubmissionID, ""); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "sink: inserting comment")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "sink: committing comments transaction")
	}
	return nil
}

// SetCheckpoint records the most recently processed submission for a
// chain, so a later run can resume from it rather than re-walking the
// whole chain.
func (s *SQLiteSink) SetCheckpoint(threadID, submissionID string) error {
	_, err := s.db.Exec(`INSERT INTO checkpoints (thread_id, submission_id) VALUES (?, ?)`, threadID, submissionID)
	if err != nil {
		return errors.Wrap(err, "sink: setting checkpoint")
	}
	return nil
}

// LatestCheckpoint returns the most recently recorded submission id for
// threadID, and whether one was found.
func (s *SQLiteSink) LatestCheckpoint(threadID string) (string, bool, error) {
	var submissionID string
	err := s.db.QueryRow(
		`SELECT submission_id FROM checkpoints WHERE thread_id = ? ORDER BY rowid DESC LIMIT 1`,
		threadID,
	).Scan(&submissionID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "sink: reading checkpoint")
	}
	return submissionID, true, nil
}

// UpsertCounter records a username's canonical resolution and
// moderator/banned flags (SUPPLEMENTED FEATURE 6).
func (s *SQLiteSink) UpsertCounter(username, canonical string, isMod, isBanned bool) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO counters (username, canonical_username, is_mod, is_banned) VALUES (?, ?, ?, ?)`,
		username, canonical, isMod, isBanned,
	)
	if err != nil {
		return errors.Wrap(err, "sink: upserting counter")
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

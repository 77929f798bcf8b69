package lap

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	lapsQuery := `
	CREATE TABLE IF NOT EXISTS laps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		elapsed INTEGER NOT NULL,
		display TEXT NOT NULL,
		tag TEXT NOT NULL DEFAULT '',
		recorded_at INTEGER NOT NULL
	)
	`
	if _, err := r.db.Exec(lapsQuery); err != nil {
		return err
	}

	_, err := r.db.Exec("CREATE INDEX IF NOT EXISTS laps_session ON laps (session_id, number)")
	return err
}

func (r *Repository) Create(l *Lap) error {
	result, err := r.db.Exec(
		"INSERT INTO laps (session_id, number, elapsed, display, tag, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		l.SessionID,
		l.Number,
		int64(l.Elapsed),
		l.Display,
		l.Tag,
		l.RecordedAt.UnixNano(),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

// BySession returns the laps of one session, newest first.
func (r *Repository) BySession(sessionID string) ([]Lap, error) {
	return r.query(
		"SELECT id, session_id, number, elapsed, display, tag, recorded_at FROM laps WHERE session_id = ? ORDER BY number DESC",
		sessionID,
	)
}

// All returns every recorded lap, newest first.
func (r *Repository) All() ([]Lap, error) {
	return r.query(
		"SELECT id, session_id, number, elapsed, display, tag, recorded_at FROM laps ORDER BY recorded_at DESC, id DESC",
	)
}

func (r *Repository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM laps WHERE session_id = ?", sessionID)
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) query(q string, args ...any) ([]Lap, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var laps []Lap
	for rows.Next() {
		var l Lap
		var elapsed, recordedAt int64
		if err := rows.Scan(&l.ID, &l.SessionID, &l.Number, &elapsed, &l.Display, &l.Tag, &recordedAt); err != nil {
			return nil, err
		}
		l.Elapsed = time.Duration(elapsed)
		l.RecordedAt = time.Unix(0, recordedAt)
		laps = append(laps, l)
	}
	return laps, rows.Err()
}

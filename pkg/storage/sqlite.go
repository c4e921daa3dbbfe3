package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

// SQLite stores the collection in a local SQLite database. Save still
// overwrites the whole collection, inside one transaction, so the durability
// contract matches the JSON file backend.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			start_time TEXT NOT NULL DEFAULT '',
			end_time TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			completed INTEGER NOT NULL DEFAULT 0,
			type TEXT NOT NULL DEFAULT 'task',
			location TEXT NOT NULL DEFAULT '',
			attendee_count INTEGER NOT NULL DEFAULT 0
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLite) Load() ([]model.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, date, start_time, end_time,
		       priority, completed, type, location, attendee_count
		FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var completed int
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Date,
			&t.StartTime, &t.EndTime, &t.Priority, &completed,
			&t.Type, &t.Location, &t.AttendeeCount); err != nil {
			return nil, err
		}
		t.Completed = completed != 0
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLite) Save(tasks []model.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (id, title, description, date, start_time, end_time,
		                   priority, completed, type, location, attendee_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		completed := 0
		if t.Completed {
			completed = 1
		}
		if _, err := stmt.Exec(t.ID, t.Title, t.Description, t.Date,
			t.StartTime, t.EndTime, t.Priority, completed,
			t.Type, t.Location, t.AttendeeCount); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

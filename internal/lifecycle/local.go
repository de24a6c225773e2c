package lifecycle

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"vocalnotes/internal/note/model"
)

// LocalStore is the offline fallback: a SQLite file holding one JSON blob
// per note, keyed by id. It satisfies the same contract as RemoteStore.
type LocalStore struct {
	db *sql.DB
}

func OpenLocalStore(path string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) List(ctx context.Context) ([]model.Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var n model.Note
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			continue // skip corrupt rows rather than failing the whole list
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *LocalStore) Upsert(ctx context.Context, n model.Note) (model.Note, error) {
	if n.ID == "" || model.IsPlaceholderID(n.ID) {
		n.ID = uuid.NewString()
	}
	data, err := json.Marshal(n)
	if err != nil {
		return model.Note{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO notes (id, data) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data`, n.ID, string(data))
	if err != nil {
		return model.Note{}, fmt.Errorf("local store upsert: %w", err)
	}
	return n, nil
}

func (s *LocalStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return err
}

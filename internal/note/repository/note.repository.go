package repository

import (
	"database/sql"

	"vocalnotes/internal/note/model"
	"vocalnotes/pkg/logger"
)

type NoteRepository struct {
	DB *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

// EnsureSchema creates the notes table if it does not exist yet.
func (r *NoteRepository) EnsureSchema() error {
	_, err := r.DB.Exec(`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		has_notification BOOLEAN NOT NULL DEFAULT FALSE,
		notification_date TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		audio_path TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		logger.Sugar.Errorf("Failed to ensure notes schema: %v", err)
	}
	return err
}

func (r *NoteRepository) Create(n model.Note) error {
	_, err := r.DB.Exec(`INSERT INTO notes (id, title, content, category, has_notification, notification_date, created_at, updated_at, completed, audio_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.Title, n.Content, n.Category, n.HasNotification, n.NotificationDate, n.CreatedAt, n.UpdatedAt, n.Completed, n.AudioPath)
	if err != nil {
		logger.Sugar.Errorf("Failed to create note %s: %v", n.ID, err)
	}
	return err
}

func (r *NoteRepository) Get(id string) (model.Note, error) {
	var n model.Note
	err := r.DB.QueryRow(`SELECT id, title, content, category, has_notification, notification_date, created_at, updated_at, completed, audio_path
		FROM notes WHERE id = $1`, id).
		Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.HasNotification, &n.NotificationDate, &n.CreatedAt, &n.UpdatedAt, &n.Completed, &n.AudioPath)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to get note %s: %v", id, err)
	}
	return n, err
}

func (r *NoteRepository) List() ([]model.Note, error) {
	rows, err := r.DB.Query(`SELECT id, title, content, category, has_notification, notification_date, created_at, updated_at, completed, audio_path
		FROM notes ORDER BY created_at DESC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.HasNotification, &n.NotificationDate, &n.CreatedAt, &n.UpdatedAt, &n.Completed, &n.AudioPath); err != nil {
			logger.Sugar.Errorf("Failed to scan note row: %v", err)
			continue
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NoteRepository) Update(n model.Note) (int64, error) {
	result, err := r.DB.Exec(`UPDATE notes SET title = $1, content = $2, category = $3, has_notification = $4, notification_date = $5, created_at = $6, updated_at = $7, completed = $8, audio_path = $9
		WHERE id = $10`,
		n.Title, n.Content, n.Category, n.HasNotification, n.NotificationDate, n.CreatedAt, n.UpdatedAt, n.Completed, n.AudioPath, n.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %s: %v", n.ID, err)
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes a note by id. Deleting an absent id is not an error.
func (r *NoteRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %s: %v", id, err)
	}
	return err
}

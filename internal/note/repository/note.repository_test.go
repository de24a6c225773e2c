package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalnotes/internal/note/model"
)

var noteColumns = []string{"id", "title", "content", "category", "has_notification", "notification_date", "created_at", "updated_at", "completed", "audio_path"}

func testNote() model.Note {
	return model.Note{
		ID:        "7f9c45c1-53d4-4a36-9d1c-0a2a4f8b2a11",
		Title:     "Client meeting",
		Content:   "Meeting with client tomorrow at 3pm",
		Category:  model.CategoryAppointment,
		CreatedAt: "2024-03-01T10:00:00.000Z",
		UpdatedAt: "2024-03-01T10:00:00.000Z",
	}
}

func TestCreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNoteRepository(db)
	n := testNote()

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(n.ID, n.Title, n.Content, n.Category, n.HasNotification, n.NotificationDate, n.CreatedAt, n.UpdatedAt, n.Completed, n.AudioPath).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(n))

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = \\$1").
		WithArgs(n.ID).
		WillReturnRows(sqlmock.NewRows(noteColumns).
			AddRow(n.ID, n.Title, n.Content, n.Category, n.HasNotification, n.NotificationDate, n.CreatedAt, n.UpdatedAt, n.Completed, n.AudioPath))

	got, err := repo.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = \\$1").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(noteColumns))

	_, err = NewNoteRepository(db).Get("nope")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestListOrdersByCreatedAtDesc(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM notes ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(noteColumns).
			AddRow("id-3", "c", "c", model.CategoryTask, false, "", "2024-03-03T00:00:00.000Z", "2024-03-03T00:00:00.000Z", false, "").
			AddRow("id-2", "b", "b", model.CategoryTask, false, "", "2024-03-02T00:00:00.000Z", "2024-03-02T00:00:00.000Z", false, "").
			AddRow("id-1", "a", "a", model.CategoryTask, false, "", "2024-03-01T00:00:00.000Z", "2024-03-01T00:00:00.000Z", false, ""))

	notes, err := NewNoteRepository(db).List()
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "id-3", notes[0].ID)
	assert.Equal(t, "id-1", notes[2].ID)
}

func TestUpdateReportsRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	n := testNote()
	mock.ExpectExec("UPDATE notes SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewNoteRepository(db).Update(n)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestDeleteMissingIsNoError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM notes WHERE id = \\$1").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, NewNoteRepository(db).Delete("ghost"))
}

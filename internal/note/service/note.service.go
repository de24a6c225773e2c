package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vocalnotes/internal/events"
	"vocalnotes/internal/note/model"
	"vocalnotes/internal/note/repository"
)

var (
	ErrNotFound    = errors.New("note not found")
	ErrInvalidNote = errors.New("invalid note")
)

type NoteService struct {
	Repo *repository.NoteRepository
	Hub  *events.Hub
}

func NewNoteService(repo *repository.NoteRepository, hub *events.Hub) *NoteService {
	return &NoteService{Repo: repo, Hub: hub}
}

// Create persists a new note and assigns its durable id. A client-provided
// id is kept only when it already looks like a backend id; placeholder ids
// (and anything else) are replaced so they never become storage keys.
func (s *NoteService) Create(n model.Note) (model.Note, error) {
	if err := validate(n); err != nil {
		return model.Note{}, err
	}

	if !IsBackendID(n.ID) {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt == "" {
		n.CreatedAt = model.NowISO()
	}
	if n.UpdatedAt == "" {
		n.UpdatedAt = n.CreatedAt
	}

	if err := s.Repo.Create(n); err != nil {
		return model.Note{}, err
	}
	s.publish(events.NoteCreated, n)
	return n, nil
}

// Update replaces all fields of the note with the given id. createdAt is
// immutable, so the stored value always wins over the payload's.
func (s *NoteService) Update(id string, n model.Note) (model.Note, error) {
	if err := validate(n); err != nil {
		return model.Note{}, err
	}

	stored, err := s.Repo.Get(id)
	if err == sql.ErrNoRows {
		return model.Note{}, ErrNotFound
	} else if err != nil {
		return model.Note{}, err
	}

	n.ID = id
	n.CreatedAt = stored.CreatedAt
	if n.UpdatedAt == "" {
		n.UpdatedAt = model.NowISO()
	}

	rowsAffected, err := s.Repo.Update(n)
	if err != nil {
		return model.Note{}, err
	}
	if rowsAffected == 0 {
		return model.Note{}, ErrNotFound
	}
	s.publish(events.NoteUpdated, n)
	return n, nil
}

func (s *NoteService) List() ([]model.Note, error) {
	notes, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// Delete removes a note. Deleting an id that is already gone succeeds.
func (s *NoteService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.publish(events.NoteDeleted, map[string]string{"id": id})
	return nil
}

func (s *NoteService) publish(eventType string, payload any) {
	if s.Hub != nil {
		s.Hub.Publish(eventType, payload)
	}
}

// IsBackendID reports whether id was assigned by this backend.
func IsBackendID(id string) bool {
	if id == "" || model.IsPlaceholderID(id) {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

func validate(n model.Note) error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidNote)
	}
	if n.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidNote)
	}
	if !model.ValidCategory(n.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidNote, n.Category)
	}
	return nil
}

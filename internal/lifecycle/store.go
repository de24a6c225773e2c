package lifecycle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"vocalnotes/internal/note/model"
)

// NoteStore is the persistence capability the controller works against.
// Exactly one backend is picked at construction time; callers never branch
// on which one they got.
type NoteStore interface {
	List(ctx context.Context) ([]model.Note, error)
	Upsert(ctx context.Context, n model.Note) (model.Note, error)
	Delete(ctx context.Context, id string) error
}

// OpenStore selects the backend once: the remote API when a base URL is
// configured, the local SQLite fallback otherwise.
func OpenStore(apiBaseURL, localPath string) (NoteStore, error) {
	if apiBaseURL != "" {
		return NewRemoteStore(apiBaseURL), nil
	}
	return OpenLocalStore(localPath)
}

// RemoteStore persists notes through the backend HTTP API.
type RemoteStore struct {
	baseURL string
	client  *http.Client
}

func NewRemoteStore(baseURL string) *RemoteStore {
	return &RemoteStore{baseURL: baseURL, client: &http.Client{}}
}

func (s *RemoteStore) List(ctx context.Context) ([]model.Note, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/notes", nil)
	if err != nil {
		return nil, err
	}
	var notes []model.Note
	if err := s.do(req, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Upsert routes on the id shape: an absent or placeholder id means the note
// has never been persisted, so it is created and the placeholder is never
// sent to the backend. Anything else is an update-by-id.
func (s *RemoteStore) Upsert(ctx context.Context, n model.Note) (model.Note, error) {
	if n.ID == "" || model.IsPlaceholderID(n.ID) {
		payload := n
		payload.ID = ""
		body, err := json.Marshal(payload)
		if err != nil {
			return model.Note{}, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/notes", bytes.NewReader(body))
		if err != nil {
			return model.Note{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		var created model.Note
		if err := s.do(req, &created); err != nil {
			return model.Note{}, err
		}
		return created, nil
	}

	body, err := json.Marshal(n)
	if err != nil {
		return model.Note{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/api/notes/"+n.ID, bytes.NewReader(body))
	if err != nil {
		return model.Note{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var updated model.Note
	if err := s.do(req, &updated); err != nil {
		return model.Note{}, err
	}
	return updated, nil
}

func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/api/notes/"+id, nil)
	if err != nil {
		return err
	}
	return s.do(req, nil)
}

func (s *RemoteStore) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("store request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read store response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr model.ErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("store error: %s", apiErr.Error)
		}
		return fmt.Errorf("store returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

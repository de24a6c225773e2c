package note

import (
	"encoding/json"
	"errors"
	"net/http"

	"vocalnotes/internal/note/model"
	"vocalnotes/internal/note/service"
	"vocalnotes/pkg/logger"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.List()
	if err != nil {
		logger.Sugar.Errorf("Handler: Failed to list notes: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list notes")
		return
	}
	logger.Sugar.Infof("GET /api/notes -> %d notes", len(notes))
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var n model.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.Service.Create(n)
	if err != nil {
		h.writeServiceError(w, "create", err)
		return
	}
	logger.Sugar.Infof("Created note %s (%s)", created.ID, created.Title)
	writeJSON(w, http.StatusOK, created)
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing note id")
		return
	}

	var n model.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.Service.Update(id, n)
	if err != nil {
		h.writeServiceError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing note id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, model.DeleteResponse{OK: true})
}

func (h *NoteHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	logger.Sugar.Errorf("Handler: Failed to %s note: %v", op, err)
	switch {
	case errors.Is(err, service.ErrInvalidNote):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, op+" failed: "+err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

package transcribe

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vocalnotes/internal/note/model"
	"vocalnotes/pkg/logger"
)

// Transcriber converts an uploaded audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type Handler struct {
	Client     Transcriber
	UploadsDir string
}

func NewHandler(client Transcriber, uploadsDir string) *Handler {
	return &Handler{Client: client, UploadsDir: uploadsDir}
}

// Transcribe handles POST /api/transcribe. The multipart field "file" carries
// the audio blob; the stored artifact is transient and removed after the
// remote call regardless of its outcome.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	path, err := h.saveUpload(file, header.Filename)
	if err != nil {
		logger.Sugar.Errorf("Failed to store upload: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}

	text, err := h.Client.Transcribe(r.Context(), path)

	// Clean up the uploaded artifact; deletion failure is logged only.
	go func() {
		if err := os.Remove(path); err != nil {
			logger.Sugar.Errorf("cleanup error: %v", err)
		}
	}()

	if err != nil {
		logger.Sugar.Errorf("Transcription error: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Transcription failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, model.TranscribeResponse{
		Transcription: text,
		AudioPath:     "/uploads/" + filepath.Base(path),
	})
}

func (h *Handler) saveUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.UploadsDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".webm"
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randSuffix(), ext)
	path := filepath.Join(h.UploadsDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func randSuffix() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "000000"
	}
	return fmt.Sprintf("%x", b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

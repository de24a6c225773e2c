package lifecycle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"vocalnotes/internal/analyze"
	"vocalnotes/internal/note/model"
)

// Gateway is the controller's view of the two remote pipeline steps.
type Gateway interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Analyze(ctx context.Context, transcription string) (model.NoteDraft, error)
}

// APIGateway talks to the backend's transcription and analyze endpoints.
type APIGateway struct {
	baseURL string
	client  *http.Client
}

func NewAPIGateway(baseURL string) *APIGateway {
	return &APIGateway{baseURL: baseURL, client: &http.Client{}}
}

func (g *APIGateway) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "note.webm")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/transcribe", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcribe request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription failed: %s", string(respBody))
	}

	var result model.TranscribeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	return result.Transcription, nil
}

// Analyze asks the backend to extract a draft. A non-OK response degrades to
// the deterministic fallback shape instead of failing the pipeline.
func (g *APIGateway) Analyze(ctx context.Context, transcription string) (model.NoteDraft, error) {
	reqBody, err := json.Marshal(model.AnalyzeRequest{Transcription: transcription})
	if err != nil {
		return model.NoteDraft{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/analyze-note", bytes.NewReader(reqBody))
	if err != nil {
		return model.NoteDraft{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return model.NoteDraft{}, fmt.Errorf("analyze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return analyze.FallbackDraft(transcription), nil
	}

	var draft model.NoteDraft
	if err := json.NewDecoder(resp.Body).Decode(&draft); err != nil {
		return analyze.FallbackDraft(transcription), nil
	}
	return draft, nil
}

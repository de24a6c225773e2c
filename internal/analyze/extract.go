package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vocalnotes/internal/note/model"
	"vocalnotes/pkg/logger"
)

// ErrEmptyTranscription is returned before any remote call is made.
var ErrEmptyTranscription = errors.New("transcription required")

const systemPrompt = `You are an assistant that extracts a concise title, a category among [appointment,task,intervention], structured content and a priority (normal|urgent) from the transcription of a field worker's voice note. Reply only with JSON using the keys: title, category, content, priority.`

const fallbackTitleLen = 60

// CompletionClient is the remote instruction-following model.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Result is the tagged extraction outcome: a draft parsed from the model
// reply, or the deterministic fallback when the reply was unusable.
type Result struct {
	Draft    model.NoteDraft
	Fallback bool
}

type Extractor struct {
	Client CompletionClient
}

func NewExtractor(client CompletionClient) *Extractor {
	return &Extractor{Client: client}
}

// Extract turns a transcription into a structured draft. An unparseable
// model reply is absorbed by the fallback and never surfaces as an error;
// only transport-level failures do.
func (e *Extractor) Extract(ctx context.Context, transcription string) (Result, error) {
	if strings.TrimSpace(transcription) == "" {
		return Result{}, ErrEmptyTranscription
	}

	reply, err := e.Client.Complete(ctx, systemPrompt, "Transcription: "+transcription)
	if err != nil {
		return Result{}, err
	}

	var draft model.NoteDraft
	if err := json.Unmarshal([]byte(reply), &draft); err != nil || !usableDraft(draft) {
		logger.Sugar.Warnf("Failed to parse model reply, using fallback")
		return Result{Draft: FallbackDraft(transcription), Fallback: true}, nil
	}
	return Result{Draft: draft}, nil
}

// FallbackDraft builds the deterministic safety-net draft from the raw
// transcription. It never fails.
func FallbackDraft(transcription string) model.NoteDraft {
	title := transcription
	if runes := []rune(title); len(runes) > fallbackTitleLen {
		title = string(runes[:fallbackTitleLen])
	}
	return model.NoteDraft{
		Title:    title,
		Category: model.CategoryIntervention,
		Content:  transcription,
		Priority: model.PriorityNormal,
	}
}

func usableDraft(d model.NoteDraft) bool {
	return d.Title != "" && d.Content != "" &&
		model.ValidCategory(d.Category) && model.ValidPriority(d.Priority)
}

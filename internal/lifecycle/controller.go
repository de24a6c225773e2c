package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"vocalnotes/internal/analyze"
	"vocalnotes/internal/note/model"
	"vocalnotes/pkg/logger"
)

// State is the controller's position in the capture pipeline. A session
// drives at most one capture at a time.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
	StateExtracting
	StateReviewing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	case StateExtracting:
		return "extracting"
	case StateReviewing:
		return "reviewing"
	}
	return "unknown"
}

const (
	errorDraftTitle   = "Voice note"
	errorDraftContent = "Transcription error"
	maxTitleLen       = 100

	// FilterAll matches every category.
	FilterAll = "all"
)

var (
	ErrCaptureInProgress = errors.New("a capture is already in progress")
	ErrNotRecording      = errors.New("no recording in progress")
	ErrNotReviewing      = errors.New("no draft under review")
	ErrEmptyDraft        = errors.New("title and content are required")
	ErrDeviceAccess      = errors.New("audio device unavailable")
)

// Draft is the editable note shown in the review form.
type Draft struct {
	Title            string
	Content          string
	Category         string
	HasNotification  bool
	NotificationDate string
}

// Controller owns the session's note list and drives the
// record -> transcribe -> extract -> review -> save flow.
type Controller struct {
	recorder Recorder
	gateway  Gateway
	store    NoteStore

	state   State
	rec     Recording
	draft   *Draft
	editing *model.Note
	notes   []model.Note
}

func NewController(recorder Recorder, gateway Gateway, store NoteStore) *Controller {
	return &Controller{
		recorder: recorder,
		gateway:  gateway,
		store:    store,
		state:    StateIdle,
	}
}

func (c *Controller) State() State { return c.state }

// Draft returns the draft under review, or nil outside of Reviewing.
func (c *Controller) Draft() *Draft { return c.draft }

// Notes returns the currently loaded list, already sorted for display.
func (c *Controller) Notes() []model.Note {
	out := make([]model.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Reload fetches all notes from the store and re-sorts them by createdAt,
// newest first.
func (c *Controller) Reload(ctx context.Context) error {
	notes, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return model.ParseTime(notes[i].CreatedAt).After(model.ParseTime(notes[j].CreatedAt))
	})
	c.notes = notes
	return nil
}

// StartCapture acquires the audio device and enters Recording. Re-entry is
// refused while a capture pipeline is active.
func (c *Controller) StartCapture(ctx context.Context) error {
	if c.state != StateIdle {
		return ErrCaptureInProgress
	}
	rec, err := c.recorder.Start(ctx)
	if err != nil {
		logger.Sugar.Errorf("Microphone unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrDeviceAccess, err)
	}
	c.rec = rec
	c.state = StateRecording
	return nil
}

// StopCapture finalizes the recording and runs it through transcription and
// extraction, landing in Reviewing. The user is never blocked from creating
// a note: any failure (or silent audio) pre-fills the review form with an
// explicit error placeholder instead.
func (c *Controller) StopCapture(ctx context.Context) (*Draft, error) {
	if c.state != StateRecording {
		return nil, ErrNotRecording
	}

	audio, err := c.rec.Stop()
	c.rec = nil
	if err != nil {
		logger.Sugar.Errorf("Failed to finalize recording: %v", err)
		c.openReview(errorDraft())
		return c.draft, nil
	}

	c.state = StateTranscribing
	text, err := c.gateway.Transcribe(ctx, audio)
	if err != nil {
		logger.Sugar.Errorf("Transcription failed: %v", err)
		c.openReview(errorDraft())
		return c.draft, nil
	}
	if strings.TrimSpace(text) == "" {
		// Nothing recognizable was said; extraction is never called.
		c.openReview(errorDraft())
		return c.draft, nil
	}

	c.state = StateExtracting
	draft, err := c.gateway.Analyze(ctx, text)
	if err != nil {
		logger.Sugar.Errorf("Extraction failed: %v", err)
		draft = analyze.FallbackDraft(text)
	}
	c.openReview(draftFromExtraction(draft, text))
	return c.draft, nil
}

// Confirm validates and persists the draft under review, reloads the list
// and returns to Idle.
func (c *Controller) Confirm(ctx context.Context) (model.Note, error) {
	if c.state != StateReviewing {
		return model.Note{}, ErrNotReviewing
	}
	if strings.TrimSpace(c.draft.Title) == "" || strings.TrimSpace(c.draft.Content) == "" {
		return model.Note{}, ErrEmptyDraft
	}

	now := model.NowISO()
	n := model.Note{
		ID:               model.NewPlaceholderID(),
		Title:            c.draft.Title,
		Content:          c.draft.Content,
		Category:         c.draft.Category,
		HasNotification:  c.draft.HasNotification,
		NotificationDate: c.draft.NotificationDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if c.editing != nil {
		n.ID = c.editing.ID
		n.CreatedAt = c.editing.CreatedAt
		n.Completed = c.editing.Completed
	}

	saved, err := c.store.Upsert(ctx, n)
	if err != nil {
		// Stay in Reviewing so the user can retry or cancel.
		return model.Note{}, fmt.Errorf("save note: %w", err)
	}

	c.reset()
	if err := c.Reload(ctx); err != nil {
		logger.Sugar.Errorf("Reload after save failed: %v", err)
	}
	return saved, nil
}

// Cancel drops the draft without touching the store.
func (c *Controller) Cancel() {
	if c.state != StateReviewing {
		return
	}
	c.reset()
}

// EditExisting re-enters Reviewing pre-filled from a stored note.
func (c *Controller) EditExisting(n model.Note) error {
	if c.state != StateIdle {
		return ErrCaptureInProgress
	}
	note := n
	c.editing = &note
	c.draft = &Draft{
		Title:            n.Title,
		Content:          n.Content,
		Category:         n.Category,
		HasNotification:  n.HasNotification,
		NotificationDate: n.NotificationDate,
	}
	c.state = StateReviewing
	return nil
}

// ToggleCompleted flips the completed flag of a task note and persists it.
func (c *Controller) ToggleCompleted(ctx context.Context, n model.Note) error {
	n.Completed = !n.Completed
	n.UpdatedAt = model.NowISO()
	if _, err := c.store.Upsert(ctx, n); err != nil {
		return fmt.Errorf("toggle completed: %w", err)
	}
	return c.Reload(ctx)
}

// Remove deletes a note and reloads the list.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return c.Reload(ctx)
}

// Search filters the loaded list by a case-insensitive substring match on
// title and content.
func (c *Controller) Search(query string) []model.Note {
	q := strings.ToLower(query)
	var out []model.Note
	for _, n := range c.notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// FilterByCategory returns the loaded notes of the given category, or all of
// them for FilterAll.
func (c *Controller) FilterByCategory(category string) []model.Note {
	if category == FilterAll {
		return c.Notes()
	}
	var out []model.Note
	for _, n := range c.notes {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

func (c *Controller) openReview(d Draft) {
	c.draft = &d
	c.state = StateReviewing
}

func (c *Controller) reset() {
	c.draft = nil
	c.editing = nil
	c.state = StateIdle
}

func errorDraft() Draft {
	return Draft{
		Title:    errorDraftTitle,
		Content:  errorDraftContent,
		Category: model.CategoryIntervention,
	}
}

// draftFromExtraction maps an extraction result onto the review form the way
// the UI does: title clamped, urgent priority becomes a notification flag.
func draftFromExtraction(d model.NoteDraft, transcription string) Draft {
	title := d.Title
	if title == "" {
		title = errorDraftTitle
	}
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	content := d.Content
	if content == "" {
		content = transcription
	}
	category := d.Category
	if !model.ValidCategory(category) {
		category = model.CategoryIntervention
	}
	return Draft{
		Title:           title,
		Content:         content,
		Category:        category,
		HasNotification: d.Priority == model.PriorityUrgent,
	}
}

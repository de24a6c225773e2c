package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	CategoryAppointment  = "appointment"
	CategoryTask         = "task"
	CategoryIntervention = "intervention"

	PriorityNormal = "normal"
	PriorityUrgent = "urgent"

	// PlaceholderPrefix marks client-generated ids that have never been persisted.
	PlaceholderPrefix = "note_"

	// TimeLayout is the wire format for note timestamps.
	TimeLayout = "2006-01-02T15:04:05.000Z"
)

type Note struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	Category         string `json:"category"`
	HasNotification  bool   `json:"hasNotification"`
	NotificationDate string `json:"notificationDate,omitempty"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	Completed        bool   `json:"completed"`
	AudioPath        string `json:"audioPath,omitempty"`
}

// NoteDraft is the editable shape produced by extraction and shown in the
// review form before a note is confirmed.
type NoteDraft struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

type TranscribeResponse struct {
	Transcription string `json:"transcription"`
	AudioPath     string `json:"audioPath"`
}

type AnalyzeRequest struct {
	Transcription string `json:"transcription"`
}

type DeleteResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryAppointment, CategoryTask, CategoryIntervention:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	return p == PriorityNormal || p == PriorityUrgent
}

// IsPlaceholderID reports whether id is a client-generated placeholder that
// has never been assigned by the backend.
func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}

// NewPlaceholderID generates a time-based client-side id.
func NewPlaceholderID() string {
	return PlaceholderPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NowISO returns the current UTC time in the note timestamp format.
func NowISO() string {
	return time.Now().UTC().Format(TimeLayout)
}

// ParseTime parses a note timestamp; the zero time is returned for anything
// unparseable so sorting stays total.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

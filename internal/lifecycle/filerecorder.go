package lifecycle

import (
	"context"
	"fmt"
	"os"
)

// FileRecorder captures from a prerecorded audio file. It stands in for a
// live microphone when the capture happens outside the process (imported
// memos, tests).
type FileRecorder struct {
	Path string
}

func (r FileRecorder) Start(ctx context.Context) (Recording, error) {
	// Acquisition fails up front, like a denied microphone, when the source
	// is unreadable.
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open audio source: %w", err)
	}
	f.Close()
	return &fileRecording{path: r.Path}, nil
}

type fileRecording struct {
	path    string
	stopped bool
}

func (r *fileRecording) Stop() ([]byte, error) {
	if r.stopped {
		return nil, fmt.Errorf("recording already stopped")
	}
	r.stopped = true
	return os.ReadFile(r.path)
}

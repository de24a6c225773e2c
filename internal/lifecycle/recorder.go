package lifecycle

import "context"

// Recorder abstracts the audio input device. Start acquires the device and
// fails immediately when access is denied or no device exists.
type Recorder interface {
	Start(ctx context.Context) (Recording, error)
}

// Recording is a single in-flight capture. Stop finalizes the capture into
// one blob and releases the device; it resolves exactly once.
type Recording interface {
	Stop() ([]byte, error)
}

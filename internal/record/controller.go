// Package record bridges the host audio capture facility to the
// soundbank: it captures a cue announcement from the default input
// device and registers the finished file against its cue.
package record

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atelierlibre/posecue/internal/audio"
	"github.com/atelierlibre/posecue/internal/soundbank"
)

// RecordingError reports a failed capture: device unavailable, or the
// output file absent after stop. The soundbank is never mutated on
// failure.
type RecordingError struct {
	Cue    soundbank.Cue
	Reason string
	Err    error
}

func (e *RecordingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recording %s failed: %s: %v", e.Cue, e.Reason, e.Err)
	}
	return fmt.Sprintf("recording %s failed: %s", e.Cue, e.Reason)
}

func (e *RecordingError) Unwrap() error { return e.Err }

// Controller runs one cue recording at a time.
type Controller struct {
	bank *soundbank.Bank
	rec  audio.Recorder
	now  func() time.Time

	mu     sync.Mutex
	active bool
	cue    soundbank.Cue
	path   string
}

// NewController creates a controller recording into the bank's storage
// directory through the given recorder.
func NewController(bank *soundbank.Bank, rec audio.Recorder) *Controller {
	return &Controller{bank: bank, rec: rec, now: time.Now}
}

// Start begins capturing the given cue to a timestamp-unique WAV file
// in the bank directory.
func (c *Controller) Start(cue soundbank.Cue) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return "", &RecordingError{Cue: cue, Reason: "another recording is in progress"}
	}

	path := filepath.Join(c.bank.Dir(), fmt.Sprintf("%s_%d.wav", cue, c.now().Unix()))
	if err := c.rec.Start(path); err != nil {
		return "", &RecordingError{Cue: cue, Reason: "capture device unavailable", Err: err}
	}

	c.active = true
	c.cue = cue
	c.path = path
	return path, nil
}

// Stop finalizes the capture and, when the output file exists,
// registers it against the cue. A capture that produced no file is
// reported as a RecordingError and leaves the bank untouched.
func (c *Controller) Stop() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return "", fmt.Errorf("no recording in progress")
	}
	c.active = false
	cue, path := c.cue, c.path

	stopErr := c.rec.Stop()
	if _, err := os.Stat(path); err != nil {
		return "", &RecordingError{Cue: cue, Reason: "no audio was captured", Err: stopErr}
	}
	if err := c.bank.SetCueFile(cue, path); err != nil {
		return "", err
	}
	return path, nil
}

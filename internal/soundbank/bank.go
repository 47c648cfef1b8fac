package soundbank

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atelierlibre/posecue/internal/audio"
)

// stateFile holds the cue registrations between process runs. It lives
// next to the audio assets in the bank directory.
const stateFile = "cues.yaml"

// Bank owns the cue-to-asset mapping and the directory where recorded
// and imported assets live. Each cue has at most one asset at a time;
// registering a new one replaces the previous reference.
type Bank struct {
	baseDir string
	sink    audio.Sink

	mu      sync.Mutex
	files   map[Cue]string
	playing map[Cue]audio.Handle
}

type bankState struct {
	Cues        map[string]string `yaml:"cues"`
	LastUpdated string            `yaml:"last_updated"`
}

// New creates a bank rooted at baseDir, creating the directory if
// needed and loading any persisted cue registrations. An unwritable
// base directory is fatal: no bank functionality can proceed without
// it.
func New(baseDir string, sink audio.Sink) (*Bank, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating soundbank directory %s: %w", baseDir, err)
	}
	if sink == nil {
		sink = audio.NoopSink{}
	}

	b := &Bank{
		baseDir: baseDir,
		sink:    sink,
		files:   make(map[Cue]string),
		playing: make(map[Cue]audio.Handle),
	}
	b.loadState()
	return b, nil
}

// Dir returns the bank's base storage directory.
func (b *Bank) Dir() string { return b.baseDir }

// SetCueFile registers path as the asset for cue, replacing any
// previous registration. An empty path clears the cue. The mapping is
// persisted immediately.
func (b *Bank) SetCueFile(cue Cue, path string) error {
	b.mu.Lock()
	if path == "" {
		delete(b.files, cue)
	} else {
		b.files[cue] = path
	}
	b.mu.Unlock()
	return b.saveState()
}

// CueFile returns the registered asset path for cue, or "" when none
// is registered.
func (b *Bank) CueFile(cue Cue) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.files[cue]
}

// Play triggers playback of the cue's asset. A cue with no asset, or
// whose asset no longer exists on disk, is silently ignored. A repeat
// trigger while the same cue is still sounding restarts it rather than
// layering. The returned handle may be nil when nothing was played.
func (b *Bank) Play(cue Cue) audio.Handle {
	b.mu.Lock()
	path := b.files[cue]
	prev := b.playing[cue]
	b.mu.Unlock()

	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		slog.Debug("cue asset missing, skipping playback", "cue", cue, "path", path)
		return nil
	}

	if prev != nil {
		prev.Stop()
	}

	h, err := b.sink.Play(path)
	if err != nil {
		slog.Debug("cue playback failed", "cue", cue, "path", path, "error", err)
		return nil
	}

	b.mu.Lock()
	b.playing[cue] = h
	b.mu.Unlock()
	return h
}

func (b *Bank) statePath() string {
	return filepath.Join(b.baseDir, stateFile)
}

func (b *Bank) loadState() {
	data, err := os.ReadFile(b.statePath())
	if err != nil {
		return
	}

	var state bankState
	if err := yaml.Unmarshal(data, &state); err != nil {
		slog.Warn("ignoring corrupt soundbank state file", "path", b.statePath(), "error", err)
		return
	}

	for name, path := range state.Cues {
		cue, err := ParseCue(name)
		if err != nil || path == "" {
			continue
		}
		b.files[cue] = path
	}
}

func (b *Bank) saveState() error {
	b.mu.Lock()
	state := bankState{
		Cues:        make(map[string]string, len(b.files)),
		LastUpdated: time.Now().Format(time.RFC3339),
	}
	for cue, path := range b.files {
		state.Cues[string(cue)] = path
	}
	b.mu.Unlock()

	data, err := yaml.Marshal(&state)
	if err != nil {
		return fmt.Errorf("encoding soundbank state: %w", err)
	}
	if err := os.WriteFile(b.statePath(), data, 0o644); err != nil {
		return fmt.Errorf("writing soundbank state: %w", err)
	}
	return nil
}

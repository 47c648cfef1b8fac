// Package audio bridges the core to the host audio subsystem. Playback
// and capture both shell out to installed command-line tools; the rest
// of the program only sees the Sink and Recorder interfaces.
package audio

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
)

// Sink starts playback of an audio file. Playback is fire-and-forget:
// Play returns as soon as the player is running.
type Sink interface {
	Play(path string) (Handle, error)
}

// Handle controls one in-flight playback.
type Handle interface {
	// Stop interrupts playback. Safe to call more than once or after
	// the sound has finished.
	Stop()
	// Wait blocks until playback ends.
	Wait()
}

// playerPreference lists supported player binaries in order of
// preference.
var playerPreference = []string{"ffplay", "mpv", "afplay", "paplay", "aplay"}

// ExecSink plays files through an installed command-line audio player.
type ExecSink struct {
	player string
	volume float64
}

// NewExecSink creates a sink using the given player binary, or the
// first available preferred player when player is empty. Volume is in
// [0,1] and applied where the player supports it.
func NewExecSink(player string, volume float64) (*ExecSink, error) {
	if player == "" {
		found, err := findPlayer()
		if err != nil {
			return nil, err
		}
		player = found
	} else if _, err := exec.LookPath(player); err != nil {
		return nil, fmt.Errorf("audio player %q not found: %w", player, err)
	}

	if volume <= 0 || volume > 1 {
		volume = 0.9
	}
	return &ExecSink{player: player, volume: volume}, nil
}

// DetectSink returns an ExecSink when a player is available and a
// NoopSink otherwise. Missing playback capability is not an error;
// cues just go silent.
func DetectSink(player string, volume float64) Sink {
	sink, err := NewExecSink(player, volume)
	if err != nil {
		slog.Debug("no audio player available, playback disabled", "error", err)
		return NoopSink{}
	}
	slog.Debug("audio player selected", "player", sink.player)
	return sink
}

func findPlayer() (string, error) {
	for _, p := range playerPreference {
		if _, err := exec.LookPath(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no audio player found (tried: %v)", playerPreference)
}

func (s *ExecSink) Play(path string) (Handle, error) {
	cmd := s.command(path)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", s.player, err)
	}

	h := &processHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		cmd.Wait()
	}()
	return h, nil
}

func (s *ExecSink) command(path string) *exec.Cmd {
	switch s.player {
	case "ffplay":
		return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet",
			"-volume", strconv.Itoa(int(s.volume*100)), path)
	case "mpv":
		return exec.Command("mpv", "--no-video", "--really-quiet",
			fmt.Sprintf("--volume=%d", int(s.volume*100)), path)
	case "afplay":
		return exec.Command("afplay", "-v", strconv.FormatFloat(s.volume, 'f', 2, 64), path)
	case "paplay":
		// paplay volume scale is 0..65536.
		return exec.Command("paplay", fmt.Sprintf("--volume=%d", int(s.volume*65536)), path)
	default:
		return exec.Command(s.player, path)
	}
}

type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
	once sync.Once
}

func (h *processHandle) Stop() {
	h.once.Do(func() {
		if h.cmd.Process != nil {
			h.cmd.Process.Kill()
		}
	})
}

func (h *processHandle) Wait() { <-h.done }

// NoopSink discards playback requests. Used when no player binary is
// installed and as a safe default in tests.
type NoopSink struct{}

func (NoopSink) Play(string) (Handle, error) { return noopHandle{}, nil }

type noopHandle struct{}

func (noopHandle) Stop() {}
func (noopHandle) Wait() {}

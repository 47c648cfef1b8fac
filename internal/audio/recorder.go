package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// Recorder captures audio from the platform's default input device
// into a file. One capture at a time.
type Recorder interface {
	Start(outputPath string) error
	Stop() error
}

// FFmpegRecorder records the default input device to an uncompressed
// WAV file by driving an ffmpeg process.
type FFmpegRecorder struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewFFmpegRecorder creates an idle recorder.
func NewFFmpegRecorder() *FFmpegRecorder {
	return &FFmpegRecorder{}
}

// Available reports whether ffmpeg is installed.
func (r *FFmpegRecorder) Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Start begins capturing to outputPath.
func (r *FFmpegRecorder) Start(outputPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return fmt.Errorf("capture already in progress")
	}

	cmd := exec.Command("ffmpeg", captureArgs(runtime.GOOS, outputPath)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting ffmpeg capture: %w", err)
	}
	r.cmd = cmd
	return nil
}

// Stop finalizes the capture. ffmpeg is interrupted rather than killed
// so it can rewrite the WAV header before exiting.
func (r *FFmpegRecorder) Stop() error {
	r.mu.Lock()
	cmd := r.cmd
	r.cmd = nil
	r.mu.Unlock()

	if cmd == nil {
		return fmt.Errorf("no capture in progress")
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		cmd.Wait()
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		cmd.Process.Kill()
		<-done
	}
	// ffmpeg exits non-zero on SIGINT; the recording is judged by
	// whether the output file materialized, not by the exit code.
	return nil
}

func captureArgs(goos, outputPath string) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	switch goos {
	case "darwin":
		args = append(args, "-f", "avfoundation", "-i", ":default")
	case "windows":
		args = append(args, "-f", "dshow", "-i", "audio=default")
	default:
		args = append(args, "-f", "pulse", "-i", "default")
	}
	return append(args, "-ac", "1", "-y", outputPath)
}

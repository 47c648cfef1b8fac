package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/audio"
	"github.com/atelierlibre/posecue/internal/record"
	"github.com/atelierlibre/posecue/internal/soundbank"
)

var recordCmd = &cobra.Command{
	Use:   "record [cue]",
	Short: "Record an announcement cue from the default microphone",
	Long: `Record audio from the system default input device and register the
result as the announcement sound for the given cue. Recording runs
until Enter is pressed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cue, err := soundbank.ParseCue(args[0])
		if err != nil {
			return err
		}

		bank, err := openBank()
		if err != nil {
			return err
		}

		rec := audio.NewFFmpegRecorder()
		if !rec.Available() {
			return fmt.Errorf("recording requires ffmpeg, which was not found in PATH")
		}

		controller := record.NewController(bank, rec)
		path, err := controller.Start(cue)
		if err != nil {
			return err
		}
		slog.Debug("recording started", "cue", cue, "file", path)

		fmt.Printf("Recording %q from the default microphone... press Enter to stop\n", cue.Label())
		bufio.NewScanner(os.Stdin).Scan()

		saved, err := controller.Stop()
		if err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n", filepath.Base(saved))
		return nil
	},
}

package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/format"
	"github.com/atelierlibre/posecue/internal/session"
	"github.com/atelierlibre/posecue/internal/soundbank"
	"github.com/atelierlibre/posecue/internal/timer"
	"github.com/atelierlibre/posecue/internal/ui"
)

// bankAnnouncer adapts the soundbank to the controller's announcer
// surface, dropping the playback handle.
type bankAnnouncer struct {
	bank *soundbank.Bank
}

func (a bankAnnouncer) Play(cue soundbank.Cue) { a.bank.Play(cue) }

var sessionCmd = &cobra.Command{
	Use:   "session [duration...]",
	Short: "Run a timed pose session",
	Long: `Run a countdown session over the given pose durations, in order.

Durations accept clock labels ("5:00", "0:30"), plain seconds ("90"),
or Go duration strings ("1m30s"). During the session: n advances to
the next pose, a toggles auto-advance, q quits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := openBank()
		if err != nil {
			return err
		}

		engine := timer.New(timer.WithInterval(cfg.Interval()))
		controller := session.NewController(engine, bankAnnouncer{bank: bank})

		autoAdvance := cfg.Session.AutoAdvance
		if cmd.Flags().Changed("auto-advance") {
			autoAdvance, _ = cmd.Flags().GetBool("auto-advance")
		}
		controller.SetAutoAdvance(autoAdvance)

		for _, arg := range args {
			seconds, err := format.ParseSeconds(arg)
			if err != nil {
				return fmt.Errorf("invalid pose duration: %w", err)
			}
			if !controller.AddPose(0, seconds) {
				slog.Debug("skipping zero-length pose", "arg", arg)
			}
		}
		if len(controller.Poses()) == 0 {
			return fmt.Errorf("no poses with a positive duration given")
		}

		slog.Debug("starting session",
			"poses", len(controller.Poses()), "auto_advance", autoAdvance)

		program := tea.NewProgram(ui.New(controller, engine), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("session display failed: %w", err)
		}
		return nil
	},
}

func init() {
	sessionCmd.Flags().Bool("auto-advance", true, "advance to the next pose automatically (overrides config)")
}

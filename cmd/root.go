package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/audio"
	"github.com/atelierlibre/posecue/internal/config"
	"github.com/atelierlibre/posecue/internal/soundbank"
)

var (
	cfg          *config.Config
	cfgFile      string
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "posecue",
	Short: "Session timer and announcer for timed drawing practice",
	Long: `Posecue counts down a sequence of pose durations for live drawing
practice and plays recorded audio announcements at session and pose
boundaries.

Announcement sounds are recorded from the system default microphone,
assigned to one of six fixed cues, and can be packaged into a portable
.soundbank archive.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verboseLevel)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/posecue.yaml)")
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=info, 1=debug")

	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(cuesCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging configures slog based on the verbose level
func setupLogging(level int) {
	slogLevel := slog.LevelInfo
	if level >= 1 {
		slogLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openBank builds the soundbank with the configured playback sink.
func openBank() (*soundbank.Bank, error) {
	sink := audio.DetectSink(cfg.Audio.Player, cfg.Audio.Volume)
	bank, err := soundbank.New(cfg.SoundsDir(), sink)
	if err != nil {
		return nil, fmt.Errorf("failed to open soundbank: %w", err)
	}
	return bank, nil
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/soundbank"
)

var setClear bool

var setCmd = &cobra.Command{
	Use:   "set [cue] [file]",
	Short: "Assign an existing audio file to a cue",
	Long: `Register an audio file as the announcement sound for a cue, replacing
any previous assignment. With --clear, remove the cue's assignment
instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cue, err := soundbank.ParseCue(args[0])
		if err != nil {
			return err
		}

		bank, err := openBank()
		if err != nil {
			return err
		}

		if setClear {
			if err := bank.SetCueFile(cue, ""); err != nil {
				return err
			}
			fmt.Printf("Cleared cue %q\n", cue)
			return nil
		}

		if len(args) != 2 {
			return fmt.Errorf("an audio file is required unless --clear is given")
		}
		path, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			slog.Warn("file does not exist; the cue stays silent until it does", "path", path)
		}

		if err := bank.SetCueFile(cue, path); err != nil {
			return err
		}
		fmt.Printf("Cue %q -> %s\n", cue, path)
		return nil
	},
}

func init() {
	setCmd.Flags().BoolVar(&setClear, "clear", false, "remove the cue's assignment")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/soundbank"
)

var playCmd = &cobra.Command{
	Use:   "play [cue]",
	Short: "Play the sound registered for a cue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cue, err := soundbank.ParseCue(args[0])
		if err != nil {
			return err
		}

		bank, err := openBank()
		if err != nil {
			return err
		}

		handle := bank.Play(cue)
		if handle == nil {
			fmt.Printf("No sound registered for cue %q\n", cue)
			return nil
		}
		handle.Wait()
		return nil
	},
}

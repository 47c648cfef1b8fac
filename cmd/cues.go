package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelierlibre/posecue/internal/soundbank"
)

var cuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "List the announcement cues and their assigned sounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := openBank()
		if err != nil {
			return err
		}

		for _, cue := range soundbank.Cues() {
			status := "(none)"
			if path := bank.CueFile(cue); path != "" {
				status = path
				if _, err := os.Stat(path); err != nil {
					status = path + " (missing)"
				}
			}
			fmt.Printf("%-14s %-22s %s\n", cue, cue.Label(), status)
		}
		return nil
	},
}

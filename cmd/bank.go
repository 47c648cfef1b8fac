package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Export or import the soundbank as a portable archive",
}

var bankExportCmd = &cobra.Command{
	Use:   "export [destination]",
	Short: "Package all assigned cue sounds into a .soundbank archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := openBank()
		if err != nil {
			return err
		}

		out, err := bank.Export(args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Printf("Exported soundbank to %s\n", out)
		return nil
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import [archive]",
	Short: "Load cue sounds from a .soundbank archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := openBank()
		if err != nil {
			return err
		}

		if err := bank.Import(args[0]); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Imported soundbank from %s\n", args[0])
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankImportCmd)
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beaumcc/cap-generator/pkg/convert"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [files or directories]",
	Short: "Convert season XML exports to CAP files",
	Long: `encode reads season-export XML documents and writes one CAP file per
input, named after the input with a .cap extension. The provider
(TAS or PrestoSports) is detected from each document's source marker
unless --source forces one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}
		return convert.Run(args, convert.Encode, opts)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

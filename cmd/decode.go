package cmd

import (
	"github.com/spf13/cobra"

	"github.com/beaumcc/cap-generator/pkg/convert"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [files or directories]",
	Short: "Decode CAP files into labeled text reports",
	Long: `decode reads CAP statistics files and writes one .txt report per input:
the header fields with their byte offsets, the embedded opponent stat
vector, and every player record with each of its 96 counters labeled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions(cmd)
		if err != nil {
			return err
		}
		return convert.Run(args, convert.Decode, opts)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

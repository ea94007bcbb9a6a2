package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/beaumcc/cap-generator/pkg/config"
	"github.com/beaumcc/cap-generator/pkg/convert"
	"github.com/beaumcc/cap-generator/pkg/season"
)

// Persistent conversion flags, shared by encode and decode.
var (
	flagOutput         string
	flagConfig         string
	flagSource         string
	flagAggregateRoles bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capgen",
	Short: "Convert season statistics between XML exports and CAP files",
	Long: `capgen converts season-export XML documents (TAS or PrestoSports)
into legacy CAP statistics files, and decodes CAP files into labeled
text reports.

Arguments may be files or directories; a directory contributes every
matching file it directly contains, and no argument means the current
directory. Each input converts independently: one bad file is reported
and skipped, the rest of the batch still runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called once, by main.main().
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagOutput, "output", "o", "", "output directory (default: alongside each input)")
	pf.StringVar(&flagConfig, "config", "", "YAML configuration file")
	pf.StringVar(&flagSource, "source", "", "force the provider adapter: tas or presto")
	pf.BoolVar(&flagAggregateRoles, "aggregate-roles", false, "store team games played in the record role byte")

	// Graft glog's flag set so --v, --logtostderr and friends work.
	pf.AddGoFlagSet(goflag.CommandLine)
}

// buildOptions merges the configuration file, when one is named, with the
// explicitly set flags; flags win.
func buildOptions(cmd *cobra.Command) (convert.Options, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return convert.Options{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = flagOutput
	}
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
	if flags.Changed("aggregate-roles") {
		cfg.AggregateRoles = flagAggregateRoles
	}

	opts := convert.Options{
		OutDir:         cfg.OutputDir,
		AggregateRoles: cfg.AggregateRoles,
	}
	if cfg.Source != "" {
		adapter, ok := season.ByName(cfg.Source)
		if !ok {
			return convert.Options{}, fmt.Errorf("unknown source %q (accepted: tas, presto)", cfg.Source)
		}
		opts.Adapter = adapter
	}
	return opts, nil
}

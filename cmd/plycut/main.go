// Command plycut is the plywood cut list optimizer: it packs requested
// pieces onto stock sheets and reports the resulting layouts.
package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/piwi3910/plycut/internal/logger"
)

var (
	logLevel  string
	logPretty bool
)

func main() {
	root := &cobra.Command{
		Use:   "plycut",
		Short: "Plywood cut list optimizer",
		Long: `plycut packs a cut list of rectangular pieces onto stock sheets using a
heuristic 2D bin-packing engine with kerf and grain support.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel, logPretty)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&logPretty, "log-pretty", true, "Human-readable log output")

	// Accept underscore spellings of flag names.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(newOptimizeCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

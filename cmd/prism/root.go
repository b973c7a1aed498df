package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/logging"
	"prism/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
	dbPath    string
}

var rootCmd = &cobra.Command{
	Use:   "prism",
	Short: "Dataset analytics engine",
	Long: "Prism runs analytical algorithms (PageRank, connected components,\n" +
		"normalization) over stored tabular and graph datasets, standalone or\n" +
		"chained into pipelines.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringVar(&rootFlags.dbPath, "db", store.DefaultDBPath, "Path to the dataset store")

	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"prism/internal/display"
	"prism/pkg/algorithms"
	"prism/pkg/dataset"
)

var algorithmsFlags struct {
	kind string
}

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List the available algorithms",
	RunE:  runAlgorithms,
}

func init() {
	algorithmsCmd.Flags().StringVar(&algorithmsFlags.kind, "kind", "", "Filter by dataset kind (tabular, graph)")
}

func runAlgorithms(cmd *cobra.Command, _ []string) error {
	reg := algorithms.Default()
	list := reg.List()
	if algorithmsFlags.kind != "" {
		list = reg.ListByKind(dataset.Kind(algorithmsFlags.kind))
	}
	display.Algorithms(cmd.OutOrStdout(), list)
	return nil
}

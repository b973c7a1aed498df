package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prism/internal/display"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show persisted execution history",
	RunE:  runResults,
}

func runResults(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.ListResults()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results yet. Run 'prism run' or 'prism pipeline' first.")
		return nil
	}
	display.Results(cmd.OutOrStdout(), list)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prism/internal/display"
	"prism/pkg/dataset"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage stored datasets",
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	RunE:  runDatasetList,
}

var datasetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a dataset's shape",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetShow,
}

var datasetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetDelete,
}

func init() {
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetShowCmd)
	datasetCmd.AddCommand(datasetDeleteCmd)
}

func runDatasetList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.ListDatasets()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No datasets stored. Run 'prism demo' to seed examples.")
		return nil
	}
	display.Datasets(cmd.OutOrStdout(), list)
	return nil
}

func runDatasetShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ds, err := st.Dataset(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:  %s\n", ds.Name())
	fmt.Fprintf(out, "Kind:  %s\n", display.Kind(string(ds.Kind())))
	switch d := ds.(type) {
	case dataset.Tabular:
		fmt.Fprintf(out, "Rows:  %d\n", d.RowCount())
		fmt.Fprintf(out, "Columns:\n")
		for _, name := range d.ColumnNames() {
			ct, _ := d.ColumnType(name)
			fmt.Fprintf(out, "  %s (%s)\n", name, ct)
		}
	case dataset.Graph:
		fmt.Fprintf(out, "Nodes: %d\n", d.NodeCount())
		fmt.Fprintf(out, "Edges: %d\n", len(d.Edges()))
	}
	return nil
}

func runDatasetDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDataset(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

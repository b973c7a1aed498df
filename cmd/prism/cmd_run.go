package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prism/internal/display"
	"prism/internal/logging"
	"prism/pkg/algorithms"
	"prism/pkg/engine"
)

var runFlags struct {
	input  string
	output string
	params []string
	save   bool
}

var runCmd = &cobra.Command{
	Use:   "run <algorithm>",
	Short: "Run one algorithm against a stored dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.input, "input", "", "Input dataset name (required)")
	f.StringVar(&runFlags.output, "output", "", "Output dataset name override")
	f.StringArrayVarP(&runFlags.params, "param", "p", nil, "Algorithm parameter as key=value (repeatable)")
	f.BoolVar(&runFlags.save, "save", true, "Persist the output dataset and result record")

	_ = runCmd.MarkFlagRequired("input")
}

func runRun(cmd *cobra.Command, args []string) error {
	alg, err := algorithms.Default().Get(args[0])
	if err != nil {
		return err
	}
	params, err := parseParams(runFlags.params)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ds, err := st.Dataset(runFlags.input)
	if err != nil {
		return err
	}

	b := engine.NewContext().
		WithParameters(params).
		WithCancellation(cmd.Context()).
		WithStore(st).
		WithObserver(&engine.LogObserver{Logger: logging.New("engine")})
	if runFlags.output != "" {
		b.WithOutputName(runFlags.output)
	}

	res := engine.Execute(alg, ds, b.Build())
	display.ExecutionResult(cmd.OutOrStdout(), alg.Name(), res)

	if runFlags.save {
		if res.Success && res.Output != nil {
			if err := st.SaveDataset(res.Output); err != nil {
				return fmt.Errorf("save output: %w", err)
			}
		}
		if _, err := st.SaveResult(alg.Name(), ds.Name(), res); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
	}

	if !res.Success {
		return fmt.Errorf("%s failed: %s", alg.Name(), res.Error)
	}
	return nil
}

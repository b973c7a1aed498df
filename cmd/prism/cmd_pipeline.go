package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prism/internal/display"
	"prism/internal/logging"
	"prism/internal/plan"
	"prism/pkg/algorithms"
	"prism/pkg/engine"
)

var pipelineFlags struct {
	across  []string
	workers int
}

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <plan.yaml>",
	Short: "Run a pipeline plan",
	Long: "Loads a YAML plan, compiles it against the algorithm registry, and\n" +
		"executes it over the plan's input dataset. With --across, the same\n" +
		"pipeline runs over several datasets concurrently.",
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	f := pipelineCmd.Flags()
	f.StringSliceVar(&pipelineFlags.across, "across", nil, "Run over these datasets instead of the plan's input")
	f.IntVar(&pipelineFlags.workers, "workers", 4, "Worker pool size for --across")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	pipeline, err := plan.Build(p, algorithms.Default())
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if len(pipelineFlags.across) > 0 {
		outcomes := plan.RunAcross(cmd.Context(), st, pipeline, pipelineFlags.across, pipelineFlags.workers)
		failures := 0
		for _, o := range outcomes {
			fmt.Fprintf(out, "\n== %s ==\n", o.Input)
			if o.Err != nil {
				fmt.Fprintf(out, "error: %v\n", o.Err)
				failures++
				continue
			}
			display.PipelineResult(out, pipeline, o.Result)
			if !o.Result.Success {
				failures++
			}
		}
		if failures > 0 {
			return fmt.Errorf("pipeline %s: %d of %d runs failed", p.Name, failures, len(outcomes))
		}
		return nil
	}

	ds, err := st.Dataset(p.Input)
	if err != nil {
		return err
	}
	base := engine.NewContext().
		WithCancellation(cmd.Context()).
		WithStore(st).
		WithObserver(&engine.LogObserver{Logger: logging.New("pipeline")}).
		Build()

	res := pipeline.Execute(ds, base)
	display.PipelineResult(out, pipeline, res)

	if res.Success && res.Output != nil {
		if err := st.SaveDataset(res.Output); err != nil {
			return fmt.Errorf("save output: %w", err)
		}
	}
	if !res.Success {
		return fmt.Errorf("pipeline %s failed at step %d: %s", p.Name, res.FailedStep, res.Error)
	}
	return nil
}

package plan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"prism/internal/logging"
	"prism/internal/store"
	"prism/pkg/engine"
)

// RunOutcome is one input dataset's pipeline run: the result, or the error
// that prevented the run from starting (dataset load failures, mostly).
type RunOutcome struct {
	Input  string
	Result engine.PipelineResult
	Err    error
}

// RunAcross executes the pipeline over several stored datasets with a
// bounded worker pool. Each run stays single-threaded internally; only runs
// over distinct inputs proceed concurrently. Successful outputs are saved
// back to the store. Outcomes line up with the inputs slice.
func RunAcross(ctx context.Context, st store.Store, p *engine.Pipeline, inputs []string, workers int) []RunOutcome {
	if workers < 1 {
		workers = 1
	}
	logger := logging.New("plan")
	outcomes := make([]RunOutcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range inputs {
		g.Go(func() error {
			outcomes[i] = runOne(gctx, st, p, name)
			return nil
		})
	}
	_ = g.Wait() // errors captured per outcome

	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			logger.Error("run skipped", "input", o.Input, "error", o.Err)
		case !o.Result.Success:
			logger.Warn("run failed", "input", o.Input, "step", o.Result.FailedStep, "error", o.Result.Error)
		default:
			logger.Info("run completed", "input", o.Input, "duration", o.Result.Duration)
		}
	}
	return outcomes
}

func runOne(ctx context.Context, st store.Store, p *engine.Pipeline, name string) RunOutcome {
	ds, err := st.Dataset(name)
	if err != nil {
		return RunOutcome{Input: name, Err: err}
	}

	base := engine.NewContext().
		WithCancellation(ctx).
		WithStore(st).
		Build()
	res := p.Execute(ds, base)

	if res.Success && res.Output != nil {
		if err := st.SaveDataset(res.Output); err != nil {
			return RunOutcome{Input: name, Result: res, Err: err}
		}
	}
	return RunOutcome{Input: name, Result: res}
}

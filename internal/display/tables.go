package display

import (
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"prism/internal/store"
	"prism/pkg/engine"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// Datasets renders the store catalog.
func Datasets(w io.Writer, list []store.DatasetInfo) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Kind", "Updated"})
	for _, info := range list {
		t.AppendRow(table.Row{info.Name, Kind(string(info.Kind)), info.UpdatedAt})
	}
	t.Render()
}

// Algorithms renders a registry listing with each algorithm's kind and
// parameter schema.
func Algorithms(w io.Writer, algs []engine.Algorithm) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Algorithm", "Kind", "Parameters", "Description"})
	for _, alg := range algs {
		params := alg.Parameters()
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		t.AppendRow(table.Row{
			AlgorithmWithKey(alg.Name()),
			Kind(string(alg.Kind())),
			joinOrDash(names),
			alg.Description(),
		})
	}
	t.Render()
}

// ExecutionResult renders one algorithm result: the status line and its
// metrics, keys sorted.
func ExecutionResult(w io.Writer, algorithm string, res engine.Result) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Algorithm", "Status", "Duration", "Output"})
	output := "-"
	if res.Output != nil {
		output = res.Output.Name()
	}
	t.AppendRow(table.Row{AlgorithmName(algorithm), Status(res.Success), Duration(res.Duration), output})
	t.Render()

	if !res.Success {
		return
	}
	Metrics(w, res.Metrics)
}

// Metrics renders a metrics map with keys sorted.
func Metrics(w io.Writer, metrics map[string]any) {
	if len(metrics) == 0 {
		return
	}
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := newTable(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, MetricValue(metrics[k])})
	}
	t.Render()
}

// PipelineResult renders a pipeline run: one row per executed step, then
// the flattened metrics.
func PipelineResult(w io.Writer, p *engine.Pipeline, res engine.PipelineResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Algorithm", "Status", "Duration", "Error"})
	names := p.StepNames()
	for i, step := range res.StepResults {
		name := ""
		if i < len(names) {
			name = AlgorithmName(names[i])
		}
		errMsg := "-"
		if step.Error != "" {
			errMsg = step.Error
		}
		t.AppendRow(table.Row{i, name, Status(step.Success), Duration(step.Duration), errMsg})
	}
	t.Render()

	if res.Success {
		Metrics(w, res.FlatMetrics())
	}
}

// Results renders persisted execution history.
func Results(w io.Writer, list []store.ResultRecord) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Algorithm", "Input", "Output", "Status", "Duration", "When"})
	for _, r := range list {
		output := r.Output
		if output == "" {
			output = "-"
		}
		t.AppendRow(table.Row{r.ID, AlgorithmName(r.Algorithm), r.Input, output, Status(r.Success), r.Duration, r.CreatedAt})
	}
	t.Render()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

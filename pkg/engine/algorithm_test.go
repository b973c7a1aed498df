package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prism/pkg/dataset"
)

// doubler is a minimal tabular algorithm used to exercise the base template.
type doubler struct {
	Info
	fail   error
	panics bool
}

func newDoubler() *doubler {
	return &doubler{Info: NewInfo("doubler", "doubles the value column", dataset.KindTabular,
		ParamSpec{Name: "column", Type: TypeString, Required: true},
	)}
}

func (d *doubler) RunTabular(tab dataset.Tabular, c *Context) (dataset.Dataset, map[string]any, error) {
	if d.panics {
		panic("boom")
	}
	if d.fail != nil {
		return nil, nil, d.fail
	}
	column, err := RequiredParam[string](c, "column")
	if err != nil {
		return nil, nil, err
	}
	values, err := tab.NumericColumn(column)
	if err != nil {
		return nil, nil, err
	}
	for i := range values {
		values[i] *= 2
	}
	out := dataset.NewTable(c.OutputName(tab.Name() + "-doubled"))
	if err := out.AddNumericColumn(column, values); err != nil {
		return nil, nil, err
	}
	c.ReportProgress(1)
	return out, map[string]any{"rows": len(values)}, nil
}

// counter is a metrics-only graph algorithm.
type counter struct{ Info }

func newCounter() *counter {
	return &counter{Info: NewInfo("counter", "counts nodes", dataset.KindGraph)}
}

func (a *counter) RunGraph(g dataset.Graph, c *Context) (dataset.Dataset, map[string]any, error) {
	return nil, map[string]any{"nodeCount": g.NodeCount()}, nil
}

func numericTable(t *testing.T, name string, values []float64) *dataset.Table {
	t.Helper()
	tab := dataset.NewTable(name)
	if err := tab.AddNumericColumn("value", values); err != nil {
		t.Fatalf("AddNumericColumn: %v", err)
	}
	return tab
}

func mustGraph(t *testing.T, nodes []string, edges [][2]string) *dataset.PropertyGraph {
	t.Helper()
	g := dataset.NewGraph("g")
	for _, id := range nodes {
		if err := g.AddNode(id, nil); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1], nil); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestExecute_Success(t *testing.T) {
	tab := numericTable(t, "input", []float64{1, 2})
	c := NewContext().WithParameter("column", "value").Build()

	res := Execute(newDoubler(), tab, c)
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Error)
	}
	if res.Error != "" {
		t.Errorf("Error = %q, want empty on success", res.Error)
	}
	if res.Output == nil {
		t.Fatal("expected an output dataset")
	}
	if got := res.Metadata["algorithm"]; got != "doubler" {
		t.Errorf("metadata algorithm = %q, want doubler", got)
	}
	if got := res.Metadata["input"]; got != "input" {
		t.Errorf("metadata input = %q, want input", got)
	}
	if res.Duration <= 0 {
		t.Error("expected a positive duration")
	}
	if rows, ok := res.Metric("rows"); !ok || rows != 2 {
		t.Errorf("metric rows = %v, %v; want 2, true", rows, ok)
	}
}

func TestExecute_KindMismatch(t *testing.T) {
	g := dataset.NewGraph("net")
	res := Execute(newDoubler(), g, NewContext().WithParameter("column", "value").Build())

	if res.Success {
		t.Fatal("expected failure for kind mismatch")
	}
	if !strings.Contains(res.Error, "not compatible") {
		t.Errorf("error %q should contain %q", res.Error, "not compatible")
	}
	want := "net (kind=graph) is not compatible with doubler (expects tabular)"
	if res.Error != want {
		t.Errorf("error = %q, want %q", res.Error, want)
	}
	if res.Output != nil {
		t.Error("failed result must carry no output dataset")
	}
}

func TestExecute_ValidationCollectsAllViolations(t *testing.T) {
	alg := &doubler{Info: NewInfo("strict", "", dataset.KindTabular,
		ParamSpec{Name: "first", Required: true},
		ParamSpec{Name: "second", Required: true},
	)}
	res := Execute(alg, numericTable(t, "t", nil), NewContext().Build())

	if res.Success {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(res.Error, `"first"`) || !strings.Contains(res.Error, `"second"`) {
		t.Errorf("error %q should report both missing parameters", res.Error)
	}
}

func TestExecute_CancelledBeforeRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewContext().WithParameter("column", "value").WithCancellation(ctx).Build()

	trace := &TraceCollector{}
	cObs := NewContext().WithParameter("column", "value").WithCancellation(ctx).WithObserver(trace).Build()

	res := Execute(newDoubler(), numericTable(t, "t", []float64{1}), c)
	if res.Success || !strings.Contains(res.Error, "cancelled") {
		t.Errorf("result = %+v, want cancelled failure", res)
	}

	// A pre-flight cancellation fires no lifecycle events.
	Execute(newDoubler(), numericTable(t, "t", []float64{1}), cObs)
	if got := len(trace.Events()); got != 0 {
		t.Errorf("expected no events for pre-flight cancellation, got %d", got)
	}
}

func TestExecute_RoutineErrorBecomesFailure(t *testing.T) {
	alg := newDoubler()
	alg.fail = errors.New("column exploded")
	c := NewContext().WithParameter("column", "value").Build()

	res := Execute(alg, numericTable(t, "t", []float64{1}), c)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "column exploded") {
		t.Errorf("error = %q, want routine message", res.Error)
	}
}

func TestExecute_RoutineCancellation(t *testing.T) {
	alg := newDoubler()
	alg.fail = context.Canceled
	c := NewContext().WithParameter("column", "value").Build()

	res := Execute(alg, numericTable(t, "t", []float64{1}), c)
	if res.Success || !strings.Contains(res.Error, "cancelled") {
		t.Errorf("result = %+v, want cancelled failure", res)
	}
}

func TestExecute_PanicRecovered(t *testing.T) {
	alg := newDoubler()
	alg.panics = true
	c := NewContext().WithParameter("column", "value").Build()

	res := Execute(alg, numericTable(t, "t", []float64{1}), c)
	if res.Success {
		t.Fatal("expected failure from panic")
	}
	if !strings.Contains(res.Error, "panic") || !strings.Contains(res.Error, "boom") {
		t.Errorf("error = %q, want panic message", res.Error)
	}
}

func TestExecute_EmitsLifecycleEvents(t *testing.T) {
	trace := &TraceCollector{}
	c := NewContext().WithParameter("column", "value").WithObserver(trace).Build()

	Execute(newDoubler(), numericTable(t, "t", []float64{1}), c)

	events := trace.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventAlgorithmStarted || events[0].Algorithm != "doubler" {
		t.Errorf("events[0] = %+v, want algorithm_started for doubler", events[0])
	}
	if events[1].Type != EventAlgorithmCompleted || !events[1].Success {
		t.Errorf("events[1] = %+v, want successful algorithm_completed", events[1])
	}

	// Failures emit a completed event with the error message.
	trace.Reset()
	alg := newDoubler()
	alg.fail = errors.New("bad")
	Execute(alg, numericTable(t, "t", []float64{1}), c)
	completed := trace.EventsOfType(EventAlgorithmCompleted)
	if len(completed) != 1 || completed[0].Success || completed[0].Error == "" {
		t.Errorf("completed = %+v, want one failed completion with error", completed)
	}
}

func TestExecute_InputNotMutated(t *testing.T) {
	tab := numericTable(t, "input", []float64{1, 2, 3})
	c := NewContext().WithParameter("column", "value").Build()

	res := Execute(newDoubler(), tab, c)
	if !res.Success {
		t.Fatalf("Execute failed: %s", res.Error)
	}

	values, err := tab.NumericColumn("value")
	if err != nil {
		t.Fatalf("NumericColumn: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if values[i] != want {
			t.Fatalf("input mutated: values[%d] = %v, want %v", i, values[i], want)
		}
	}
}

func TestInfo_Defaults(t *testing.T) {
	info := NewInfo("any", "", dataset.KindAny)
	if !info.CanExecute(dataset.NewGraph("g")) || !info.CanExecute(dataset.NewTable("t")) {
		t.Error("KindAny must accept every dataset kind")
	}

	graphOnly := NewInfo("g", "", dataset.KindGraph)
	if graphOnly.CanExecute(dataset.NewTable("t")) {
		t.Error("graph algorithm must reject tabular datasets")
	}
}

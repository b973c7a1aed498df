package plan

import (
	"strings"
	"testing"

	"prism/pkg/algorithms"
)

const rankPlan = `
name: rank
description: score the network
input: net
vars:
  damping: 0.9
  iterations: 50
steps:
  - algorithm: pagerank
    params:
      dampingFactor: "=vars.damping"
      maxIterations: "=vars.iterations"
    output: net-ranked
  - algorithm: connectedcomponents
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(rankPlan))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "rank" || p.Input != "net" {
		t.Errorf("header = %q/%q, want rank/net", p.Name, p.Input)
	}
	if len(p.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(p.Steps))
	}
	if p.Steps[0].Output != "net-ranked" {
		t.Errorf("step 0 output = %q, want net-ranked", p.Steps[0].Output)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"no name", "input: x\nsteps: [{algorithm: a}]", "missing name"},
		{"no input", "name: p\nsteps: [{algorithm: a}]", "missing input"},
		{"no steps", "name: p\ninput: x", "no steps"},
		{"empty algorithm", "name: p\ninput: x\nsteps: [{output: y}]", "no algorithm"},
		{"bad yaml", "name: [", "parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want substring %q", err, tc.want)
			}
		})
	}
}

func TestBuild_ResolvesExpressions(t *testing.T) {
	p, err := Parse([]byte(rankPlan))
	if err != nil {
		t.Fatal(err)
	}
	pipeline, err := Build(p, algorithms.NewRegistry())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if pipeline.StepCount() != 2 {
		t.Errorf("StepCount = %d, want 2", pipeline.StepCount())
	}
	if names := pipeline.StepNames(); names[0] != "pagerank" || names[1] != "connectedcomponents" {
		t.Errorf("step names = %v", names)
	}
}

func TestBuild_UnknownAlgorithm(t *testing.T) {
	p, err := Parse([]byte("name: p\ninput: x\nsteps: [{algorithm: nonsense}]"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(p, algorithms.NewRegistry()); err == nil {
		t.Fatal("expected unknown-algorithm error")
	}
}

func TestBuild_BrokenExpression(t *testing.T) {
	doc := `
name: p
input: x
steps:
  - algorithm: pagerank
    params:
      dampingFactor: "=vars.damping +"
`
	p, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(p, algorithms.NewRegistry()); err == nil {
		t.Fatal("expected expression error at build time")
	}
}

func TestResolveParams_PlainValuesPassThrough(t *testing.T) {
	params, err := resolveParams(map[string]any{
		"tolerance": 1e-3,
		"note":      "plain string",
		"computed":  "=1 + 2",
	}, nil)
	if err != nil {
		t.Fatalf("resolveParams: %v", err)
	}
	if params["tolerance"] != 1e-3 {
		t.Errorf("tolerance = %v", params["tolerance"])
	}
	if params["note"] != "plain string" {
		t.Errorf("note = %v", params["note"])
	}
	if params["computed"] != 3 {
		t.Errorf("computed = %v (%T), want 3", params["computed"], params["computed"])
	}
}

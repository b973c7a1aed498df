package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{
		"dampingFactor=0.9",
		"maxIterations=50",
		"directed=true",
		"columns=score,age",
		"note=hello",
	})
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}

	want := map[string]any{
		"dampingFactor": 0.9,
		"maxIterations": 50,
		"directed":      true,
		"columns":       []string{"score", "age"},
		"note":          "hello",
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParseParams_Invalid(t *testing.T) {
	if _, err := parseParams([]string{"noequals"}); err == nil {
		t.Error("expected error for missing '='")
	}
	if _, err := parseParams([]string{"=value"}); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestParseParams_Empty(t *testing.T) {
	params, err := parseParams(nil)
	if err != nil {
		t.Fatal(err)
	}
	if params != nil {
		t.Errorf("expected nil map, got %v", params)
	}
}

// Package plan loads declarative pipeline plans from YAML and compiles them
// into executable pipelines against an algorithm registry. Parameter values
// prefixed with "=" are expressions evaluated against the plan's vars block,
// so one plan file can be tuned without editing each step.
package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StepDef is one step of a plan: the algorithm to run, its parameters, and
// an optional output dataset name.
type StepDef struct {
	Algorithm string         `yaml:"algorithm"`
	Params    map[string]any `yaml:"params,omitempty"`
	Output    string         `yaml:"output,omitempty"`
}

// Plan is the YAML document: a named pipeline over an input dataset.
type Plan struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Input       string         `yaml:"input"`
	Vars        map[string]any `yaml:"vars,omitempty"`
	Steps       []StepDef      `yaml:"steps"`
}

// Parse decodes and validates a plan document.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("plan: parse: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}
	return Parse(data)
}

func (p *Plan) validate() error {
	if p.Name == "" {
		return fmt.Errorf("plan: missing name")
	}
	if p.Input == "" {
		return fmt.Errorf("plan %q: missing input dataset", p.Name)
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan %q: no steps", p.Name)
	}
	for i, s := range p.Steps {
		if s.Algorithm == "" {
			return fmt.Errorf("plan %q: step %d has no algorithm", p.Name, i)
		}
	}
	return nil
}

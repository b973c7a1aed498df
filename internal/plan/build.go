package plan

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"

	"prism/pkg/engine"
)

// Build compiles the plan into a pipeline against the registry. Unknown
// algorithm names and broken parameter expressions fail here, before
// anything executes.
func Build(p *Plan, reg *engine.Registry) (*engine.Pipeline, error) {
	pipeline := engine.NewPipeline(p.Name)
	for i, def := range p.Steps {
		alg, err := reg.Get(def.Algorithm)
		if err != nil {
			return nil, fmt.Errorf("plan %q: step %d: %w", p.Name, i, err)
		}
		params, err := resolveParams(def.Params, p.Vars)
		if err != nil {
			return nil, fmt.Errorf("plan %q: step %d (%s): %w", p.Name, i, def.Algorithm, err)
		}
		output := def.Output
		pipeline.Add(engine.Step{
			Algorithm: alg,
			Configure: func(b *engine.Builder) {
				b.WithParameters(params)
				if output != "" {
					b.WithOutputName(output)
				}
			},
		})
	}
	return pipeline, nil
}

// resolveParams evaluates "="-prefixed string values as expressions against
// {vars: plan vars}. Everything else passes through untouched.
func resolveParams(params, vars map[string]any) (map[string]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	env := map[string]any{"vars": vars}
	out := make(map[string]any, len(params))
	for name, value := range params {
		s, ok := value.(string)
		if !ok || !strings.HasPrefix(s, "=") {
			out[name] = value
			continue
		}
		result, err := expr.Eval(strings.TrimPrefix(s, "="), env)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", name, err)
		}
		out[name] = result
	}
	return out, nil
}

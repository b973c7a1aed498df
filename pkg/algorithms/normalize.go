package algorithms

import (
	"fmt"

	"prism/pkg/dataset"
	"prism/pkg/engine"
)

// MinMaxNormalize defaults.
const (
	DefaultRangeMin = 0.0
	DefaultRangeMax = 1.0
)

// MinMaxNormalize rescales numeric columns into [rangeMin, rangeMax]. With
// no explicit column subset, every numeric column is normalized. Columns
// not selected, numeric or string, are copied unchanged. A degenerate
// column whose values are all equal maps to rangeMin; that is policy, not
// an error.
type MinMaxNormalize struct {
	engine.Info
}

// NewMinMaxNormalize constructs the algorithm with its declared parameters.
func NewMinMaxNormalize() *MinMaxNormalize {
	return &MinMaxNormalize{Info: engine.NewInfo(
		"minmaxnormalize",
		"Per-column min-max rescaling into a target range",
		dataset.KindTabular,
		engine.ParamSpec{Name: "columns", Description: "explicit column subset (default: all numeric columns)", Type: engine.TypeStringList},
		engine.ParamSpec{Name: "rangeMin", Description: "target range lower bound", Type: engine.TypeFloat, Default: DefaultRangeMin},
		engine.ParamSpec{Name: "rangeMax", Description: "target range upper bound", Type: engine.TypeFloat, Default: DefaultRangeMax},
	)}
}

// ValidateParameters extends the default required-parameter policy with the
// range constraint: rangeMax must be strictly greater than rangeMin.
func (a *MinMaxNormalize) ValidateParameters(c *engine.Context) []string {
	violations := a.Info.ValidateParameters(c)
	rangeMin := engine.Param(c, "rangeMin", DefaultRangeMin)
	rangeMax := engine.Param(c, "rangeMax", DefaultRangeMax)
	if rangeMax <= rangeMin {
		violations = append(violations,
			fmt.Sprintf("rangeMax (%g) must be strictly greater than rangeMin (%g)", rangeMax, rangeMin))
	}
	return violations
}

// RunTabular builds the normalized output table. Requesting a missing or
// non-numeric column, or having no numeric column at all, fails before any
// output is constructed.
func (a *MinMaxNormalize) RunTabular(tab dataset.Tabular, c *engine.Context) (dataset.Dataset, map[string]any, error) {
	rangeMin := engine.Param(c, "rangeMin", DefaultRangeMin)
	rangeMax := engine.Param(c, "rangeMax", DefaultRangeMax)

	// A present but unconvertible subset is an error, not a silent
	// fall-through to all-columns.
	var requested []string
	if c.Has("columns") {
		cols, err := engine.RequiredParam[[]string](c, "columns")
		if err != nil {
			return nil, nil, fmt.Errorf("minmaxnormalize: %w", err)
		}
		requested = cols
	}

	targets := make(map[string]bool)
	if len(requested) > 0 {
		for _, name := range requested {
			ct, ok := tab.ColumnType(name)
			if !ok {
				return nil, nil, fmt.Errorf("minmaxnormalize: column %q does not exist in %q", name, tab.Name())
			}
			if ct != dataset.ColumnNumeric {
				return nil, nil, fmt.Errorf("minmaxnormalize: column %q is not numeric", name)
			}
			targets[name] = true
		}
	} else {
		for _, name := range tab.ColumnNames() {
			if ct, _ := tab.ColumnType(name); ct == dataset.ColumnNumeric {
				targets[name] = true
			}
		}
		if len(targets) == 0 {
			return nil, nil, fmt.Errorf("minmaxnormalize: table %q has no numeric columns", tab.Name())
		}
	}

	output := dataset.NewTable(c.OutputName(tab.Name() + "-normalized"))
	columnStats := make(map[string]map[string]float64, len(targets))
	names := tab.ColumnNames()

	for i, name := range names {
		if !targets[name] {
			if err := copyColumn(output, tab, name); err != nil {
				return nil, nil, err
			}
			c.ReportProgress(float64(i+1) / float64(len(names)))
			continue
		}

		values, err := tab.NumericColumn(name)
		if err != nil {
			return nil, nil, err
		}

		// A zero-row column is degenerate: nothing to rescale.
		colMin, colMax := 0.0, 0.0
		if len(values) > 0 {
			colMin, colMax = values[0], values[0]
			for _, v := range values[1:] {
				if v < colMin {
					colMin = v
				}
				if v > colMax {
					colMax = v
				}
			}
		}

		if colMax > colMin {
			scale := (rangeMax - rangeMin) / (colMax - colMin)
			for j, v := range values {
				values[j] = (v-colMin)*scale + rangeMin
			}
		} else {
			for j := range values {
				values[j] = rangeMin
			}
		}

		if err := output.AddNumericColumn(name, values); err != nil {
			return nil, nil, err
		}
		columnStats[name] = map[string]float64{
			"originalMin":   colMin,
			"originalMax":   colMax,
			"originalRange": colMax - colMin,
		}
		c.ReportProgress(float64(i+1) / float64(len(names)))
	}

	metrics := map[string]any{
		"columnsNormalized": len(targets),
		"totalColumns":      len(names),
		"rangeMin":          rangeMin,
		"rangeMax":          rangeMax,
		"columnStats":       columnStats,
	}
	return output, metrics, nil
}

// copyColumn carries an untouched column into the output table.
func copyColumn(dst *dataset.Table, src dataset.Tabular, name string) error {
	ct, _ := src.ColumnType(name)
	switch ct {
	case dataset.ColumnNumeric:
		values, err := src.NumericColumn(name)
		if err != nil {
			return err
		}
		return dst.AddNumericColumn(name, values)
	case dataset.ColumnString:
		values, err := src.StringColumn(name)
		if err != nil {
			return err
		}
		return dst.AddStringColumn(name, values)
	default:
		return fmt.Errorf("minmaxnormalize: column %q has unknown type %q", name, ct)
	}
}

package preprocess

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/rulprep/rulprep/internal/dataset"
)

// MinMax holds per-column scaling statistics fitted on a training table.
// The same statistics must be applied to the matching test table; never
// refit on test data.
type MinMax struct {
	Columns []string
	Min     []float64
	Max     []float64
}

// Fit computes per-column min and max over every row of t.
func Fit(t *dataset.Table) (*MinMax, error) {
	if t.Len() == 0 {
		return nil, &dataset.ValidationError{
			File: t.Subset,
			Msg:  "cannot fit scaler on an empty table",
		}
	}
	m := &MinMax{
		Columns: append([]string(nil), t.Columns...),
		Min:     make([]float64, len(t.Columns)),
		Max:     make([]float64, len(t.Columns)),
	}
	for j := range t.Columns {
		col := t.Column(j)
		m.Min[j] = floats.Min(col)
		m.Max[j] = floats.Max(col)
	}
	return m, nil
}

// Transform returns a copy of t with every feature column rescaled by
// (value − min) / (max − min). A degenerate column (max == min) scales to 0
// for every row — the division-by-zero fallback is explicit and
// deterministic, not left to runtime float behavior. Values are not clipped:
// test readings outside the training range map outside [0, 1].
func (m *MinMax) Transform(t *dataset.Table) (*dataset.Table, error) {
	if len(t.Columns) != len(m.Columns) {
		return nil, fmt.Errorf("preprocess: scaler fitted on %d columns, table has %d",
			len(m.Columns), len(t.Columns))
	}
	out := t.Clone()
	for j := range m.Columns {
		span := m.Max[j] - m.Min[j]
		for i := range out.Values {
			if span == 0 {
				out.Values[i][j] = 0
				continue
			}
			out.Values[i][j] = (out.Values[i][j] - m.Min[j]) / span
		}
	}
	return out, nil
}

package preprocess

import (
	"fmt"

	"github.com/rulprep/rulprep/internal/dataset"
)

// LabelTraining attaches an RUL column to a run-to-failure training table.
// A unit's last observed cycle is its failure cycle, so each row's label is
// (failure cycle − current cycle): non-negative, decreasing by exactly one
// per cycle, zero at the final row of the unit.
func LabelTraining(t *dataset.Table) {
	failureCycle := make(map[int]int, 128)
	for i, u := range t.Units {
		if c := t.Cycles[i]; c > failureCycle[u] {
			failureCycle[u] = c
		}
	}

	t.RUL = make([]float64, t.Len())
	for i, u := range t.Units {
		t.RUL[i] = float64(failureCycle[u] - t.Cycles[i])
	}
}

// TruncateTest reduces a test table to one row per unit — the last observed
// cycle — and labels it with the ground-truth RUL supplied for that unit.
// truth is aligned with the units' order of first appearance in the table.
func TruncateTest(t *dataset.Table, truth []float64) (*dataset.Table, error) {
	order := t.UnitOrder()
	if len(truth) != len(order) {
		return nil, &dataset.ValidationError{
			File: t.Subset,
			Msg: fmt.Sprintf("ground truth has %d values for %d test units",
				len(truth), len(order)),
		}
	}

	// Index of the row holding each unit's highest observed cycle.
	lastRow := make(map[int]int, len(order))
	for i, u := range t.Units {
		j, ok := lastRow[u]
		if !ok || t.Cycles[i] > t.Cycles[j] {
			lastRow[u] = i
		}
	}

	out := &dataset.Table{
		Subset:  t.Subset,
		Columns: append([]string(nil), t.Columns...),
		Units:   make([]int, 0, len(order)),
		Cycles:  make([]int, 0, len(order)),
		Values:  make([][]float64, 0, len(order)),
		RUL:     make([]float64, 0, len(order)),
	}
	for k, u := range order {
		i := lastRow[u]
		out.Units = append(out.Units, u)
		out.Cycles = append(out.Cycles, t.Cycles[i])
		out.Values = append(out.Values, append([]float64(nil), t.Values[i]...))
		out.RUL = append(out.RUL, truth[k])
	}
	return out, nil
}

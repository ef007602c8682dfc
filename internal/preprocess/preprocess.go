package preprocess

import (
	"fmt"
	"log/slog"

	"github.com/rulprep/rulprep/internal/dataset"
)

// Result is the model-ready output for a whole run: one labeled, scaled
// training table and one truncated test table per subset, in subset order,
// plus the shared ordered feature column names.
type Result struct {
	Subsets        []string
	Train          []*dataset.Table
	Test           []*dataset.Table
	FeatureColumns []string
}

// Run loads and preprocesses every named subset from dir. Subsets are
// processed independently — scaling statistics never cross subsets — and
// sequentially, so diagnostic output is deterministic. An empty subsets
// slice means the full corpus.
func Run(dir string, names []string) (*Result, error) {
	if len(names) == 0 {
		names = dataset.Subsets()
	}
	for _, name := range names {
		if !dataset.ValidSubset(name) {
			return nil, fmt.Errorf("preprocess: unknown subset %q", name)
		}
	}

	res := &Result{
		Subsets:        append([]string(nil), names...),
		FeatureColumns: dataset.FeatureColumns(),
	}
	for _, name := range names {
		train, test, err := runSubset(dir, name)
		if err != nil {
			return nil, err
		}
		res.Train = append(res.Train, train)
		res.Test = append(res.Test, test)
	}
	return res, nil
}

// runSubset performs the full transform for one subset: label, fit, scale
// the training table; truncate, label and scale the test table with the
// training statistics.
func runSubset(dir, name string) (train, test *dataset.Table, err error) {
	sub, err := dataset.LoadSubset(dir, name)
	if err != nil {
		return nil, nil, err
	}

	LabelTraining(sub.Train)

	scaler, err := Fit(sub.Train)
	if err != nil {
		return nil, nil, err
	}
	train, err = scaler.Transform(sub.Train)
	if err != nil {
		return nil, nil, err
	}

	truncated, err := TruncateTest(sub.Test, sub.TruthRUL)
	if err != nil {
		return nil, nil, err
	}
	test, err = scaler.Transform(truncated)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("preprocess: subset complete",
		"subset", name,
		"train_rows", train.Len(),
		"test_units", test.Len(),
	)
	return train, test, nil
}

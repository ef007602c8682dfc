package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rulprep/rulprep/internal/dataset"
	"github.com/rulprep/rulprep/internal/preprocess"
)

// WriteTable writes t to path as CSV with the header
// unit,cycle,<feature columns...>,rul. The table must be labeled.
func WriteTable(path string, t *dataset.Table) error {
	if t.RUL == nil {
		return fmt.Errorf("export: table %s has no RUL column", t.Subset)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := append([]string{"unit", "cycle"}, t.Columns...)
	header = append(header, "rul")
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("export: write header: %w", err)
	}

	record := make([]string, 0, len(header))
	for i := 0; i < t.Len(); i++ {
		record = record[:0]
		record = append(record,
			strconv.Itoa(t.Units[i]),
			strconv.Itoa(t.Cycles[i]),
		)
		for _, v := range t.Values[i] {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		record = append(record, strconv.FormatFloat(t.RUL[i], 'g', -1, 64))
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("export: write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("export: flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteAll writes every train and test table of res under dir and returns
// the written paths in a stable order (train then test, per subset).
func WriteAll(dir string, res *preprocess.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: mkdir %s: %w", dir, err)
	}

	var paths []string
	for i, name := range res.Subsets {
		trainPath := filepath.Join(dir, "train_"+name+".csv")
		if err := WriteTable(trainPath, res.Train[i]); err != nil {
			return nil, err
		}
		testPath := filepath.Join(dir, "test_"+name+".csv")
		if err := WriteTable(testPath, res.Test[i]); err != nil {
			return nil, err
		}
		paths = append(paths, trainPath, testPath)
	}
	return paths, nil
}

package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// row builds one 26-column whitespace-delimited record with every feature
// set to fill.
func row(unit, cycle int, fill float64) string {
	fields := make([]string, 0, numRawCols)
	fields = append(fields, fmt.Sprintf("%d %d", unit, cycle))
	for i := 0; i < numSettings+numSensors; i++ {
		fields = append(fields, fmt.Sprintf("%g", fill))
	}
	return strings.Join(fields, " ")
}

// writeSubset materialises one subset triple under dir.
func writeSubset(t *testing.T, dir, name string, train, test, truth []string) {
	t.Helper()
	files := map[string][]string{
		"train_" + name + ".txt": train,
		"test_" + name + ".txt":  test,
		"RUL_" + name + ".txt":   truth,
	}
	for file, lines := range files {
		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
}

func TestFeatureColumns_OrderAndCount(t *testing.T) {
	cols := FeatureColumns()
	if len(cols) != 24 {
		t.Fatalf("len(FeatureColumns()) = %d, want 24", len(cols))
	}
	if cols[0] != "setting_1" {
		t.Errorf("cols[0] = %q, want setting_1", cols[0])
	}
	if cols[2] != "setting_3" {
		t.Errorf("cols[2] = %q, want setting_3", cols[2])
	}
	if cols[3] != "sensor_1" {
		t.Errorf("cols[3] = %q, want sensor_1", cols[3])
	}
	if cols[23] != "sensor_21" {
		t.Errorf("cols[23] = %q, want sensor_21", cols[23])
	}
}

func TestSubsets_FixedSet(t *testing.T) {
	want := []string{"FD001", "FD002", "FD003", "FD004"}
	got := Subsets()
	if len(got) != len(want) {
		t.Fatalf("Subsets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subsets()[%d] = %q, want %q", i, got[i], want[i])
		}
		if !ValidSubset(want[i]) {
			t.Errorf("ValidSubset(%q) = false", want[i])
		}
	}
	if ValidSubset("FD005") {
		t.Error("ValidSubset(FD005) = true, want false")
	}
}

func TestLoadSubset_Valid(t *testing.T) {
	dir := t.TempDir()
	writeSubset(t, dir, "FD001",
		[]string{row(1, 1, 0.5), row(1, 2, 0.6), row(2, 1, 0.7)},
		[]string{row(1, 1, 0.1), row(2, 1, 0.2), row(2, 2, 0.3)},
		[]string{"112", "98"},
	)

	sub, err := LoadSubset(dir, "FD001")
	if err != nil {
		t.Fatalf("LoadSubset: %v", err)
	}
	if sub.Train.Len() != 3 {
		t.Errorf("train rows = %d, want 3", sub.Train.Len())
	}
	if sub.Test.Len() != 3 {
		t.Errorf("test rows = %d, want 3", sub.Test.Len())
	}
	if len(sub.TruthRUL) != 2 || sub.TruthRUL[0] != 112 || sub.TruthRUL[1] != 98 {
		t.Errorf("TruthRUL = %v, want [112 98]", sub.TruthRUL)
	}
	if sub.Train.Units[2] != 2 || sub.Train.Cycles[2] != 1 {
		t.Errorf("row 2 = unit %d cycle %d, want unit 2 cycle 1",
			sub.Train.Units[2], sub.Train.Cycles[2])
	}
	if got := sub.Train.Values[0][0]; got != 0.5 {
		t.Errorf("train row 0 value 0 = %g, want 0.5", got)
	}
	if len(sub.Train.Columns) != 24 {
		t.Errorf("columns = %d, want 24", len(sub.Train.Columns))
	}
}

func TestLoadSubset_CommaDelimited(t *testing.T) {
	dir := t.TempDir()
	commaRow := strings.ReplaceAll(row(1, 1, 0.25), " ", ",")
	writeSubset(t, dir, "FD001",
		[]string{commaRow},
		[]string{commaRow},
		[]string{"20"},
	)

	sub, err := LoadSubset(dir, "FD001")
	if err != nil {
		t.Fatalf("LoadSubset comma-delimited: %v", err)
	}
	if sub.Train.Len() != 1 || sub.Train.Values[0][5] != 0.25 {
		t.Errorf("comma-delimited row not parsed: %+v", sub.Train.Values)
	}
}

func TestLoadSubset_MalformedColumnCount(t *testing.T) {
	dir := t.TempDir()
	writeSubset(t, dir, "FD001",
		[]string{row(1, 1, 0.5) + " 99"}, // 27 columns
		[]string{row(1, 1, 0.5)},
		[]string{"10"},
	)

	_, err := LoadSubset(dir, "FD001")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("ParseError.Line = %d, want 1", pe.Line)
	}
}

func TestLoadSubset_NonNumericField(t *testing.T) {
	dir := t.TempDir()
	bad := strings.Replace(row(1, 1, 0.5), "0.5", "oops", 1)
	writeSubset(t, dir, "FD001",
		[]string{bad},
		[]string{row(1, 1, 0.5)},
		[]string{"10"},
	)

	_, err := LoadSubset(dir, "FD001")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestLoadSubset_DuplicateUnitCycle(t *testing.T) {
	dir := t.TempDir()
	writeSubset(t, dir, "FD001",
		[]string{row(1, 1, 0.5), row(1, 1, 0.6)},
		[]string{row(1, 1, 0.5)},
		[]string{"10"},
	)

	_, err := LoadSubset(dir, "FD001")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestLoadSubset_MissingFile(t *testing.T) {
	dir := t.TempDir()
	// Only the training file exists.
	if err := os.WriteFile(filepath.Join(dir, "train_FD001.txt"),
		[]byte(row(1, 1, 0.5)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSubset(dir, "FD001")
	var me *MissingDataError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MissingDataError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadSubset_MalformedTruthFile(t *testing.T) {
	dir := t.TempDir()
	writeSubset(t, dir, "FD001",
		[]string{row(1, 1, 0.5)},
		[]string{row(1, 1, 0.5)},
		[]string{"10 20"}, // two columns
	)

	_, err := LoadSubset(dir, "FD001")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestTable_UnitOrder(t *testing.T) {
	tbl := &Table{
		Units:  []int{3, 3, 1, 1, 2},
		Cycles: []int{1, 2, 1, 2, 1},
	}
	got := tbl.UnitOrder()
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("UnitOrder() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UnitOrder()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTable_CloneIsDeep(t *testing.T) {
	tbl := &Table{
		Subset:  "FD001",
		Columns: []string{"a"},
		Units:   []int{1},
		Cycles:  []int{1},
		Values:  [][]float64{{2.0}},
		RUL:     []float64{5},
	}
	cp := tbl.Clone()
	cp.Values[0][0] = 99
	cp.RUL[0] = 0
	if tbl.Values[0][0] != 2.0 || tbl.RUL[0] != 5 {
		t.Error("Clone shares backing arrays with the original")
	}
}

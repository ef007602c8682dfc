package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// Raw C-MAPSS column layout: unit id, cycle index, operational settings,
// sensor readings.
const (
	numSettings = 3
	numSensors  = 21
	numRawCols  = 2 + numSettings + numSensors
)

// subsets is the fixed, enumerated set of simulation subsets. The corpus
// never grows or shrinks; unknown names are rejected at config load time.
var subsets = []string{"FD001", "FD002", "FD003", "FD004"}

// Subsets returns the ordered subset identifiers of the corpus.
func Subsets() []string {
	out := make([]string, len(subsets))
	copy(out, subsets)
	return out
}

// ValidSubset reports whether name is a known subset identifier.
func ValidSubset(name string) bool {
	for _, s := range subsets {
		if s == name {
			return true
		}
	}
	return false
}

// FeatureColumns returns the canonical ordered feature column names:
// the three operational settings followed by the twenty-one sensors.
// The order is identical for every subset.
func FeatureColumns() []string {
	cols := make([]string, 0, numSettings+numSensors)
	for i := 1; i <= numSettings; i++ {
		cols = append(cols, fmt.Sprintf("setting_%d", i))
	}
	for i := 1; i <= numSensors; i++ {
		cols = append(cols, fmt.Sprintf("sensor_%d", i))
	}
	return cols
}

// Table is one tabular dataset: per-row unit id, cycle index and feature
// values, plus an optional RUL label column attached by the preprocessor.
// Rows preserve file order; units are grouped contiguously in the raw files.
type Table struct {
	Subset  string
	Columns []string // feature names, fixed order
	Units   []int
	Cycles  []int
	Values  [][]float64 // len == Len(), each row len == len(Columns)
	RUL     []float64   // nil until labeled
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Units) }

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Subset:  t.Subset,
		Columns: append([]string(nil), t.Columns...),
		Units:   append([]int(nil), t.Units...),
		Cycles:  append([]int(nil), t.Cycles...),
		Values:  make([][]float64, len(t.Values)),
	}
	for i, row := range t.Values {
		out.Values[i] = append([]float64(nil), row...)
	}
	if t.RUL != nil {
		out.RUL = append([]float64(nil), t.RUL...)
	}
	return out
}

// Column returns a copy of feature column j across all rows.
func (t *Table) Column(j int) []float64 {
	col := make([]float64, t.Len())
	for i, row := range t.Values {
		col[i] = row[j]
	}
	return col
}

// UnitOrder returns the distinct unit ids in order of first appearance.
func (t *Table) UnitOrder() []int {
	seen := make(map[int]bool, 128)
	var order []int
	for _, u := range t.Units {
		if !seen[u] {
			seen[u] = true
			order = append(order, u)
		}
	}
	return order
}

// Subset holds the raw (unprocessed) triple for one simulation subset.
type Subset struct {
	Name     string
	Train    *Table
	Test     *Table
	TruthRUL []float64 // one value per test unit, in unit order
}

// LoadSubset reads the train/test/ground-truth triple for the named subset
// from dir. File naming follows the corpus convention: train_FD001.txt,
// test_FD001.txt, RUL_FD001.txt.
func LoadSubset(dir, name string) (*Subset, error) {
	train, err := readTable(filepath.Join(dir, "train_"+name+".txt"), name)
	if err != nil {
		return nil, err
	}
	test, err := readTable(filepath.Join(dir, "test_"+name+".txt"), name)
	if err != nil {
		return nil, err
	}
	truth, err := readTruth(filepath.Join(dir, "RUL_"+name+".txt"))
	if err != nil {
		return nil, err
	}
	return &Subset{Name: name, Train: train, Test: test, TruthRUL: truth}, nil
}

// fieldSep splits on any whitespace or comma, so both delimiter variants of
// the corpus parse identically.
func fieldSep(r rune) bool { return unicode.IsSpace(r) || r == ',' }

// readTable parses one 26-column log file into a Table.
func readTable(path, subset string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingDataError{Path: path, Err: err}
	}
	defer f.Close()

	t := &Table{Subset: subset, Columns: FeatureColumns()}
	seen := make(map[[2]int]bool, 1024)

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.FieldsFunc(text, fieldSep)
		if len(fields) != numRawCols {
			return nil, &ParseError{
				File: path,
				Line: line,
				Msg:  fmt.Sprintf("expected %d columns, got %d", numRawCols, len(fields)),
			}
		}
		row := make([]float64, numRawCols)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &ParseError{
					File: path,
					Line: line,
					Msg:  fmt.Sprintf("column %d: not a number: %q", i+1, field),
				}
			}
			row[i] = v
		}

		unit, cycle := int(row[0]), int(row[1])
		key := [2]int{unit, cycle}
		if seen[key] {
			return nil, &ValidationError{
				File: path,
				Msg:  fmt.Sprintf("duplicate row for unit %d cycle %d", unit, cycle),
			}
		}
		seen[key] = true

		t.Units = append(t.Units, unit)
		t.Cycles = append(t.Cycles, cycle)
		t.Values = append(t.Values, row[2:])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return t, nil
}

// readTruth parses a ground-truth file: one RUL value per line.
func readTruth(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingDataError{Path: path, Err: err}
	}
	defer f.Close()

	var truth []float64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.FieldsFunc(text, fieldSep)
		if len(fields) != 1 {
			return nil, &ParseError{
				File: path,
				Line: line,
				Msg:  fmt.Sprintf("expected 1 column, got %d", len(fields)),
			}
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &ParseError{
				File: path,
				Line: line,
				Msg:  fmt.Sprintf("not a number: %q", fields[0]),
			}
		}
		truth = append(truth, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return truth, nil
}

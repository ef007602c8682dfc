// Package dataset reads the raw C-MAPSS turbofan degradation corpus.
//
// The corpus is partitioned into four independent simulation subsets
// (FD001–FD004). Each subset is a triple of whitespace- or comma-delimited
// text files: a run-to-failure training log, a truncated test log, and a
// ground-truth file holding one remaining-useful-life value per test unit.
// Every log row carries 26 numeric columns: unit id, cycle index, three
// operational settings and twenty-one sensor readings.
//
// LoadSubset parses one triple into Table values; parsing failures are
// reported through the typed errors in errors.go (ParseError,
// ValidationError, MissingDataError) so callers can distinguish malformed
// rows from absent files. Watch provides an fsnotify-based re-run trigger
// for the CLI's watch mode.
package dataset

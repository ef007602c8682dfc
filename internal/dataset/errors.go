package dataset

import "fmt"

// ParseError reports a malformed row in a corpus file: wrong column count or
// a field that does not parse as a number. Processing of the subset stops at
// the first malformed row — no partial table is returned.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: parse %s:%d: %s", e.File, e.Line, e.Msg)
}

// ValidationError reports structurally valid input that violates a corpus
// invariant, such as a duplicate (unit, cycle) pair or a ground-truth file
// whose row count does not match the number of test units.
type ValidationError struct {
	File string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset: validate %s: %s", e.File, e.Msg)
}

// MissingDataError reports an expected corpus file that could not be opened.
type MissingDataError struct {
	Path string
	Err  error
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("dataset: missing %s: %v", e.Path, e.Err)
}

func (e *MissingDataError) Unwrap() error { return e.Err }

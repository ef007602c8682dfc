// Package preprocess turns raw C-MAPSS sensor logs into labeled, normalized,
// model-ready tables.
//
// rul.go labels training rows with remaining useful life (failure cycle minus
// current cycle) and reduces test logs to their final observed row per unit,
// attaching the supplied ground-truth RUL.
//
// scaler.go provides the MinMax scaler: statistics are fitted on a subset's
// training table only and reused for its test table, so no test information
// leaks into the scaling. A constant column (max == min) scales to 0 for
// every row; test values outside the training range are not clipped.
//
// Run processes each subset independently and sequentially. A failure in any
// subset aborts the whole run with no partial output.
package preprocess

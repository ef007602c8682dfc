// Package export persists model-ready tables as CSV files for handoff to
// object storage and the downstream training scripts. File names follow the
// subset convention: train_FD001.csv, test_FD001.csv.
package export

package data

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped when a table lacks a required key column.
var ErrMissingColumn = errors.New("missing column")

// DatasetError reports a dataset that could not be loaded.
type DatasetError struct {
	Dataset string
	Path    string
	Code    string // MISSING_DATASET, UNREADABLE_DATASET, MISSING_COLUMN
	Err     error
}

func (e *DatasetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("dataset %s (%s): %v", e.Dataset, e.Path, e.Err)
	}
	return fmt.Sprintf("dataset %s: %v", e.Dataset, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

const (
	CodeMissingDataset    = "MISSING_DATASET"
	CodeUnreadableDataset = "UNREADABLE_DATASET"
	CodeMissingColumn     = "MISSING_COLUMN"
)

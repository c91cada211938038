package data

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bess-dashboard/internal/model"
)

// Format selects the on-disk encoding of a dataset.
type Format string

const (
	FormatFeather Format = "feather"
	FormatCSV     Format = "csv"
)

// Load reads the six source datasets from dir, preferring <name>.feather and
// falling back to <name>.csv, and derives the merged ancillary-service price
// table. Any missing or unreadable dataset aborts the load.
func Load(dir string) (*model.Datasets, error) {
	ds := model.NewDatasets()
	h := sha256.New()

	for _, name := range model.SourceDatasets {
		path, format, err := resolve(dir, name)
		if err != nil {
			return nil, err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, &DatasetError{Dataset: name, Path: path, Code: CodeUnreadableDataset, Err: err}
		}
		h.Write([]byte(name))
		h.Write(raw)

		var f *model.Frame
		switch format {
		case FormatFeather:
			f, err = ReadFeather(name, raw)
		default:
			f, err = ReadCSV(name, raw)
		}
		if err != nil {
			code := CodeUnreadableDataset
			if errors.Is(err, ErrMissingColumn) {
				code = CodeMissingColumn
			}
			return nil, &DatasetError{Dataset: name, Path: path, Code: code, Err: err}
		}
		slog.Debug("dataset loaded",
			slog.String("dataset", name),
			slog.String("path", path),
			slog.Int("rows", f.Len()),
			slog.Any("columns", f.Columns()),
		)
		ds.Add(name, f)
	}

	if err := AddMergedPrices(ds); err != nil {
		return nil, err
	}
	ds.Fingerprint = hex.EncodeToString(h.Sum(nil))
	return ds, nil
}

func resolve(dir, name string) (string, Format, error) {
	for _, format := range []Format{FormatFeather, FormatCSV} {
		path := filepath.Join(dir, name+"."+string(format))
		if _, err := os.Stat(path); err == nil {
			return path, format, nil
		}
	}
	return "", "", &DatasetError{
		Dataset: name,
		Path:    filepath.Join(dir, name+".feather"),
		Code:    CodeMissingDataset,
		Err:     os.ErrNotExist,
	}
}

// AddMergedPrices derives the price_as table: the ancillary-service prices are
// identical on both sides, but either side may hold the value for an hour, so
// the generation-side value wins and the load-side value fills its gaps.
func AddMergedPrices(ds *model.Datasets) error {
	gen, err := ds.Get(model.DatasetGenPriceAS)
	if err != nil {
		return err
	}
	load, err := ds.Get(model.DatasetLoadPriceAS)
	if err != nil {
		return err
	}
	ds.Add(model.DatasetPriceAS, model.CombineFirst(model.DatasetPriceAS, gen, load))
	return nil
}

// WriteDatasets writes every source dataset in ds to dir in the given format.
// The derived price_as table is not written.
func WriteDatasets(dir string, ds *model.Datasets, format Format) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, name := range model.SourceDatasets {
		f, err := ds.Get(name)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name+"."+string(format))
		switch format {
		case FormatFeather:
			err = WriteFeather(path, f)
		case FormatCSV:
			err = WriteCSV(path, f)
		default:
			return fmt.Errorf("unsupported format: %q", format)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

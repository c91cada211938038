package data

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"bess-dashboard/internal/model"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// floatColumns are numeric even when every cell is empty.
var floatColumns = map[string]bool{
	model.ColNonSpinAwarded: true,
	model.ColRRSAwarded:     true,
	model.ColRegUpAwarded:   true,
	model.ColRegDownAwarded: true,
	model.ColMaxPower:       true,
	model.ColNonSpin:        true,
	model.ColRRS:            true,
	model.ColRegUp:          true,
	model.ColRegDown:        true,
	model.ColMW:             true,
	model.ColRTMLMPs:        true,
}

// ParseTimestamp accepts RFC3339 and the space-separated layouts pandas writes.
// Values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// ReadCSV decodes a CSV table with a header row into a Frame. Columns whose
// non-empty cells all parse as numbers become float columns; the rest are
// string columns. Empty cells are missing. A known numeric column holding a
// cell that is not a number is an error.
func ReadCSV(name string, raw []byte) (*model.Frame, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, model.ColTimestamp)
	}
	header := records[0]
	tsIdx, resIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case model.ColTimestamp:
			tsIdx = i
		case model.ColResourceName:
			resIdx = i
		}
	}
	if tsIdx < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, model.ColTimestamp)
	}
	if resIdx < 0 {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, model.ColResourceName)
	}

	rows := records[1:]
	f := model.NewFrame(name)
	isFloat := make([]bool, len(header))
	for i, h := range header {
		if i == tsIdx || i == resIdx {
			continue
		}
		isFloat[i] = floatColumns[strings.TrimSpace(h)] || numericColumn(rows, i)
		if isFloat[i] {
			f.AddFloatColumn(strings.TrimSpace(h))
		} else {
			f.AddStringColumn(strings.TrimSpace(h))
		}
	}

	for n, rec := range rows {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", n+2, len(header), len(rec))
		}
		ts, err := ParseTimestamp(rec[tsIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		key := model.NewKey(ts, strings.TrimSpace(rec[resIdx]))
		for i, h := range header {
			if i == tsIdx || i == resIdx {
				continue
			}
			col := strings.TrimSpace(h)
			cell := strings.TrimSpace(rec[i])
			if isFloat[i] {
				v := math.NaN()
				if cell != "" {
					if v, err = strconv.ParseFloat(cell, 64); err != nil {
						return nil, fmt.Errorf("row %d: column %s: invalid number %q", n+2, col, cell)
					}
				}
				if err := f.SetFloat(key, col, v); err != nil {
					return nil, err
				}
				continue
			}
			if err := f.SetString(key, col, cell); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func numericColumn(rows [][]string, col int) bool {
	seen := false
	for _, rec := range rows {
		if col >= len(rec) {
			continue
		}
		cell := strings.TrimSpace(rec[col])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// WriteCSV writes a Frame in the layout ReadCSV accepts.
func WriteCSV(path string, f *model.Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	cols := f.Columns()
	header := append([]string{model.ColTimestamp, model.ColResourceName}, cols...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, k := range f.Keys() {
		row := []string{k.Timestamp.Format(time.RFC3339), k.Resource}
		for _, c := range cols {
			if f.IsFloatColumn(c) {
				v, ok := f.Float(k, c)
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
				continue
			}
			s, _ := f.String(k, c)
			row = append(row, s)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return out.Close()
}

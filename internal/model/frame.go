package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Key is the two-level index shared by every dataset: (hour, resource).
type Key struct {
	Timestamp time.Time
	Resource  string
}

// NewKey normalizes the timestamp to UTC so keys built from different
// sources compare equal.
func NewKey(ts time.Time, resource string) Key {
	return Key{Timestamp: ts.UTC(), Resource: resource}
}

// Frame is an in-memory table indexed by Key.
//
// Float columns use NaN for missing values, string columns use "".
// Rows keep insertion order; writing an existing key overwrites its cells.
type Frame struct {
	Name string

	keys    []Key
	index   map[Key]int
	columns []string
	floats  map[string][]float64
	strs    map[string][]string
}

func NewFrame(name string) *Frame {
	return &Frame{
		Name:   name,
		index:  map[Key]int{},
		floats: map[string][]float64{},
		strs:   map[string][]string{},
	}
}

// AddFloatColumn declares a float column. Declaring an existing column is a no-op.
func (f *Frame) AddFloatColumn(name string) {
	if f.HasColumn(name) {
		return
	}
	vals := make([]float64, len(f.keys))
	for i := range vals {
		vals[i] = math.NaN()
	}
	f.floats[name] = vals
	f.columns = append(f.columns, name)
}

// AddStringColumn declares a string column. Declaring an existing column is a no-op.
func (f *Frame) AddStringColumn(name string) {
	if f.HasColumn(name) {
		return
	}
	f.strs[name] = make([]string, len(f.keys))
	f.columns = append(f.columns, name)
}

func (f *Frame) HasColumn(name string) bool {
	_, isFloat := f.floats[name]
	_, isStr := f.strs[name]
	return isFloat || isStr
}

func (f *Frame) IsFloatColumn(name string) bool {
	_, ok := f.floats[name]
	return ok
}

// Columns returns the value column names in declaration order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

func (f *Frame) Len() int { return len(f.keys) }

// Keys returns the row keys in insertion order.
func (f *Frame) Keys() []Key {
	out := make([]Key, len(f.keys))
	copy(out, f.keys)
	return out
}

func (f *Frame) Has(k Key) bool {
	_, ok := f.index[k]
	return ok
}

func (f *Frame) row(k Key) int {
	if i, ok := f.index[k]; ok {
		return i
	}
	i := len(f.keys)
	f.keys = append(f.keys, k)
	f.index[k] = i
	for name := range f.floats {
		f.floats[name] = append(f.floats[name], math.NaN())
	}
	for name := range f.strs {
		f.strs[name] = append(f.strs[name], "")
	}
	return i
}

// SetFloat writes a float cell, adding the row if needed.
func (f *Frame) SetFloat(k Key, column string, v float64) error {
	if _, ok := f.floats[column]; !ok {
		return fmt.Errorf("frame %s: %q is not a float column", f.Name, column)
	}
	i := f.row(NewKey(k.Timestamp, k.Resource))
	f.floats[column][i] = v
	return nil
}

// SetString writes a string cell, adding the row if needed.
func (f *Frame) SetString(k Key, column string, v string) error {
	if _, ok := f.strs[column]; !ok {
		return fmt.Errorf("frame %s: %q is not a string column", f.Name, column)
	}
	i := f.row(NewKey(k.Timestamp, k.Resource))
	f.strs[column][i] = v
	return nil
}

// Float returns the cell value and whether it is present and not NaN.
func (f *Frame) Float(k Key, column string) (float64, bool) {
	vals, ok := f.floats[column]
	if !ok {
		return math.NaN(), false
	}
	i, ok := f.index[k]
	if !ok {
		return math.NaN(), false
	}
	v := vals[i]
	return v, !math.IsNaN(v)
}

// String returns the cell value and whether it is present and non-empty.
func (f *Frame) String(k Key, column string) (string, bool) {
	vals, ok := f.strs[column]
	if !ok {
		return "", false
	}
	i, ok := f.index[k]
	if !ok {
		return "", false
	}
	return vals[i], vals[i] != ""
}

// FloatColumn returns the column values aligned with Keys.
func (f *Frame) FloatColumn(column string) ([]float64, error) {
	vals, ok := f.floats[column]
	if !ok {
		return nil, fmt.Errorf("frame %s: no float column %q", f.Name, column)
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	return out, nil
}

// StringColumn returns the column values aligned with Keys.
func (f *Frame) StringColumn(column string) ([]string, error) {
	vals, ok := f.strs[column]
	if !ok {
		return nil, fmt.Errorf("frame %s: no string column %q", f.Name, column)
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}

// Resources returns the distinct resource identifiers, sorted ascending.
func (f *Frame) Resources() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, k := range f.keys {
		if !seen[k.Resource] {
			seen[k.Resource] = true
			out = append(out, k.Resource)
		}
	}
	sort.Strings(out)
	return out
}

// Timestamps returns the distinct timestamps, sorted ascending.
func (f *Frame) Timestamps() []time.Time {
	seen := map[time.Time]bool{}
	out := []time.Time{}
	for _, k := range f.keys {
		if !seen[k.Timestamp] {
			seen[k.Timestamp] = true
			out = append(out, k.Timestamp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Unstack pivots a float column into an hour × resource matrix.
// Cells without a row are NaN.
func (f *Frame) Unstack(column string) (*Pivot, error) {
	vals, ok := f.floats[column]
	if !ok {
		return nil, fmt.Errorf("frame %s: no float column %q", f.Name, column)
	}
	p := NewPivot(f.Timestamps(), f.Resources())
	rows := make(map[time.Time]int, len(p.Index))
	for i, ts := range p.Index {
		rows[ts] = i
	}
	cols := make(map[string]int, len(p.Columns))
	for j, r := range p.Columns {
		cols[r] = j
	}
	for i, k := range f.keys {
		p.Values[rows[k.Timestamp]][cols[k.Resource]] = vals[i]
	}
	return p, nil
}

// CombineFirst merges two frames over the union of their keys. For every
// float column of primary, the primary value is used unless missing, in which
// case the fallback value for the same key and column is used.
func CombineFirst(name string, primary, fallback *Frame) *Frame {
	out := NewFrame(name)
	cols := []string{}
	for _, c := range primary.columns {
		if primary.IsFloatColumn(c) {
			out.AddFloatColumn(c)
			cols = append(cols, c)
		}
	}
	add := func(k Key) {
		if out.Has(k) {
			return
		}
		out.row(k)
		for _, c := range cols {
			v, ok := primary.Float(k, c)
			if !ok {
				v, _ = fallback.Float(k, c)
			}
			out.floats[c][out.index[k]] = v
		}
	}
	for _, k := range primary.keys {
		add(k)
	}
	for _, k := range fallback.keys {
		add(k)
	}
	return out
}

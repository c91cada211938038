package data

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"time"

	"bess-dashboard/internal/model"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ReadFeather decodes a feather (Arrow IPC file) table into a Frame.
// The table must have timestamp and resource_name columns; string-typed value
// columns become string columns and numeric ones float columns.
func ReadFeather(name string, raw []byte) (*model.Frame, error) {
	rdr, err := ipc.NewFileReader(bytes.NewReader(raw), ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("open arrow file: %w", err)
	}
	defer rdr.Close()

	schema := rdr.Schema()
	tsIdx, err := fieldIndex(schema, model.ColTimestamp)
	if err != nil {
		return nil, err
	}
	resIdx, err := fieldIndex(schema, model.ColResourceName)
	if err != nil {
		return nil, err
	}

	f := model.NewFrame(name)
	valueCols := []int{}
	for i, field := range schema.Fields() {
		if i == tsIdx || i == resIdx {
			continue
		}
		switch {
		case isStringType(field.Type):
			f.AddStringColumn(field.Name)
		case isNumericType(field.Type):
			f.AddFloatColumn(field.Name)
		default:
			// Columns we cannot represent (lists, structs, pandas index
			// leftovers) are not used by any calculator.
			continue
		}
		valueCols = append(valueCols, i)
	}

	for r := 0; r < rdr.NumRecords(); r++ {
		rec, err := rdr.Record(r)
		if err != nil {
			return nil, fmt.Errorf("read record batch %d: %w", r, err)
		}
		tsCol := rec.Column(tsIdx)
		resCol := rec.Column(resIdx)
		for row := 0; row < int(rec.NumRows()); row++ {
			if tsCol.IsNull(row) || resCol.IsNull(row) {
				continue
			}
			ts, err := timeAt(tsCol, row)
			if err != nil {
				return nil, err
			}
			res, ok := stringAt(resCol, row)
			if !ok {
				return nil, fmt.Errorf("column %s: unsupported type %s", model.ColResourceName, resCol.DataType())
			}
			key := model.NewKey(ts, res)
			for _, ci := range valueCols {
				field := schema.Field(ci)
				col := rec.Column(ci)
				if f.IsFloatColumn(field.Name) {
					v, _ := floatAt(col, row)
					if err := f.SetFloat(key, field.Name, v); err != nil {
						return nil, err
					}
					continue
				}
				s, _ := stringAt(col, row)
				if err := f.SetString(key, field.Name, s); err != nil {
					return nil, err
				}
			}
		}
	}
	return f, nil
}

func fieldIndex(schema *arrow.Schema, name string) (int, error) {
	idx := schema.FieldIndices(name)
	if len(idx) == 0 {
		return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	return idx[0], nil
}

func isStringType(dt arrow.DataType) bool {
	switch t := dt.(type) {
	case *arrow.StringType, *arrow.LargeStringType:
		return true
	case *arrow.DictionaryType:
		return isStringType(t.ValueType)
	}
	return false
}

func isNumericType(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.FLOAT64, arrow.FLOAT32, arrow.INT64, arrow.INT32, arrow.INT16, arrow.INT8,
		arrow.UINT64, arrow.UINT32, arrow.UINT16, arrow.UINT8:
		return true
	}
	return false
}

func floatAt(col arrow.Array, i int) (float64, bool) {
	if col.IsNull(i) {
		return math.NaN(), false
	}
	switch c := col.(type) {
	case *array.Float64:
		return c.Value(i), true
	case *array.Float32:
		return float64(c.Value(i)), true
	case *array.Int64:
		return float64(c.Value(i)), true
	case *array.Int32:
		return float64(c.Value(i)), true
	case *array.Int16:
		return float64(c.Value(i)), true
	case *array.Int8:
		return float64(c.Value(i)), true
	case *array.Uint64:
		return float64(c.Value(i)), true
	case *array.Uint32:
		return float64(c.Value(i)), true
	case *array.Uint16:
		return float64(c.Value(i)), true
	case *array.Uint8:
		return float64(c.Value(i)), true
	}
	return math.NaN(), false
}

func stringAt(col arrow.Array, i int) (string, bool) {
	if col.IsNull(i) {
		return "", true
	}
	switch c := col.(type) {
	case *array.String:
		return c.Value(i), true
	case *array.LargeString:
		return c.Value(i), true
	case *array.Dictionary:
		return stringAt(c.Dictionary(), c.GetValueIndex(i))
	}
	return "", false
}

func timeAt(col arrow.Array, i int) (time.Time, error) {
	switch c := col.(type) {
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return c.Value(i).ToTime(unit), nil
	case *array.Date64:
		return c.Value(i).ToTime(), nil
	case *array.Int64:
		// pandas sometimes stores epoch nanoseconds as plain int64.
		return time.Unix(0, c.Value(i)), nil
	}
	s, ok := stringAt(col, i)
	if !ok {
		return time.Time{}, fmt.Errorf("column %s: unsupported type %s", model.ColTimestamp, col.DataType())
	}
	return ParseTimestamp(s)
}

// WriteFeather encodes a Frame as a feather (Arrow IPC file) table with
// timestamp, resource_name and one column per frame column.
func WriteFeather(path string, f *model.Frame) error {
	pool := memory.NewGoAllocator()

	fields := []arrow.Field{
		{Name: model.ColTimestamp, Type: &arrow.TimestampType{Unit: arrow.Second, TimeZone: "UTC"}},
		{Name: model.ColResourceName, Type: arrow.BinaryTypes.String},
	}
	cols := f.Columns()
	for _, c := range cols {
		if f.IsFloatColumn(c) {
			fields = append(fields, arrow.Field{Name: c, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
		} else {
			fields = append(fields, arrow.Field{Name: c, Type: arrow.BinaryTypes.String, Nullable: true})
		}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for _, k := range f.Keys() {
		b.Field(0).(*array.TimestampBuilder).Append(arrow.Timestamp(k.Timestamp.Unix()))
		b.Field(1).(*array.StringBuilder).Append(k.Resource)
		for j, c := range cols {
			fb := b.Field(j + 2)
			if f.IsFloatColumn(c) {
				v, ok := f.Float(k, c)
				if !ok {
					fb.AppendNull()
					continue
				}
				fb.(*array.Float64Builder).Append(v)
				continue
			}
			s, ok := f.String(k, c)
			if !ok {
				fb.AppendNull()
				continue
			}
			fb.(*array.StringBuilder).Append(s)
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w, err := ipc.NewFileWriter(out, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return fmt.Errorf("create arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close arrow writer: %w", err)
	}
	return out.Close()
}

package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Feature column names produced by the encoder.
const (
	ColumnDayOfWeek = "day_of_week"
	ColumnHourSin   = "hour_sin"
	ColumnHourCos   = "hour_cos"

	// ZipColumnPrefix prefixes every one-hot ZIP dummy, e.g. "zip_90012".
	ZipColumnPrefix = "zip_"

	// ColumnZipOther is the fallback bucket for ZIPs outside the training set.
	ColumnZipOther = ZipColumnPrefix + "other"
)

// Value is a single feature cell: either a number or a boolean flag.
// Booleans read as 1 or 0 when handed to the classifier.
type Value struct {
	num    float64
	isBool bool
}

// Number returns a numeric feature value.
func Number(f float64) Value {
	return Value{num: f}
}

// Bool returns a boolean feature value.
func Bool(b bool) Value {
	if b {
		return Value{num: 1, isBool: true}
	}
	return Value{isBool: true}
}

// Float64 returns the value as the classifier sees it.
func (v Value) Float64() float64 { return v.num }

// IsBool reports whether the value is a boolean flag.
func (v Value) IsBool() bool { return v.isBool }

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool { return v.num != 0 }

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	return v.isBool == o.isBool && v.num == o.num
}

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.Bool())
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// MarshalJSON encodes booleans as JSON booleans and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return json.Marshal(v.Bool())
	}
	return json.Marshal(v.num)
}

// FeatureSchema is the ordered list of feature columns the classifier expects.
// A nil schema means the artifact did not expose one.
type FeatureSchema []string

// NewFeatureSchema validates and copies a list of column names.
// Names must be non-empty and unique.
func NewFeatureSchema(names []string) (FeatureSchema, error) {
	seen := make(map[string]struct{}, len(names))
	schema := make(FeatureSchema, 0, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("feature schema: empty column name at index %d", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("feature schema: duplicate column %q", name)
		}
		seen[name] = struct{}{}
		schema = append(schema, name)
	}
	return schema, nil
}

// Available reports whether the schema was loaded.
func (s FeatureSchema) Available() bool { return s != nil }

// Contains reports whether name is one of the schema's columns.
func (s FeatureSchema) Contains(name string) bool {
	for _, col := range s {
		if col == name {
			return true
		}
	}
	return false
}

// ZipColumns returns the one-hot ZIP columns in schema order, zip_other included.
func (s FeatureSchema) ZipColumns() []string {
	var cols []string
	for _, col := range s {
		if strings.HasPrefix(col, ZipColumnPrefix) {
			cols = append(cols, col)
		}
	}
	return cols
}

// SparseFeatureRecord holds the features the encoder could determine.
// Iteration order is insertion order.
type SparseFeatureRecord struct {
	names  []string
	values map[string]Value
}

// NewSparseFeatureRecord returns an empty record sized for n features.
func NewSparseFeatureRecord(n int) *SparseFeatureRecord {
	return &SparseFeatureRecord{
		names:  make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Set stores a value. Overwriting an existing name keeps its position.
func (r *SparseFeatureRecord) Set(name string, v Value) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value for name and whether it was set.
func (r *SparseFeatureRecord) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the record's feature names in insertion order.
func (r *SparseFeatureRecord) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of features in the record.
func (r *SparseFeatureRecord) Len() int { return len(r.names) }

// DenseFeatureVector is the single-row input handed to the classifier.
// Columns and Values always have the same length.
type DenseFeatureVector struct {
	Columns []string
	Values  []Value
}

// Len returns the number of columns.
func (d DenseFeatureVector) Len() int { return len(d.Columns) }

// Get returns the value of the named column.
func (d DenseFeatureVector) Get(name string) (Value, bool) {
	for i, col := range d.Columns {
		if col == name {
			return d.Values[i], true
		}
	}
	return Value{}, false
}

// Floats returns the row as float64s in column order.
func (d DenseFeatureVector) Floats() []float64 {
	out := make([]float64, len(d.Values))
	for i, v := range d.Values {
		out[i] = v.Float64()
	}
	return out
}

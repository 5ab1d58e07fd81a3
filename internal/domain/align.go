package domain

// Align lays the sparse record out in schema order, one slot per column.
// Columns missing from the record are filled with Bool(false) regardless of
// their kind. With a nil schema the record passes through in its own order.
func Align(record *SparseFeatureRecord, schema FeatureSchema) DenseFeatureVector {
	if !schema.Available() {
		names := record.Names()
		values := make([]Value, len(names))
		for i, name := range names {
			values[i], _ = record.Get(name)
		}
		return DenseFeatureVector{Columns: names, Values: values}
	}

	cols := make([]string, len(schema))
	copy(cols, schema)
	values := make([]Value, len(schema))
	for i, col := range schema {
		v, ok := record.Get(col)
		if !ok {
			v = Bool(false)
		}
		values[i] = v
	}
	return DenseFeatureVector{Columns: cols, Values: values}
}

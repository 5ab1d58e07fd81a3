package geonames

import (
	"strings"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

const (
	laStateCode = "CA"
	laCounty    = "los angeles"
	laCity      = "Los Angeles"
)

// InLACounty reports whether a record is in California and its county name
// contains "Los Angeles" (case-insensitive).
func InLACounty(rec domain.PostalRecord) bool {
	return rec.StateCode == laStateCode &&
		strings.Contains(strings.ToLower(rec.County), laCounty)
}

// InLACity reports whether a record is an LA County ZIP whose city is exactly "Los Angeles".
func InLACity(rec domain.PostalRecord) bool {
	return InLACounty(rec) && rec.City == laCity
}

// LACityFilter keeps Los Angeles city ZIPs and reduces them to centroids.
// It implements pipeline.Transformer.
type LACityFilter struct{}

// Transform returns the record's centroid and whether it passed the filter.
func (LACityFilter) Transform(rec domain.PostalRecord) (domain.ZipCentroid, bool) {
	if !InLACity(rec) {
		return domain.ZipCentroid{}, false
	}
	return rec.Centroid(), true
}

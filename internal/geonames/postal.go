// Package geonames reads the GeoNames postal code dump and the derived Los
// Angeles ZIP centroid table.
//
// The postal dump (US.txt) is tab separated, no header, twelve columns:
//
//	country  zip  city  state_name  state_abbr  county  county_code
//	community  community_code  latitude  longitude  accuracy
package geonames

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

const postalColumns = 12

// PostalReader streams postal records from a GeoNames dump.
// It implements pipeline.BatchExtractor.
type PostalReader struct {
	r    *csv.Reader
	line int
}

// NewPostalReader wraps a tab-separated GeoNames postal file.
func NewPostalReader(r io.Reader) *PostalReader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return &PostalReader{r: cr}
}

// Read returns the next record, or io.EOF at the end of input.
func (p *PostalReader) Read() (domain.PostalRecord, error) {
	fields, err := p.r.Read()
	if err != nil {
		return domain.PostalRecord{}, err
	}
	p.line++
	rec, err := parsePostalFields(fields)
	if err != nil {
		return domain.PostalRecord{}, fmt.Errorf("postal line %d: %w", p.line, err)
	}
	return rec, nil
}

// ExtractBatch reads up to batchSize records. It returns io.EOF once the input
// is exhausted and no records remain.
func (p *PostalReader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.PostalRecord, error) {
	batch := make([]domain.PostalRecord, 0, batchSize)
	for len(batch) < batchSize {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		rec, err := p.Read()
		if errors.Is(err, io.EOF) {
			if len(batch) == 0 {
				return nil, io.EOF
			}
			return batch, nil
		}
		if err != nil {
			return batch, err
		}
		batch = append(batch, rec)
	}
	return batch, nil
}

// ReadPostalCodes reads every record from r.
func ReadPostalCodes(r io.Reader) ([]domain.PostalRecord, error) {
	pr := NewPostalReader(r)
	var out []domain.PostalRecord
	for {
		rec, err := pr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func parsePostalFields(fields []string) (domain.PostalRecord, error) {
	if len(fields) < postalColumns-1 {
		return domain.PostalRecord{}, fmt.Errorf("expected %d columns, got %d", postalColumns, len(fields))
	}

	lat, err := parseCoord(fields[9])
	if err != nil {
		return domain.PostalRecord{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseCoord(fields[10])
	if err != nil {
		return domain.PostalRecord{}, fmt.Errorf("longitude: %w", err)
	}

	rec := domain.PostalRecord{
		CountryCode: strings.TrimSpace(fields[0]),
		Zipcode:     strings.TrimSpace(fields[1]),
		City:        strings.TrimSpace(fields[2]),
		StateName:   strings.TrimSpace(fields[3]),
		StateCode:   strings.TrimSpace(fields[4]),
		County:      strings.TrimSpace(fields[5]),
		CountyCode:  strings.TrimSpace(fields[6]),
		Latitude:    lat,
		Longitude:   lon,
	}
	if len(fields) >= postalColumns {
		rec.Accuracy = strings.TrimSpace(fields[11])
	}
	return rec, nil
}

// parseCoord parses a coordinate; blank values read as 0.
func parseCoord(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

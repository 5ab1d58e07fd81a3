package geonames

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

var centroidHeader = []string{"zip", "latitude", "longitude"}

// CentroidWriter writes the zip,latitude,longitude table.
// It implements pipeline.BatchLoader.
type CentroidWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCentroidWriter creates a writer. The header is written with the first batch.
func NewCentroidWriter(w io.Writer) *CentroidWriter {
	return &CentroidWriter{w: csv.NewWriter(w)}
}

// LoadBatch appends centroids to the table.
func (c *CentroidWriter) LoadBatch(_ context.Context, rows []domain.ZipCentroid) error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	for _, row := range rows {
		if err := c.w.Write(formatCentroid(row)); err != nil {
			return fmt.Errorf("write centroid %s: %w", row.Zipcode, err)
		}
	}
	c.w.Flush()
	return c.w.Error()
}

// Close writes the header if nothing else was written and flushes.
func (c *CentroidWriter) Close() error {
	if err := c.writeHeader(); err != nil {
		return err
	}
	c.w.Flush()
	return c.w.Error()
}

func (c *CentroidWriter) writeHeader() error {
	if c.wroteHeader {
		return nil
	}
	c.wroteHeader = true
	if err := c.w.Write(centroidHeader); err != nil {
		return fmt.Errorf("write centroid header: %w", err)
	}
	return nil
}

// WriteCentroids writes a complete centroid table.
func WriteCentroids(w io.Writer, rows []domain.ZipCentroid) error {
	cw := NewCentroidWriter(w)
	if err := cw.LoadBatch(context.Background(), rows); err != nil {
		return err
	}
	return cw.Close()
}

func formatCentroid(c domain.ZipCentroid) []string {
	return []string{
		c.Zipcode,
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	}
}

// ReadCentroids parses a centroid table with a zip,latitude,longitude header.
// Column order is taken from the header.
func ReadCentroids(r io.Reader) ([]domain.ZipCentroid, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read centroid header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range centroidHeader {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("centroid table missing column %q", col)
		}
	}

	var out []domain.ZipCentroid
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("centroid line %d: %w", line, err)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[idx["latitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("centroid line %d latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[idx["longitude"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("centroid line %d longitude: %w", line, err)
		}
		out = append(out, domain.ZipCentroid{
			Zipcode:   NormalizeZip(fields[idx["zip"]]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
}

// CentroidIndex is an immutable ZIP → centroid lookup.
type CentroidIndex struct {
	byZip map[string]domain.ZipCentroid
}

// NewCentroidIndex indexes centroids by ZIP. Later duplicates win.
func NewCentroidIndex(rows []domain.ZipCentroid) *CentroidIndex {
	byZip := make(map[string]domain.ZipCentroid, len(rows))
	for _, row := range rows {
		byZip[row.Zipcode] = row
	}
	return &CentroidIndex{byZip: byZip}
}

// LoadCentroidIndex reads a centroid table from disk.
func LoadCentroidIndex(path string) (*CentroidIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open centroid table: %w", err)
	}
	defer f.Close()

	rows, err := ReadCentroids(f)
	if err != nil {
		return nil, err
	}
	return NewCentroidIndex(rows), nil
}

// Lookup returns the centroid for a ZIP.
func (c *CentroidIndex) Lookup(zipcode string) (domain.ZipCentroid, bool) {
	row, ok := c.byZip[NormalizeZip(zipcode)]
	return row, ok
}

// Len returns the number of indexed ZIPs.
func (c *CentroidIndex) Len() int { return len(c.byZip) }

// Zips returns the indexed ZIPs as a set.
func (c *CentroidIndex) Zips() map[string]struct{} {
	out := make(map[string]struct{}, len(c.byZip))
	for zip := range c.byZip {
		out[zip] = struct{}{}
	}
	return out
}

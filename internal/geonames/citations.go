package geonames

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CitationStats summarizes a citations filter run.
type CitationStats struct {
	Read int
	Kept int
}

// NormalizeZip reduces common ZIP spellings to five digits:
// "90012-1234" → "90012", "90012.0" → "90012". Anything else is returned trimmed.
func NormalizeZip(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "-."); i >= 0 {
		s = s[:i]
	}
	return s
}

// FilterCitations copies the header and every citation row whose ZIP column
// is in zips. The ZIP column is matched case-insensitively by header name.
func FilterCitations(r io.Reader, w io.Writer, zips map[string]struct{}, zipColumn string) (CitationStats, error) {
	var stats CitationStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cw := csv.NewWriter(w)

	header, err := cr.Read()
	if err != nil {
		return stats, fmt.Errorf("read citations header: %w", err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), zipColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return stats, fmt.Errorf("citations missing zip column %q", zipColumn)
	}
	if err := cw.Write(header); err != nil {
		return stats, fmt.Errorf("write citations header: %w", err)
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("citations row %d: %w", stats.Read+2, err)
		}
		stats.Read++
		if col >= len(fields) {
			continue
		}
		if _, ok := zips[NormalizeZip(fields[col])]; !ok {
			continue
		}
		if err := cw.Write(fields); err != nil {
			return stats, fmt.Errorf("write citation: %w", err)
		}
		stats.Kept++
	}

	cw.Flush()
	return stats, cw.Error()
}

package domain

import (
	"fmt"
	"math"
)

// dayLabels is the label-encoder table fit at training time. Keep verbatim.
var dayLabels = map[string]int{
	"Friday":    0,
	"Monday":    1,
	"Saturday":  2,
	"Sunday":    3,
	"Thursday":  4,
	"Tuesday":   5,
	"Wednesday": 6,
}

// DaysOfWeek lists weekday names in calendar order for form rendering.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Encode maps raw form input to the sparse feature record the classifier expects.
// When schema is nil the ZIP is emitted as a single zip_<code> flag (degraded mode).
func Encode(raw RawInput, schema FeatureSchema) (*SparseFeatureRecord, error) {
	hour, err := NormalizeHour(raw.Hour, raw.Meridiem)
	if err != nil {
		return nil, err
	}

	day, err := EncodeDay(raw.DayOfWeek)
	if err != nil {
		return nil, err
	}

	sin, cos := CyclicalHour(hour)

	zipCols := schema.ZipColumns()
	rec := NewSparseFeatureRecord(3 + max(len(zipCols), 1))
	rec.Set(ColumnDayOfWeek, Number(float64(day)))
	rec.Set(ColumnHourSin, Number(sin))
	rec.Set(ColumnHourCos, Number(cos))

	if !schema.Available() {
		rec.Set(ZipColumnPrefix+raw.Zipcode, Bool(true))
		return rec, nil
	}

	target := ZipColumnPrefix + raw.Zipcode
	found := false
	for _, col := range zipCols {
		match := col == target
		rec.Set(col, Bool(match))
		found = found || match
	}
	if !found {
		if _, ok := rec.Get(ColumnZipOther); ok {
			rec.Set(ColumnZipOther, Bool(true))
		}
	}

	return rec, nil
}

// NormalizeHour converts a 12-hour clock value to 24-hour time.
// PM adds 12 except at 12 PM; 12 AM becomes 0; anything else is unchanged.
func NormalizeHour(hour int, meridiem Meridiem) (int, error) {
	switch {
	case meridiem == PM && hour != 12:
		hour += 12
	case meridiem == AM && hour == 12:
		hour = 0
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d %s is outside 0-23", ErrInvalidInput, hour, meridiem)
	}
	return hour, nil
}

// CyclicalHour returns (sin, cos) of the hour's angle on a 24-hour circle.
func CyclicalHour(hour int) (float64, float64) {
	angle := 2 * math.Pi * float64(hour) / 24
	return math.Sin(angle), math.Cos(angle)
}

// HourFromCyclical recovers the 24-hour bucket from a sine/cosine pair.
func HourFromCyclical(sin, cos float64) int {
	angle := math.Atan2(sin, cos)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return int(math.Round(angle*24/(2*math.Pi))) % 24
}

// EncodeDay returns the trained label for a weekday name.
func EncodeDay(day string) (int, error) {
	label, ok := dayLabels[day]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, day)
	}
	return label, nil
}

package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testZipMatched   = "90001"
	testZipUnmatched = "99999"
)

func testSchema(t *testing.T) FeatureSchema {
	t.Helper()
	schema, err := NewFeatureSchema([]string{
		"zip_90001", "zip_90002", ColumnZipOther, ColumnDayOfWeek, ColumnHourSin, ColumnHourCos,
	})
	require.NoError(t, err)
	return schema
}

func TestEncodeDay(t *testing.T) {
	tests := []struct {
		day      string
		expected int
	}{
		{"Friday", 0},
		{"Monday", 1},
		{"Saturday", 2},
		{"Sunday", 3},
		{"Thursday", 4},
		{"Tuesday", 5},
		{"Wednesday", 6},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			label, err := EncodeDay(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestEncodeDay_Invalid(t *testing.T) {
	for _, day := range []string{"Funday", "", "monday", "MONDAY", "Mon"} {
		t.Run(day, func(t *testing.T) {
			_, err := EncodeDay(day)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDaysOfWeek_AllEncodable(t *testing.T) {
	require.Len(t, DaysOfWeek, 7)
	seen := map[int]bool{}
	for _, day := range DaysOfWeek {
		label, err := EncodeDay(day)
		require.NoError(t, err)
		seen[label] = true
	}
	assert.Len(t, seen, 7)
}

func TestNormalizeHour(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		meridiem Meridiem
		expected int
	}{
		{"midnight", 12, AM, 0},
		{"noon", 12, PM, 12},
		{"1 AM", 1, AM, 1},
		{"1 PM", 1, PM, 13},
		{"11 AM", 11, AM, 11},
		{"11 PM", 11, PM, 23},
		{"unknown meridiem leaves hour", 7, Meridiem("XM"), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHour(tt.hour, tt.meridiem)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeHour_OutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		meridiem Meridiem
	}{
		{"negative", -1, AM},
		{"13 PM", 13, PM},
		{"24 AM", 24, AM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeHour(tt.hour, tt.meridiem)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCyclicalHour_RoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		sin, cos := CyclicalHour(h)
		assert.InDelta(t, 1.0, sin*sin+cos*cos, 1e-12, "hour %d", h)
		assert.Equal(t, h, HourFromCyclical(sin, cos), "hour %d", h)
	}
}

func TestCyclicalHour_WrapIsContinuous(t *testing.T) {
	sin23, cos23 := CyclicalHour(23)
	sin0, cos0 := CyclicalHour(0)
	sin1, cos1 := CyclicalHour(1)

	d230 := math.Hypot(sin23-sin0, cos23-cos0)
	d01 := math.Hypot(sin0-sin1, cos0-cos1)
	assert.InDelta(t, d01, d230, 1e-12)
}

func TestEncode_CoreFeatures(t *testing.T) {
	raw := RawInput{Zipcode: testZipMatched, DayOfWeek: "Monday", Hour: 6, Meridiem: PM}

	rec, err := Encode(raw, testSchema(t))
	require.NoError(t, err)

	day, ok := rec.Get(ColumnDayOfWeek)
	require.True(t, ok)
	assert.Equal(t, 1.0, day.Float64())
	assert.False(t, day.IsBool())

	hourSin, _ := rec.Get(ColumnHourSin)
	hourCos, _ := rec.Get(ColumnHourCos)
	assert.InDelta(t, -1.0, hourSin.Float64(), 1e-12) // 18:00
	assert.InDelta(t, 0.0, hourCos.Float64(), 1e-12)
}

func TestEncode_ZipMatched(t *testing.T) {
	raw := RawInput{Zipcode: testZipMatched, DayOfWeek: "Friday", Hour: 12, Meridiem: AM}

	rec, err := Encode(raw, testSchema(t))
	require.NoError(t, err)

	want := []string{ColumnDayOfWeek, ColumnHourSin, ColumnHourCos, "zip_90001", "zip_90002", ColumnZipOther}
	if diff := cmp.Diff(want, rec.Names()); diff != "" {
		t.Errorf("record names mismatch (-want +got):\n%s", diff)
	}

	assertFlag(t, rec, "zip_90001", true)
	assertFlag(t, rec, "zip_90002", false)
	assertFlag(t, rec, ColumnZipOther, false)
}

func TestEncode_ZipUnmatchedFallsBackToOther(t *testing.T) {
	raw := RawInput{Zipcode: testZipUnmatched, DayOfWeek: "Friday", Hour: 3, Meridiem: PM}

	rec, err := Encode(raw, testSchema(t))
	require.NoError(t, err)

	assertFlag(t, rec, "zip_90001", false)
	assertFlag(t, rec, "zip_90002", false)
	assertFlag(t, rec, ColumnZipOther, true)
}

func TestEncode_ZipUnmatchedWithoutOtherBucket(t *testing.T) {
	schema, err := NewFeatureSchema([]string{"zip_90001", ColumnDayOfWeek, ColumnHourSin, ColumnHourCos})
	require.NoError(t, err)

	rec, err := Encode(RawInput{Zipcode: testZipUnmatched, DayOfWeek: "Sunday", Hour: 1, Meridiem: AM}, schema)
	require.NoError(t, err)

	assert.Equal(t, 4, rec.Len())
	assertFlag(t, rec, "zip_90001", false)
	_, ok := rec.Get(ColumnZipOther)
	assert.False(t, ok, "zip_other must not be invented when the schema lacks it")
}

func TestEncode_DegradedMode(t *testing.T) {
	raw := RawInput{Zipcode: "90012", DayOfWeek: "Tuesday", Hour: 9, Meridiem: AM}

	rec, err := Encode(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnDayOfWeek, ColumnHourSin, ColumnHourCos, "zip_90012"}, rec.Names())
	assertFlag(t, rec, "zip_90012", true)
}

func TestEncode_InvalidWeekday(t *testing.T) {
	raw := RawInput{Zipcode: testZipMatched, DayOfWeek: "Funday", Hour: 9, Meridiem: AM}

	_, err := Encode(raw, testSchema(t))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "Funday")
}

func TestEncode_InvalidHour(t *testing.T) {
	raw := RawInput{Zipcode: testZipMatched, DayOfWeek: "Monday", Hour: 25, Meridiem: AM}

	_, err := Encode(raw, testSchema(t))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func assertFlag(t *testing.T, rec *SparseFeatureRecord, name string, want bool) {
	t.Helper()
	v, ok := rec.Get(name)
	require.True(t, ok, "missing column %s", name)
	assert.True(t, v.IsBool(), "column %s should be boolean", name)
	assert.Equal(t, want, v.Bool(), "column %s", name)
}

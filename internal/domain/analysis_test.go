package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeInput(t *testing.T, raw RawInput) Analysis {
	t.Helper()
	rec, err := Encode(raw, testSchema(t))
	require.NoError(t, err)
	return Analyze(raw.Zipcode, rec)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawInput
		score    float64
		pct      int
		band     string
		recs     []string
		insights []string
	}{
		{
			name:     "weekday business hours outside listed zips",
			raw:      RawInput{Zipcode: testZipUnmatched, DayOfWeek: "Monday", Hour: 10, Meridiem: AM},
			score:    0.10,
			pct:      10,
			band:     "Low",
			recs:     []string{"Always check posted parking signs", "Consider using parking meter apps for convenience"},
			insights: []string{"Generally favorable parking conditions"},
		},
		{
			name:  "every factor at its weight",
			raw:   RawInput{Zipcode: testZipMatched, DayOfWeek: "Saturday", Hour: 11, Meridiem: PM},
			score: 1.0,
			pct:   100,
			band:  "High",
			recs: []string{
				"Consider alternative parking areas if possible",
				"Use paid parking or parking apps to ensure compliance",
				"Avoid parking during peak enforcement hours (10 PM - 5 AM)",
				"Weekend parking requires extra caution",
				"Check for special event restrictions",
				"Always check posted parking signs",
				"Consider using parking meter apps for convenience",
			},
			insights: []string{"Multiple high-risk factors detected", "High-risk area during high-risk hours"},
		},
		{
			name:  "listed zip on a moderate morning",
			raw:   RawInput{Zipcode: "90210", DayOfWeek: "Tuesday", Hour: 7, Meridiem: AM},
			score: 0.65,
			pct:   65,
			band:  "High",
			recs: []string{
				"Consider alternative parking areas if possible",
				"Use paid parking or parking apps to ensure compliance",
				"Always check posted parking signs",
				"Consider using parking meter apps for convenience",
			},
			insights: []string{},
		},
		{
			name:  "sunday evening outside listed zips",
			raw:   RawInput{Zipcode: testZipUnmatched, DayOfWeek: "Sunday", Hour: 7, Meridiem: PM},
			score: 0.40,
			pct:   40,
			band:  "Moderate",
			recs: []string{
				"Weekend parking requires extra caution",
				"Check for special event restrictions",
				"Always check posted parking signs",
				"Consider using parking meter apps for convenience",
			},
			insights: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyzeInput(t, tt.raw)

			assert.InDelta(t, tt.score, a.Score, 1e-9)
			assert.Equal(t, tt.pct, a.Percentage)
			assert.Equal(t, tt.band, a.Band)
			assert.Equal(t, tt.recs, a.Recommendations)
			assert.Equal(t, tt.insights, a.Insights)
		})
	}
}

func TestAnalyze_FactorDetail(t *testing.T) {
	a := analyzeInput(t, RawInput{Zipcode: testZipUnmatched, DayOfWeek: "Monday", Hour: 10, Meridiem: AM})

	assert.Equal(t, Factor{
		Score: 0, Weight: LocationWeight, Percentage: 0, Status: "Moderate Risk Area",
		Description: "This area has relatively lower parking violation rates",
	}, a.Factors.Location)
	assert.Equal(t, TimingFactor{
		Factor: Factor{
			Score: 0.05, Weight: TimingWeight, Percentage: 14, Status: "Low Risk Hours",
			Description: "Business hours typically have lower violation rates",
		},
		Hour: 10,
	}, a.Factors.Timing)
	assert.Equal(t, DayFactor{
		Factor: Factor{
			Score: 0.05, Weight: DayOfWeekWeight, Percentage: 20, Status: "Low Risk Day",
			Description: "Weekdays typically have lower violation rates",
		},
		Day: "Monday",
	}, a.Factors.DayOfWeek)
}

func TestTimingFactor_Boundaries(t *testing.T) {
	tests := []struct {
		hour   int
		status string
	}{
		{0, "Very High Risk Hours"},
		{5, "Very High Risk Hours"},
		{6, "Moderate Risk Hours"},
		{8, "Moderate Risk Hours"},
		{9, "Low Risk Hours"},
		{17, "Low Risk Hours"},
		{18, "Moderate Risk Hours"},
		{21, "Moderate Risk Hours"},
		{22, "Very High Risk Hours"},
		{23, "Very High Risk Hours"},
	}

	for _, tt := range tests {
		f := timingFactor(tt.hour)
		assert.Equal(t, tt.status, f.Status, "hour %d", tt.hour)
		assert.Equal(t, tt.hour, f.Hour)
	}
}

func TestAnalyze_HourMatchesSubmittedTime(t *testing.T) {
	for hour := 1; hour <= 12; hour++ {
		for _, m := range []Meridiem{AM, PM} {
			want, err := NormalizeHour(hour, m)
			require.NoError(t, err)

			a := analyzeInput(t, RawInput{Zipcode: testZipMatched, DayOfWeek: "Monday", Hour: hour, Meridiem: m})
			assert.Equal(t, want, a.Factors.Timing.Hour, "%d %s", hour, m)
		}
	}
}

func TestDayName(t *testing.T) {
	for name, label := range dayLabels {
		assert.Equal(t, name, DayName(label))
	}
	assert.Empty(t, DayName(7))
}

func TestIsHighRiskZip(t *testing.T) {
	assert.True(t, IsHighRiskZip("90001"))
	assert.True(t, IsHighRiskZip("90405"))
	assert.False(t, IsHighRiskZip("90012"))
	assert.False(t, IsHighRiskZip(""))
}

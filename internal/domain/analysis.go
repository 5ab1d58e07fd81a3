package domain

import "math"

// Factor weights. A factor scores either zero or a fraction of its weight.
const (
	LocationWeight  = 0.40
	TimingWeight    = 0.35
	DayOfWeekWeight = 0.25
)

// highRiskZips are ZIPs with elevated citation counts in the training data.
var highRiskZips = map[string]struct{}{
	"90001": {}, "90002": {}, "90003": {}, "90011": {}, "90015": {}, "90017": {}, "90019": {},
	"90028": {}, "90038": {}, "90042": {}, "90057": {}, "90062": {}, "90210": {}, "90211": {},
	"90291": {}, "90292": {}, "90401": {}, "90402": {}, "90403": {}, "90404": {}, "90405": {},
}

// IsHighRiskZip reports whether the ZIP is on the elevated-citation list.
func IsHighRiskZip(zipcode string) bool {
	_, ok := highRiskZips[zipcode]
	return ok
}

// Factor is one weighted contribution to the heuristic score.
type Factor struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Percentage  int     `json:"percentage"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}

// TimingFactor carries the 24-hour bucket the timing score was read from.
type TimingFactor struct {
	Factor
	Hour int `json:"hour"`
}

// DayFactor carries the weekday name the day score was read from.
type DayFactor struct {
	Factor
	Day string `json:"day"`
}

// Factors groups the three weighted contributions.
type Factors struct {
	Location  Factor       `json:"location"`
	Timing    TimingFactor `json:"timing"`
	DayOfWeek DayFactor    `json:"day_of_week"`
}

// Analysis explains a query with a location/time/day heuristic. It sits
// next to the classifier result and never changes the predicted label.
type Analysis struct {
	Score           float64  `json:"score"`
	Percentage      int      `json:"percentage"`
	Band            string   `json:"band"` // "High", "Moderate", "Low"
	Factors         Factors  `json:"factors"`
	Recommendations []string `json:"recommendations"`
	Insights        []string `json:"insights"`
}

// Analyze scores an encoded record. The hour is recovered from the cyclical
// columns and the weekday from its trained label.
func Analyze(zipcode string, rec *SparseFeatureRecord) Analysis {
	var dayLabel int
	var sin, cos float64
	if v, ok := rec.Get(ColumnDayOfWeek); ok {
		dayLabel = int(v.Float64())
	}
	if v, ok := rec.Get(ColumnHourSin); ok {
		sin = v.Float64()
	}
	if v, ok := rec.Get(ColumnHourCos); ok {
		cos = v.Float64()
	}

	f := Factors{
		Location:  locationFactor(zipcode),
		Timing:    timingFactor(HourFromCyclical(sin, cos)),
		DayOfWeek: dayFactor(dayLabel),
	}

	score := f.Location.Score + f.Timing.Score + f.DayOfWeek.Score
	a := Analysis{
		Score:      score,
		Percentage: int(math.Round(score * 100)),
		Band:       scoreBand(score),
		Factors:    f,
	}
	a.Recommendations = recommendations(f)
	a.Insights = insights(f, a.Percentage)
	return a
}

func newFactor(score, weight float64, status, description string) Factor {
	return Factor{
		Score:       score,
		Weight:      weight,
		Percentage:  int(math.Round(score / weight * 100)),
		Status:      status,
		Description: description,
	}
}

func locationFactor(zipcode string) Factor {
	if IsHighRiskZip(zipcode) {
		return newFactor(LocationWeight, LocationWeight, "High Risk Area",
			"This ZIP code has elevated parking violation rates")
	}
	return newFactor(0, LocationWeight, "Moderate Risk Area",
		"This area has relatively lower parking violation rates")
}

func timingFactor(hour int) TimingFactor {
	var f Factor
	switch {
	case hour >= 22 || hour <= 5:
		f = newFactor(0.35, TimingWeight, "Very High Risk Hours",
			"Late night/early morning hours have highest violation rates")
	case hour >= 18 || hour <= 8:
		f = newFactor(0.15, TimingWeight, "Moderate Risk Hours",
			"Evening/early morning hours have moderate violation rates")
	default:
		f = newFactor(0.05, TimingWeight, "Low Risk Hours",
			"Business hours typically have lower violation rates")
	}
	return TimingFactor{Factor: f, Hour: hour}
}

func dayFactor(label int) DayFactor {
	var f Factor
	switch DayName(label) {
	case "Friday", "Saturday", "Sunday":
		f = newFactor(0.25, DayOfWeekWeight, "High Risk Day",
			"Weekends have increased parking enforcement and violations")
	case "Thursday", "Tuesday":
		f = newFactor(0.10, DayOfWeekWeight, "Moderate Risk Day",
			"Weekdays have moderate parking enforcement")
	default:
		f = newFactor(0.05, DayOfWeekWeight, "Low Risk Day",
			"Weekdays typically have lower violation rates")
	}
	return DayFactor{Factor: f, Day: DayName(label)}
}

func scoreBand(score float64) string {
	switch {
	case score >= 0.5:
		return "High"
	case score >= 0.3:
		return "Moderate"
	default:
		return "Low"
	}
}

func recommendations(f Factors) []string {
	var recs []string
	if f.Location.Score > 0.2 {
		recs = append(recs,
			"Consider alternative parking areas if possible",
			"Use paid parking or parking apps to ensure compliance")
	}
	if f.Timing.Score > 0.2 {
		recs = append(recs, "Avoid parking during peak enforcement hours (10 PM - 5 AM)")
	}
	if f.DayOfWeek.Score > 0.15 {
		recs = append(recs,
			"Weekend parking requires extra caution",
			"Check for special event restrictions")
	}
	return append(recs,
		"Always check posted parking signs",
		"Consider using parking meter apps for convenience")
}

func insights(f Factors, percentage int) []string {
	out := []string{}
	if percentage >= 70 {
		out = append(out, "Multiple high-risk factors detected")
	}
	if f.Location.Score > 0.2 && f.Timing.Score > 0.2 {
		out = append(out, "High-risk area during high-risk hours")
	}
	if percentage <= 30 {
		out = append(out, "Generally favorable parking conditions")
	}
	return out
}

// DayName inverts the trained weekday label. Unknown labels return "".
func DayName(label int) string {
	for name, l := range dayLabels {
		if l == label {
			return name
		}
	}
	return ""
}

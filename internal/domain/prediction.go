package domain

import (
	"strconv"
	"time"
)

// RiskLevel is the coarse label shown to the user.
type RiskLevel string

const (
	RiskHigh RiskLevel = "High"
	RiskLow  RiskLevel = "Low"
)

// RiskLevelForLabel maps a classifier label to a risk level.
// Label 0 is High; every other label is Low. The convention is fixed by training.
func RiskLevelForLabel(label int) RiskLevel {
	if label == 0 {
		return RiskHigh
	}
	return RiskLow
}

// Message renders the result line embedded in the results page.
func (r RiskLevel) Message() string {
	return "Risk Level: " + string(r)
}

// Location describes the submitted ZIP as far as the service knows it.
type Location struct {
	Zipcode          string  `json:"zipcode"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Known            bool    `json:"known"`                // present in the LA centroid table
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"
	Time             string  `json:"time,omitempty"`       // submitted time, e.g. "9:00 PM"
	Day              string  `json:"day,omitempty"`
}

// HasCoords reports whether a centroid is attached.
func (l Location) HasCoords() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// Prediction is the result of one risk query.
type Prediction struct {
	ID            string    `json:"id"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Label         int       `json:"prediction"`
	Probabilities []float64 `json:"probabilities"`
	Message       string    `json:"message"`
	Degraded      bool      `json:"degraded"`
	Input         RawInput  `json:"input"`
	Location      Location  `json:"location"`
	Analysis      Analysis  `json:"analysis"`
	ModelVersion  string    `json:"model_version,omitempty"`
	Timestamp     time.Time `json:"timestamp"`

	Features DenseFeatureVector `json:"-"`
}

// DisplayTime renders the submitted time the way the form shows it, e.g. "9:00 PM".
func (p Prediction) DisplayTime() string {
	return strconv.Itoa(p.Input.Hour) + ":00 " + string(p.Input.Meridiem)
}

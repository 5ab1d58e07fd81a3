package domain

// Meridiem is the AM/PM half of a 12-hour clock reading.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// Valid reports whether m is AM or PM.
func (m Meridiem) Valid() bool {
	return m == AM || m == PM
}

// RawInput is a single risk query as submitted by the form.
type RawInput struct {
	Zipcode   string   `json:"zipcode"`
	DayOfWeek string   `json:"day_of_week"`
	Hour      int      `json:"hour"`
	Meridiem  Meridiem `json:"am_pm"`
}

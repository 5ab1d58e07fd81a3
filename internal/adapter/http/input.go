package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

// formFields is the query as submitted, before coercion.
type formFields struct {
	Zipcode   string
	DayOfWeek string
	Hour      string
	AmPm      string
}

// jsonFields accepts hour as either a JSON string or a JSON number.
type jsonFields struct {
	Zipcode   string          `json:"zipcode"`
	DayOfWeek string          `json:"day_of_week"`
	Hour      json.RawMessage `json:"hour"`
	AmPm      string          `json:"am_pm"`
}

func (j jsonFields) fields() (formFields, error) {
	f := formFields{Zipcode: j.Zipcode, DayOfWeek: j.DayOfWeek, AmPm: j.AmPm}

	raw := bytes.TrimSpace(j.Hour)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &f.Hour); err != nil {
			return f, fmt.Errorf("%w: hour: %v", domain.ErrInvalidInput, err)
		}
	default:
		f.Hour = string(raw)
	}
	return f, nil
}

// coerce checks presence and shape of every field. Weekday names are left to
// the encoder.
func coerce(f formFields) (domain.RawInput, error) {
	f.Zipcode = strings.TrimSpace(f.Zipcode)
	f.DayOfWeek = strings.TrimSpace(f.DayOfWeek)
	f.Hour = strings.TrimSpace(f.Hour)
	f.AmPm = strings.ToUpper(strings.TrimSpace(f.AmPm))

	var missing []string
	for _, field := range []struct{ name, value string }{
		{"zipcode", f.Zipcode},
		{"day_of_week", f.DayOfWeek},
		{"hour", f.Hour},
		{"am_pm", f.AmPm},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return domain.RawInput{}, fmt.Errorf("%w: missing required fields: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	hour, err := strconv.Atoi(f.Hour)
	if err != nil || hour < 1 || hour > 12 {
		return domain.RawInput{}, fmt.Errorf("%w: hour must be a whole number from 1 to 12, got %q", domain.ErrInvalidInput, f.Hour)
	}

	meridiem := domain.Meridiem(f.AmPm)
	if !meridiem.Valid() {
		return domain.RawInput{}, fmt.Errorf("%w: am_pm must be AM or PM, got %q", domain.ErrInvalidInput, f.AmPm)
	}

	return domain.RawInput{
		Zipcode:   f.Zipcode,
		DayOfWeek: f.DayOfWeek,
		Hour:      hour,
		Meridiem:  meridiem,
	}, nil
}

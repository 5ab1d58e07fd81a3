// Package domain models the ParkSafe LA parking-citation risk features and
// the encoding contract between the web form and the trained classifier.
//
// # Input
//
// The form submits four fields:
//
//	zipcode      "90012"       free text, not validated against a ZIP list
//	day_of_week  "Saturday"    one of the seven English weekday names
//	hour         "11"          12-hour clock, 1–12
//	am_pm        "PM"          "AM" or "PM"
//
// # Feature Layout
//
// The classifier was trained on a frame with these columns:
//
//	day_of_week   integer label from the fixed table below
//	hour_sin      sin(2π·h/24) for the 24-hour value h
//	hour_cos      cos(2π·h/24)
//	zip_<code>    one boolean dummy per training ZIP
//	zip_other     optional bucket for ZIPs outside the training set
//
// The exact column order is read from the classifier artifact at startup
// ([FeatureSchema]). It is passed explicitly into [Encode] and [Align]; nothing
// in this package reads it from global state.
//
// # Day Labels
//
// Day codes come from the label encoder that was fit during training:
//
//	Friday 0 | Monday 1 | Saturday 2 | Sunday 3 | Thursday 4 | Tuesday 5 | Wednesday 6
//
// The table is data, not logic. It happens to be alphabetical, but it must be
// kept verbatim rather than recomputed by sorting, because a retrained encoder
// is free to assign different codes.
//
// # Hour Normalization
//
//	12 AM → 0    1 AM → 1    11 AM → 11
//	12 PM → 12   1 PM → 13   11 PM → 23
//
// The sine/cosine pair places the hour on a circle so 23 and 0 stay adjacent.
//
// # Degraded Mode
//
// Some artifacts carry no feature names. Encoding then emits a single
// zip_<code> column with no knowledge of the trained dummies, and [Align]
// passes the sparse record through unchanged. Predictions in this mode are
// best effort only.
//
// # Alignment Fill
//
// Columns the encoder did not produce are filled with boolean false, for every
// column kind. A numeric column missing from the record therefore reads as 0.
package domain

package domain

import "errors"

var (
	// ErrInvalidInput marks a query the encoder cannot represent, such as an
	// unknown weekday or an hour outside the day. Surface it as a form error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaUnavailable describes an artifact without feature names. It is
	// not a failure: callers log it and continue in degraded mode.
	ErrSchemaUnavailable = errors.New("feature schema unavailable")
)

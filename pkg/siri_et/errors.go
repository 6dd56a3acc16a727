package siri_et

import "fmt"

// InputError is returned when there is no document to parse at all
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid timetable input: %s", e.Reason)
}

// MalformedInputError is returned when the document is not well-formed XML
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("failed to parse timetable XML: %s", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

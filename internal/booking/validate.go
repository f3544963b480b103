package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"timebook/internal/models"
)

// entryTimeLayout is the only accepted timestamp form: local wall-clock time
// without timezone or fractional seconds, as the target system expects.
const entryTimeLayout = "2006-01-02T15:04:05"

var entryTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)

var (
	// ErrInvalidDatetime reports a timestamp that matched the pattern but is
	// not a real calendar datetime (e.g. month 13).
	ErrInvalidDatetime = errors.New("invalid datetime")

	// ErrEntryOrder reports entryEnd not strictly after entryStart.
	ErrEntryOrder = errors.New("entryEnd must be after entryStart")
)

// ValidationError lists every violated field of a booking request.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Validate checks a booking request for required fields, timestamp format and
// interval ordering. It is a pure function: no side effects, no clock access.
//
// All field-level violations are collected into a single *ValidationError so
// the caller can report them in one response. The datetime parse and ordering
// checks only run once the request is syntactically sound.
func Validate(req models.BookingRequest) error {
	var details []string

	if strings.TrimSpace(req.UserSign) == "" {
		details = append(details, "userSign is required")
	}
	if strings.TrimSpace(req.Barcode) == "" {
		details = append(details, "barcode is required")
	}
	details = append(details, checkEntryTime("entryStart", req.EntryStart)...)
	details = append(details, checkEntryTime("entryEnd", req.EntryEnd)...)

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}

	// Second, semantic pass: the pattern admits impossible dates.
	start, err := time.Parse(entryTimeLayout, req.EntryStart)
	if err != nil {
		return fmt.Errorf("%w: entryStart %q", ErrInvalidDatetime, req.EntryStart)
	}
	end, err := time.Parse(entryTimeLayout, req.EntryEnd)
	if err != nil {
		return fmt.Errorf("%w: entryEnd %q", ErrInvalidDatetime, req.EntryEnd)
	}

	if !end.After(start) {
		return ErrEntryOrder
	}

	return nil
}

func checkEntryTime(field, value string) []string {
	if value == "" {
		return []string{field + " is required"}
	}
	if !entryTimePattern.MatchString(value) {
		return []string{field + " must match YYYY-MM-DDTHH:mm:ss"}
	}
	return nil
}

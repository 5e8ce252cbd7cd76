// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// RawIssue is an issue as yielded by an issue source, before normalization.
// A nil pointer or an empty ID means the field was absent from the payload.
type RawIssue struct {
	ID        json.Number `json:"id"`
	State     *string     `json:"state"`
	Title     *string     `json:"title"`
	CreatedAt *string     `json:"created_at"`

	// FieldErrors holds the fields whose JSON value had the wrong type,
	// keyed by field name ("record" when the entry is not an object).
	FieldErrors map[string]error `json:"-"`
}

// rawIssueFields is the order in which field errors are reported.
var rawIssueFields = []string{"record", "id", "state", "title", "created_at"}

// UnmarshalJSON decodes a raw issue without ever failing: values of the
// wrong type are kept in FieldErrors so that one bad record does not reject
// the document around it. The id may be a JSON number or a string.
func (r *RawIssue) UnmarshalJSON(data []byte) error {
	*r = RawIssue{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		r.addFieldError("record", fmt.Errorf("expected an object: %w", err))
		return nil
	}

	if value, ok := fields["id"]; ok && !isNull(value) {
		var id json.Number
		var text string
		switch {
		case json.Unmarshal(value, &id) == nil:
			r.ID = id
		case json.Unmarshal(value, &text) == nil:
			// Kept as is; the normalizer rejects non-integer ids.
			r.ID = json.Number(text)
		default:
			r.addFieldError("id", fmt.Errorf("expected a number or a string, got %s", value))
		}
	}
	r.State = r.decodeString(fields, "state")
	r.Title = r.decodeString(fields, "title")
	r.CreatedAt = r.decodeString(fields, "created_at")
	return nil
}

// FieldError returns the first field that failed to decode, if any.
func (r RawIssue) FieldError() (string, error) {
	for _, field := range rawIssueFields {
		if err, ok := r.FieldErrors[field]; ok {
			return field, err
		}
	}
	return "", nil
}

func (r *RawIssue) decodeString(fields map[string]json.RawMessage, name string) *string {
	value, ok := fields[name]
	if !ok || isNull(value) {
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		r.addFieldError(name, fmt.Errorf("expected a string, got %s", value))
		return nil
	}
	return &s
}

func (r *RawIssue) addFieldError(field string, err error) {
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string]error)
	}
	r.FieldErrors[field] = err
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// Issue is a normalized issue record. It is built once by the normalizer
// and only read afterwards.
type Issue struct {
	ID         int64
	State      string
	Title      string
	Repository string
	CreatedAt  time.Time // always UTC
}

// DayBucket holds the issue counts of a single UTC calendar day.
type DayBucket struct {
	Day    time.Time
	Total  int
	Counts map[string]int
}

// Histogram maps a UTC day (midnight) to its bucket.
// Days without any issue are never present.
type Histogram map[time.Time]DayBucket

// TopDay is the day with the most issues and its per-repository breakdown.
type TopDay struct {
	Day         time.Time
	Occurrences map[string]int
}

// DayOf truncates t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

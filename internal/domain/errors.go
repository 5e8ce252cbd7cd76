package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData is returned when there is no issue at all to pick a top day from.
	ErrNoData = errors.New("no issues found in any repository")
	// ErrAllSourcesFailed is returned when every requested repository failed to fetch.
	ErrAllSourcesFailed = errors.New("failed to fetch issues from every repository")
)

// FetchError reports that issues of a repository could not be retrieved.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch issues for %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NormalizationError reports a raw issue that could not be turned into an Issue.
type NormalizationError struct {
	Source string
	ID     string
	Field  string
	Reason string
	Err    error
}

func (e *NormalizationError) Error() string {
	id := e.ID
	if id == "" {
		id = "?"
	}
	msg := fmt.Sprintf("skipping issue %s of %s: %s %s", id, e.Source, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NormalizationError) Unwrap() error { return e.Err }

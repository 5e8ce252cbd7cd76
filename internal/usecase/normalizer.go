package usecase

import (
	"strconv"
	"time"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// Normalize converts a raw issue fetched from source into an Issue.
// The repository of the result is always source, whatever the payload says.
func Normalize(raw domain.RawIssue, source string) (domain.Issue, error) {
	rawID := raw.ID.String()
	fail := func(field, reason string, err error) (domain.Issue, error) {
		return domain.Issue{}, &domain.NormalizationError{
			Source: source,
			ID:     rawID,
			Field:  field,
			Reason: reason,
			Err:    err,
		}
	}

	if field, err := raw.FieldError(); err != nil {
		return fail(field, "has an invalid value", err)
	}
	if rawID == "" {
		return fail("id", "is missing", nil)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fail("id", "is not an integer", err)
	}
	if raw.State == nil {
		return fail("state", "is missing", nil)
	}
	if raw.Title == nil {
		return fail("title", "is missing", nil)
	}
	if raw.CreatedAt == nil {
		return fail("created_at", "is missing", nil)
	}
	createdAt, err := time.Parse(time.RFC3339, *raw.CreatedAt)
	if err != nil {
		return fail("created_at", "is not an ISO-8601 timestamp", err)
	}

	return domain.Issue{
		ID:         id,
		State:      *raw.State,
		Title:      *raw.Title,
		Repository: source,
		CreatedAt:  createdAt.UTC(),
	}, nil
}

// NormalizeAll normalizes every raw issue of a source. Records that fail are
// skipped and their errors returned alongside the valid issues.
func NormalizeAll(raws []domain.RawIssue, source string) ([]domain.Issue, []error) {
	issues := make([]domain.Issue, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		issue, err := Normalize(raw, source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		issues = append(issues, issue)
	}
	return issues, errs
}

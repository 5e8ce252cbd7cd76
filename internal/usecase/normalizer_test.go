package usecase

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/issue-report/internal/domain"
)

func strPtr(s string) *string { return &s }

func rawIssue(id, state, title, createdAt string) domain.RawIssue {
	return domain.RawIssue{ID: json.Number(id), State: strPtr(state), Title: strPtr(title), CreatedAt: strPtr(createdAt)}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name          string
		raw           domain.RawIssue
		expected      domain.Issue
		expectedField string
	}{
		{
			name: "happy path - repository is the requested one",
			raw:  rawIssue("38", "open", "Found a bug", "2011-04-22T13:33:48Z"),
			expected: domain.Issue{
				ID: 38, State: "open", Title: "Found a bug", Repository: "owner1/repository1",
				CreatedAt: time.Date(2011, 4, 22, 13, 33, 48, 0, time.UTC),
			},
		},
		{
			name: "offset timestamps are converted to UTC",
			raw:  rawIssue("1", "closed", "", "2011-04-23T01:30:00+02:00"),
			expected: domain.Issue{
				ID: 1, State: "closed", Title: "", Repository: "owner1/repository1",
				CreatedAt: time.Date(2011, 4, 22, 23, 30, 0, 0, time.UTC),
			},
		},
		{
			name:          "missing id",
			raw:           domain.RawIssue{State: strPtr("open"), Title: strPtr("t"), CreatedAt: strPtr("2011-04-22T13:33:48Z")},
			expectedField: "id",
		},
		{
			name:          "non integer id",
			raw:           rawIssue("abc", "open", "t", "2011-04-22T13:33:48Z"),
			expectedField: "id",
		},
		{
			name:          "missing state",
			raw:           domain.RawIssue{ID: "1", Title: strPtr("t"), CreatedAt: strPtr("2011-04-22T13:33:48Z")},
			expectedField: "state",
		},
		{
			name:          "missing title",
			raw:           domain.RawIssue{ID: "1", State: strPtr("open"), CreatedAt: strPtr("2011-04-22T13:33:48Z")},
			expectedField: "title",
		},
		{
			name:          "missing created_at",
			raw:           domain.RawIssue{ID: "1", State: strPtr("open"), Title: strPtr("t")},
			expectedField: "created_at",
		},
		{
			name:          "timestamp without offset",
			raw:           rawIssue("1", "open", "t", "2011-04-22T13:33:48"),
			expectedField: "created_at",
		},
		{
			name: "value of the wrong type",
			raw: domain.RawIssue{
				ID: "1", State: strPtr("open"), Title: strPtr("t"),
				FieldErrors: map[string]error{"created_at": errors.New("expected a string, got 1303479228")},
			},
			expectedField: "created_at",
		},
		{
			name:          "garbage timestamp",
			raw:           rawIssue("1", "open", "t", "yesterday"),
			expectedField: "created_at",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			issue, err := Normalize(tc.raw, "owner1/repository1")
			if tc.expectedField != "" {
				var normErr *domain.NormalizationError
				require.ErrorAs(t, err, &normErr)
				assert.Equal(t, tc.expectedField, normErr.Field)
				assert.Equal(t, "owner1/repository1", normErr.Source)
				assert.Equal(t, domain.Issue{}, issue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, issue)
		})
	}
}

func TestNormalizeAll_SkipsBadRecords(t *testing.T) {
	raws := []domain.RawIssue{
		rawIssue("1", "open", "first", "2011-04-22T13:33:48Z"),
		rawIssue("2", "open", "broken", "not a date"),
		rawIssue("3", "open", "third", "2011-04-22T18:24:32Z"),
	}

	issues, errs := NormalizeAll(raws, "a/x")

	require.Len(t, issues, 2)
	assert.Equal(t, int64(1), issues[0].ID)
	assert.Equal(t, int64(3), issues[1].ID)
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "skipping issue 2 of a/x: created_at")
}

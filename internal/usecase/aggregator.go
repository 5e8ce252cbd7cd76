// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// Aggregate merges the issues of every source into a single slice ordered by
// creation time, oldest first. Issues created at the same instant keep their
// discovery order (source order, then order within the source).
// The input slices are left untouched and no deduplication happens.
func Aggregate(perSource [][]domain.Issue) []domain.Issue {
	total := 0
	for _, issues := range perSource {
		total += len(issues)
	}

	merged := make([]domain.Issue, 0, total)
	for _, issues := range perSource {
		merged = append(merged, issues...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged
}

package usecase

import "github.com/naka-gawa/issue-report/internal/domain"

// BuildHistogram buckets issues by UTC calendar day in a single pass.
// Every bucket starts with all requested repositories at zero, so the
// per-repository map of a day is complete even for repositories that had
// no issue on it. Days without issues are not materialized.
func BuildHistogram(issues []domain.Issue, requested []string) domain.Histogram {
	h := make(domain.Histogram)
	for _, issue := range issues {
		day := domain.DayOf(issue.CreatedAt)
		bucket, ok := h[day]
		if !ok {
			bucket = domain.DayBucket{Day: day, Counts: make(map[string]int, len(requested))}
			for _, repo := range requested {
				bucket.Counts[repo] = 0
			}
		}
		bucket.Total++
		bucket.Counts[issue.Repository]++
		h[day] = bucket
	}
	return h
}

package usecase

import "github.com/naka-gawa/issue-report/internal/domain"

// ResolveTopDay picks the day with the most issues. When several days share
// the maximum, the latest one wins. The histogram is not modified.
func ResolveTopDay(h domain.Histogram) (domain.TopDay, error) {
	if len(h) == 0 {
		return domain.TopDay{}, domain.ErrNoData
	}

	var best domain.DayBucket
	found := false
	for _, bucket := range h {
		// Equal totals are resolved explicitly toward the later day;
		// map iteration order must not decide.
		if !found || bucket.Total > best.Total ||
			(bucket.Total == best.Total && bucket.Day.After(best.Day)) {
			best, found = bucket, true
		}
	}

	occurrences := make(map[string]int, len(best.Counts))
	for repo, count := range best.Counts {
		occurrences[repo] = count
	}
	return domain.TopDay{Day: best.Day, Occurrences: occurrences}, nil
}

package usecase

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/issue-report/internal/domain"
)

const summaryPrecision = 2

// Summarize computes descriptive statistics over the per-day totals of h.
// It returns nil for an empty histogram.
func Summarize(h domain.Histogram) (*domain.DaySummary, error) {
	if len(h) == 0 {
		return nil, nil
	}

	// Fixed order keeps floating point results identical across runs.
	days := make([]domain.DayBucket, 0, len(h))
	for _, bucket := range h {
		days = append(days, bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })

	totals := make(stats.Float64Data, 0, len(days))
	for _, bucket := range days {
		totals = append(totals, float64(bucket.Total))
	}

	mean, err := totals.Mean()
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := totals.Median()
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	maxTotal, err := totals.Max()
	if err != nil {
		return nil, fmt.Errorf("failed to compute max: %w", err)
	}
	stddev, err := totals.StandardDeviation()
	if err != nil {
		return nil, fmt.Errorf("failed to compute standard deviation: %w", err)
	}

	summary := &domain.DaySummary{ActiveDays: len(days), Max: maxTotal}
	if summary.Mean, err = stats.Round(mean, summaryPrecision); err != nil {
		return nil, err
	}
	if summary.Median, err = stats.Round(median, summaryPrecision); err != nil {
		return nil, err
	}
	if summary.StdDev, err = stats.Round(stddev, summaryPrecision); err != nil {
		return nil, err
	}
	return summary, nil
}

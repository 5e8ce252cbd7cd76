package domain

// DaySummary holds descriptive statistics over the per-day issue totals.
// Only days with at least one issue take part.
type DaySummary struct {
	ActiveDays int     `json:"active_days" yaml:"active_days"`
	Mean       float64 `json:"mean" yaml:"mean"`
	Median     float64 `json:"median" yaml:"median"`
	Max        float64 `json:"max" yaml:"max"`
	StdDev     float64 `json:"stddev" yaml:"stddev"`
}

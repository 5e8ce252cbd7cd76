package domain

// Layouts used on the wire.
const (
	TimestampLayout = "2006-01-02T15:04:05Z"
	DayLayout       = "2006-01-02"
)

// Report is the final output handed to a renderer.
type Report struct {
	Issues  []IssueEntry `json:"issues" yaml:"issues"`
	TopDay  *TopDayEntry `json:"top_day" yaml:"top_day"`
	Summary *DaySummary  `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// IssueEntry is the public projection of an Issue.
type IssueEntry struct {
	ID         int64  `json:"id" yaml:"id"`
	State      string `json:"state" yaml:"state"`
	Title      string `json:"title" yaml:"title"`
	Repository string `json:"repository" yaml:"repository"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
}

// TopDayEntry is the public projection of a TopDay.
type TopDayEntry struct {
	Day         string         `json:"day" yaml:"day"`
	Occurrences map[string]int `json:"occurrences" yaml:"occurrences"`
}

package usecase

import "github.com/naka-gawa/issue-report/internal/domain"

// Assemble projects the ordered issues and the top day into a Report.
// A nil top day yields a report whose top_day is null.
func Assemble(issues []domain.Issue, top *domain.TopDay) domain.Report {
	entries := make([]domain.IssueEntry, 0, len(issues))
	for _, issue := range issues {
		entries = append(entries, domain.IssueEntry{
			ID:         issue.ID,
			State:      issue.State,
			Title:      issue.Title,
			Repository: issue.Repository,
			CreatedAt:  issue.CreatedAt.UTC().Format(domain.TimestampLayout),
		})
	}

	report := domain.Report{Issues: entries}
	if top != nil {
		occurrences := make(map[string]int, len(top.Occurrences))
		for repo, count := range top.Occurrences {
			occurrences[repo] = count
		}
		report.TopDay = &domain.TopDayEntry{
			Day:         top.Day.UTC().Format(domain.DayLayout),
			Occurrences: occurrences,
		}
	}
	return report
}

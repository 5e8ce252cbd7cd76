package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/issue-report/internal/domain"
	"github.com/naka-gawa/issue-report/internal/gateway"
)

// DefaultConcurrency is the number of repositories fetched at once unless configured.
const DefaultConcurrency = 4

// Reporter is the use case for building the issue report.
// It fetches every repository concurrently and runs the aggregation pipeline.
type Reporter struct {
	source      gateway.IssueSource
	logger      *log.Logger
	concurrency int
	summary     bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithConcurrency bounds the number of repositories fetched at once.
func WithConcurrency(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithSummary adds per-day statistics to the report.
func WithSummary(enabled bool) Option {
	return func(r *Reporter) { r.summary = enabled }
}

// Result is a report together with the problems met while building it.
type Result struct {
	Report domain.Report
	// Warnings holds *domain.FetchError and *domain.NormalizationError values.
	Warnings      []error
	FailedSources []string
}

// NewReporter creates a new Reporter instance.
func NewReporter(source gateway.IssueSource, logger *log.Logger, opts ...Option) *Reporter {
	r := &Reporter{
		source:      source,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate builds the report for repos. A repository that cannot be fetched
// contributes no issues but still shows up in the top day occurrences.
// It fails with domain.ErrAllSourcesFailed only when every repository failed.
func (r *Reporter) Generate(ctx context.Context, repos []string) (*Result, error) {
	repos = uniqueRepositories(repos)
	r.logger.Printf("Usecase: Fetching issues of %d repositories...", len(repos))

	raws := make([][]domain.RawIssue, len(repos))
	fetchErrs := make([]error, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(r.concurrency)
	for i, repo := range repos {
		i, repo := i, repo // per-iteration copies (pre-Go 1.22 loop semantics)
		eg.Go(func() error {
			issues, err := r.source.FetchIssues(egCtx, repo)
			if err != nil {
				// A failed repository must not cancel the others.
				fetchErrs[i] = &domain.FetchError{Source: repo, Err: err}
				return nil
			}
			raws[i] = issues
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	perSource := make([][]domain.Issue, len(repos))
	for i, repo := range repos {
		if fetchErrs[i] != nil {
			r.logger.Printf("Usecase: %v", fetchErrs[i])
			result.Warnings = append(result.Warnings, fetchErrs[i])
			result.FailedSources = append(result.FailedSources, repo)
			continue
		}
		issues, errs := NormalizeAll(raws[i], repo)
		for _, err := range errs {
			r.logger.Printf("Usecase: %v", err)
		}
		result.Warnings = append(result.Warnings, errs...)
		perSource[i] = issues
	}
	if len(repos) > 0 && len(result.FailedSources) == len(repos) {
		return nil, errors.Join(append([]error{domain.ErrAllSourcesFailed}, result.Warnings...)...)
	}
	r.logger.Println("Usecase: All data fetched.")

	issues := Aggregate(perSource)
	histogram := BuildHistogram(issues, repos)

	var top *domain.TopDay
	topDay, err := ResolveTopDay(histogram)
	switch {
	case errors.Is(err, domain.ErrNoData):
		r.logger.Println("Usecase: No issues found, top day is empty.")
	case err != nil:
		return nil, err
	default:
		top = &topDay
	}

	result.Report = Assemble(issues, top)
	if r.summary {
		summary, err := Summarize(histogram)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize days: %w", err)
		}
		result.Report.Summary = summary
	}

	r.logger.Printf("Usecase: Report complete with %d issues.", len(issues))
	return result, nil
}

// uniqueRepositories drops empty and repeated identifiers, keeping first-seen order.
// Identifiers are otherwise used verbatim.
func uniqueRepositories(repos []string) []string {
	seen := make(map[string]bool, len(repos))
	unique := make([]string, 0, len(repos))
	for _, repo := range repos {
		if repo == "" || seen[repo] {
			continue
		}
		seen[repo] = true
		unique = append(unique, repo)
	}
	return unique
}

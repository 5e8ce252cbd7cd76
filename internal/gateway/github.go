// Package gateway provides issue sources backed by the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// Issue states accepted by the gateways.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

const perPage = 100

// IssueSource yields the raw issues of a single "owner/repository".
type IssueSource interface {
	FetchIssues(ctx context.Context, repo string) ([]domain.RawIssue, error)
}

// Options tunes what the GitHub gateways fetch.
type Options struct {
	// State filters issues by state: open, closed or all.
	State string
	// IncludePulls keeps pull requests, which the REST issues endpoint also returns.
	IncludePulls bool
}

// GitHubGateway is the REST implementation of IssueSource.
type GitHubGateway struct {
	restClient *github.Client
	opts       Options
	logger     *log.Logger
}

// NewHTTPClient builds the HTTP client shared by the REST and GraphQL gateways.
// Requests wait out secondary rate limits and carry the token when one is set.
func NewHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	if token == "" {
		return &http.Client{Transport: rateLimitWaiter}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// NewGitHubGateway is a constructor that creates a new REST gateway.
// An empty baseURL targets api.github.com; anything else is treated as a
// GitHub Enterprise API root.
func NewGitHubGateway(httpClient *http.Client, baseURL string, opts Options, logger *log.Logger) (*GitHubGateway, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
		}
	}
	return &GitHubGateway{
		restClient: client,
		opts:       opts.withDefaults(),
		logger:     logger,
	}, nil
}

// FetchIssues lists every issue of repo, following pagination.
func (g *GitHubGateway) FetchIssues(ctx context.Context, repo string) ([]domain.RawIssue, error) {
	owner, name, err := SplitRepository(repo)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Fetching %s issues of %s using REST API...", g.opts.State, repo)
	opts := &github.IssueListByRepoOptions{
		State:       g.opts.State,
		ListOptions: github.ListOptions{PerPage: perPage},
	}
	var raws []domain.RawIssue
	for {
		issues, resp, err := g.restClient.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues with REST API: %w", err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() && !g.opts.IncludePulls {
				continue
			}
			raws = append(raws, rawFromREST(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Printf("  Fetching page %d of %s issues...", opts.Page, repo)
	}
	g.logger.Printf("Completed fetching %d issues of %s.", len(raws), repo)
	return raws, nil
}

// rawFromREST keeps only the fields the report needs. The repository URL of
// the payload is deliberately ignored; the caller labels the issue.
func rawFromREST(issue *github.Issue) domain.RawIssue {
	raw := domain.RawIssue{
		State: issue.State,
		Title: issue.Title,
	}
	if issue.ID != nil {
		raw.ID = json.Number(strconv.FormatInt(*issue.ID, 10))
	}
	if issue.CreatedAt != nil {
		createdAt := issue.CreatedAt.UTC().Format(time.RFC3339)
		raw.CreatedAt = &createdAt
	}
	return raw
}

// SplitRepository splits an "owner/repository" identifier.
func SplitRepository(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repository", repo)
	}
	return owner, name, nil
}

func (o Options) withDefaults() Options {
	if o.State == "" {
		o.State = StateOpen
	}
	return o
}

// graphqlEndpoint derives the GraphQL URL from a REST API base URL.
// GitHub Enterprise serves REST on /api/v3 and GraphQL on /api/graphql.
func graphqlEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid GitHub API URL %q: %w", baseURL, err)
	}
	path := strings.TrimSuffix(u.Path, "/")
	path = strings.TrimSuffix(path, "/v3")
	u.Path = path + "/graphql"
	return u.String(), nil
}

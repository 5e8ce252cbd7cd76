package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/issue-report/internal/domain"
)

// GraphQLGateway is the GraphQL implementation of IssueSource.
// Unlike the REST endpoint, GraphQL issues never include pull requests.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	opts          Options
	logger        *log.Logger
}

// repositoryIssuesQuery pages through the issues of one repository, oldest first.
type repositoryIssuesQuery struct {
	Repository struct {
		Issues struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Nodes []struct {
				FullDatabaseID string `graphql:"fullDatabaseId"`
				Title          string
				State          string
				CreatedAt      string
			}
		} `graphql:"issues(first: 100, after: $cursor, states: $states, orderBy: {field: CREATED_AT, direction: ASC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGraphQLGateway creates a GraphQL gateway. An empty baseURL targets
// api.github.com; otherwise the GraphQL endpoint of that GitHub Enterprise
// REST root is used.
func NewGraphQLGateway(httpClient *http.Client, baseURL string, opts Options, logger *log.Logger) (*GraphQLGateway, error) {
	client := githubv4.NewClient(httpClient)
	if baseURL != "" {
		endpoint, err := graphqlEndpoint(baseURL)
		if err != nil {
			return nil, err
		}
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GraphQLGateway{
		graphqlClient: client,
		opts:          opts.withDefaults(),
		logger:        logger,
	}, nil
}

// FetchIssues lists every issue of repo, following the GraphQL cursor.
func (g *GraphQLGateway) FetchIssues(ctx context.Context, repo string) ([]domain.RawIssue, error) {
	owner, name, err := SplitRepository(repo)
	if err != nil {
		return nil, err
	}
	states, err := issueStates(g.opts.State)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Fetching %s issues of %s using GraphQL API...", g.opts.State, repo)
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(name),
		"states": states,
		"cursor": (*githubv4.String)(nil),
	}

	var raws []domain.RawIssue
	for {
		var q repositoryIssuesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for issues: %w", err)
		}
		for _, node := range q.Repository.Issues.Nodes {
			state := strings.ToLower(node.State)
			title := node.Title
			createdAt := node.CreatedAt
			raws = append(raws, domain.RawIssue{
				ID:        json.Number(node.FullDatabaseID),
				State:     &state,
				Title:     &title,
				CreatedAt: &createdAt,
			})
		}
		if !q.Repository.Issues.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.Issues.PageInfo.EndCursor)
		g.logger.Printf("  Fetching next page of %s issues...", repo)
	}
	g.logger.Printf("Completed fetching %d issues of %s.", len(raws), repo)
	return raws, nil
}

// issueStates maps a state filter to the GraphQL enum list. "all" is nil,
// which GitHub treats as no filter.
func issueStates(state string) ([]githubv4.IssueState, error) {
	switch state {
	case StateOpen:
		return []githubv4.IssueState{githubv4.IssueStateOpen}, nil
	case StateClosed:
		return []githubv4.IssueState{githubv4.IssueStateClosed}, nil
	case StateAll:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported issue state %q", state)
	}
}

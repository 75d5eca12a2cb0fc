package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shurcooL/graphql"

	"linear-mcp-server/internal/domain"
)

// LinearClient talks to the Linear GraphQL API.
// It implements domain.LinearClient; each method issues exactly one request.
type LinearClient struct {
	gql *graphql.Client
}

// NewLinearClient creates a new Linear API client.
// The httpClient should be an authenticated client from the AuthenticationManager.
func NewLinearClient(endpoint string, httpClient *http.Client) *LinearClient {
	return &LinearClient{
		gql: graphql.NewClient(endpoint, httpClient),
	}
}

// FetchTeam resolves a team by key or id.
func (c *LinearClient) FetchTeam(ctx context.Context, key string) (*domain.Team, error) {
	var q struct {
		Team teamNode `graphql:"team(id: $id)"`
	}
	vars := map[string]interface{}{
		"id": graphql.String(key),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, classify("team", key, err)
	}
	if q.Team.ID == "" {
		return nil, notFound("team", key)
	}

	team := q.Team.toDomain()
	return &team, nil
}

// FetchTeams lists the workspace's teams.
func (c *LinearClient) FetchTeams(ctx context.Context) ([]domain.Team, error) {
	var q struct {
		Teams struct {
			Nodes []teamNode
		} `graphql:"teams(first: $first)"`
	}
	vars := map[string]interface{}{
		"first": graphql.Int(domain.MaxPageSize),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	teams := make([]domain.Team, 0, len(q.Teams.Nodes))
	for _, node := range q.Teams.Nodes {
		teams = append(teams, node.toDomain())
	}
	return teams, nil
}

// FetchUsers returns the first page of workspace users.
func (c *LinearClient) FetchUsers(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	var q struct {
		Users struct {
			Nodes []userNode
		} `graphql:"users(first: $first)"`
	}
	vars := map[string]interface{}{
		"first": graphql.Int(limit),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.User, 0, len(q.Users.Nodes))
	for _, node := range q.Users.Nodes {
		users = append(users, node.toDomain())
	}
	return users, nil
}

// FetchViewer returns the authenticated user.
func (c *LinearClient) FetchViewer(ctx context.Context) (*domain.User, error) {
	var q struct {
		Viewer userNode
	}

	if err := c.gql.Query(ctx, &q, nil); err != nil {
		return nil, fmt.Errorf("failed to fetch viewer: %w", err)
	}

	user := q.Viewer.toDomain()
	return &user, nil
}

// FetchIssue resolves an issue by identifier (e.g. "ENG-123") or id.
func (c *LinearClient) FetchIssue(ctx context.Context, identifier string) (*domain.Issue, error) {
	var q struct {
		Issue issueNode `graphql:"issue(id: $id)"`
	}
	vars := map[string]interface{}{
		"id": graphql.String(identifier),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, classify("issue", identifier, err)
	}
	if q.Issue.ID == "" {
		return nil, notFound("issue", identifier)
	}

	issue := q.Issue.toDomain()
	return &issue, nil
}

// QueryIssues returns one page of issues matching the filter.
func (c *LinearClient) QueryIssues(ctx context.Context, filter domain.IssueFilter, first int) ([]domain.Issue, error) {
	if first <= 0 {
		first = domain.DefaultPageSize
	}
	if first > domain.MaxPageSize {
		first = domain.MaxPageSize
	}

	var q struct {
		Issues struct {
			Nodes []issueNode
		} `graphql:"issues(filter: $filter, first: $first)"`
	}
	vars := map[string]interface{}{
		"filter": newIssueFilter(filter),
		"first":  graphql.Int(first),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}

	issues := make([]domain.Issue, 0, len(q.Issues.Nodes))
	for _, node := range q.Issues.Nodes {
		issues = append(issues, node.toDomain())
	}
	return issues, nil
}

// CreateIssue creates an issue and returns the created entity.
func (c *LinearClient) CreateIssue(ctx context.Context, input domain.IssueCreateInput) (*domain.Issue, error) {
	var m struct {
		IssueCreate struct {
			Success bool
			Issue   struct {
				ID         string `graphql:"id"`
				Identifier string `graphql:"identifier"`
				Title      string `graphql:"title"`
				URL        string `graphql:"url"`
			}
		} `graphql:"issueCreate(input: $input)"`
	}
	vars := map[string]interface{}{
		"input": newIssueCreateInput(input),
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	if !m.IssueCreate.Success {
		return nil, fmt.Errorf("failed to create issue: mutation was not successful")
	}

	created := m.IssueCreate.Issue
	return &domain.Issue{
		ID:         created.ID,
		Identifier: created.Identifier,
		Title:      created.Title,
		URL:        created.URL,
	}, nil
}

// UpdateIssue applies a partial update to an issue.
func (c *LinearClient) UpdateIssue(ctx context.Context, id string, input domain.IssueUpdateInput) error {
	var m struct {
		IssueUpdate struct {
			Success bool
		} `graphql:"issueUpdate(id: $id, input: $input)"`
	}
	vars := map[string]interface{}{
		"id":    graphql.String(id),
		"input": newIssueUpdateInput(input),
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return fmt.Errorf("failed to update issue %s: %w", id, err)
	}
	if !m.IssueUpdate.Success {
		return fmt.Errorf("failed to update issue %s: mutation was not successful", id)
	}
	return nil
}

// QueryProjects returns one page of projects matching the filter.
func (c *LinearClient) QueryProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	var q struct {
		Projects struct {
			Nodes []projectNode
		} `graphql:"projects(filter: $filter, first: $first)"`
	}
	vars := map[string]interface{}{
		"filter": newProjectFilter(filter),
		"first":  graphql.Int(domain.DefaultPageSize),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(q.Projects.Nodes))
	for _, node := range q.Projects.Nodes {
		projects = append(projects, node.toDomain())
	}
	return projects, nil
}

// FetchWorkflowStates lists the workflow states of a team.
func (c *LinearClient) FetchWorkflowStates(ctx context.Context, teamID string) ([]domain.WorkflowState, error) {
	var q struct {
		Team struct {
			States struct {
				Nodes []stateNode
			} `graphql:"states"`
		} `graphql:"team(id: $id)"`
	}
	vars := map[string]interface{}{
		"id": graphql.String(teamID),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, classify("team", teamID, err)
	}

	states := make([]domain.WorkflowState, 0, len(q.Team.States.Nodes))
	for _, node := range q.Team.States.Nodes {
		states = append(states, domain.WorkflowState{ID: node.ID, Name: node.Name, Type: node.Type})
	}
	return states, nil
}

// classify maps Linear's "Entity not found" GraphQL error to domain.ErrNotFound.
func classify(kind, key string, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "entity not found") {
		return notFound(kind, key)
	}
	return fmt.Errorf("failed to fetch %s %s: %w", kind, key, err)
}

func notFound(kind, key string) error {
	return fmt.Errorf("%s %s: %w", kind, key, domain.ErrNotFound)
}

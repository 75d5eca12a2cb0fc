package domain

import (
	"context"
)

// LinearClient is the set of Linear API operations the tools are built on.
// Implementations hold credentials and connection state only; they keep no
// cache between calls.
type LinearClient interface {
	// FetchTeam looks a team up by key or id. Returns ErrNotFound if no team matches.
	FetchTeam(ctx context.Context, key string) (*Team, error)

	// FetchTeams returns every team in the workspace.
	FetchTeams(ctx context.Context) ([]Team, error)

	// FetchUsers returns at most limit workspace users.
	FetchUsers(ctx context.Context, limit int) ([]User, error)

	// FetchViewer returns the user the credentials belong to.
	FetchViewer(ctx context.Context) (*User, error)

	// FetchIssue looks an issue up by identifier ("ENG-123") or id.
	// Returns ErrNotFound if no issue matches.
	FetchIssue(ctx context.Context, identifier string) (*Issue, error)

	// QueryIssues returns the first page of issues matching filter.
	QueryIssues(ctx context.Context, filter IssueFilter, first int) ([]Issue, error)

	// CreateIssue creates an issue and returns it.
	CreateIssue(ctx context.Context, input IssueCreateInput) (*Issue, error)

	// UpdateIssue applies a partial update to the issue with the given id.
	UpdateIssue(ctx context.Context, id string, input IssueUpdateInput) error

	// QueryProjects returns the first page of projects matching filter.
	QueryProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)

	// FetchWorkflowStates returns the workflow states of a team.
	FetchWorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error)
}

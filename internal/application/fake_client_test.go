package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"linear-mcp-server/internal/domain"
)

// fakeLinearClient is an in-memory domain.LinearClient.
type fakeLinearClient struct {
	mu sync.Mutex

	teams    []domain.Team
	users    []domain.User
	viewer   domain.User
	issues   []domain.Issue
	projects []domain.Project
	states   map[string][]domain.WorkflowState // keyed by team id

	// err fails every call when set; panicMsg makes every call panic.
	err      error
	panicMsg string

	calls             []string
	lastIssueFilter   domain.IssueFilter
	lastFirst         int
	lastProjectFilter domain.ProjectFilter
	lastUserLimit     int
	lastCreate        *domain.IssueCreateInput
	lastUpdateID      string
	lastUpdate        *domain.IssueUpdateInput
}

func newFakeLinearClient() *fakeLinearClient {
	jane := domain.User{ID: "user-jane", Name: "Jane Doe", Email: "jane@example.com", Active: true}
	john := domain.User{ID: "user-john", Name: "John Smith", Email: "john@example.com", Active: false}
	eng := domain.Team{ID: "team-eng", Key: "ENG", Name: "Engineering", Description: "Core product"}
	des := domain.Team{ID: "team-des", Key: "DES", Name: "Design"}

	todo := domain.WorkflowState{ID: "state-todo", Name: "Todo", Type: "unstarted"}
	progress := domain.WorkflowState{ID: "state-progress", Name: "In Progress", Type: "started"}
	done := domain.WorkflowState{ID: "state-done", Name: "Done", Type: "completed"}

	return &fakeLinearClient{
		teams:  []domain.Team{eng, des},
		users:  []domain.User{jane, john},
		viewer: jane,
		issues: []domain.Issue{
			{
				ID:          "issue-1",
				Identifier:  "ENG-1",
				Title:       "Fix login",
				Description: "Users cannot log in",
				Priority:    2,
				URL:         "https://linear.app/acme/issue/ENG-1",
				CreatedAt:   "2024-01-01T00:00:00.000Z",
				UpdatedAt:   "2024-01-02T00:00:00.000Z",
				State:       &todo,
				Assignee:    &domain.User{ID: jane.ID, Name: jane.Name},
				Team:        &domain.Team{ID: eng.ID, Key: eng.Key},
			},
			{
				ID:         "issue-2",
				Identifier: "ENG-2",
				Title:      "Add dark mode",
				Priority:   0,
				URL:        "https://linear.app/acme/issue/ENG-2",
				CreatedAt:  "2024-01-03T00:00:00.000Z",
				UpdatedAt:  "2024-01-03T00:00:00.000Z",
				State:      &progress,
				Team:       &domain.Team{ID: eng.ID, Key: eng.Key},
			},
		},
		projects: []domain.Project{
			{
				ID:        "project-1",
				Name:      "Q3 Launch",
				State:     "started",
				URL:       "https://linear.app/acme/project/q3-launch",
				StartDate: "2024-07-01",
			},
		},
		states: map[string][]domain.WorkflowState{
			eng.ID: {todo, progress, done},
		},
	}
}

func (f *fakeLinearClient) enter(call string) error {
	f.calls = append(f.calls, call)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.err
}

func (f *fakeLinearClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeLinearClient) FetchTeam(_ context.Context, key string) (*domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchTeam"); err != nil {
		return nil, err
	}
	for _, team := range f.teams {
		if team.Key == key || team.ID == key {
			team := team
			return &team, nil
		}
	}
	return nil, fmt.Errorf("team %s: %w", key, domain.ErrNotFound)
}

func (f *fakeLinearClient) FetchTeams(_ context.Context) ([]domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchTeams"); err != nil {
		return nil, err
	}
	return append([]domain.Team(nil), f.teams...), nil
}

func (f *fakeLinearClient) FetchUsers(_ context.Context, limit int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchUsers"); err != nil {
		return nil, err
	}
	f.lastUserLimit = limit
	users := append([]domain.User(nil), f.users...)
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (f *fakeLinearClient) FetchViewer(_ context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchViewer"); err != nil {
		return nil, err
	}
	viewer := f.viewer
	return &viewer, nil
}

func (f *fakeLinearClient) FetchIssue(_ context.Context, identifier string) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchIssue"); err != nil {
		return nil, err
	}
	for _, issue := range f.issues {
		if issue.Identifier == identifier || issue.ID == identifier {
			issue := issue
			return &issue, nil
		}
	}
	return nil, fmt.Errorf("issue %s: %w", identifier, domain.ErrNotFound)
}

func (f *fakeLinearClient) QueryIssues(_ context.Context, filter domain.IssueFilter, first int) ([]domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("QueryIssues"); err != nil {
		return nil, err
	}
	f.lastIssueFilter = filter
	f.lastFirst = first

	var matched []domain.Issue
	for _, issue := range f.issues {
		if filter.TeamKey != "" && (issue.Team == nil || issue.Team.Key != filter.TeamKey) {
			continue
		}
		if filter.StateName != "" && (issue.State == nil || issue.State.Name != filter.StateName) {
			continue
		}
		if filter.AssigneeID != "" && (issue.Assignee == nil || issue.Assignee.ID != filter.AssigneeID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(issue.Title+" "+issue.Description, filter.Search) {
			continue
		}
		matched = append(matched, issue)
		if len(matched) == first {
			break
		}
	}
	return matched, nil
}

func (f *fakeLinearClient) CreateIssue(_ context.Context, input domain.IssueCreateInput) (*domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateIssue"); err != nil {
		return nil, err
	}
	f.lastCreate = &input

	var team *domain.Team
	for i := range f.teams {
		if f.teams[i].ID == input.TeamID {
			team = &f.teams[i]
		}
	}
	if team == nil {
		return nil, fmt.Errorf("team %s: %w", input.TeamID, domain.ErrNotFound)
	}

	number := len(f.issues) + 1
	issue := domain.Issue{
		ID:          fmt.Sprintf("issue-%d", number),
		Identifier:  fmt.Sprintf("%s-%d", team.Key, number),
		Title:       input.Title,
		Description: input.Description,
		URL:         fmt.Sprintf("https://linear.app/acme/issue/%s-%d", team.Key, number),
		Team:        &domain.Team{ID: team.ID, Key: team.Key},
	}
	if input.Priority != nil {
		issue.Priority = float64(*input.Priority)
	}
	f.issues = append(f.issues, issue)
	return &issue, nil
}

func (f *fakeLinearClient) UpdateIssue(_ context.Context, id string, input domain.IssueUpdateInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateIssue"); err != nil {
		return err
	}
	f.lastUpdateID = id
	f.lastUpdate = &input

	for i := range f.issues {
		if f.issues[i].ID != id {
			continue
		}
		if input.Title != nil {
			f.issues[i].Title = *input.Title
		}
		if input.Description != nil {
			f.issues[i].Description = *input.Description
		}
		if input.Priority != nil {
			f.issues[i].Priority = float64(*input.Priority)
		}
		if input.StateID != nil {
			for _, states := range f.states {
				for _, state := range states {
					if state.ID == *input.StateID {
						state := state
						f.issues[i].State = &state
					}
				}
			}
		}
		return nil
	}
	return fmt.Errorf("issue %s: %w", id, domain.ErrNotFound)
}

func (f *fakeLinearClient) QueryProjects(_ context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("QueryProjects"); err != nil {
		return nil, err
	}
	f.lastProjectFilter = filter

	var matched []domain.Project
	for _, project := range f.projects {
		if filter.State != "" && project.State != filter.State {
			continue
		}
		matched = append(matched, project)
	}
	return matched, nil
}

func (f *fakeLinearClient) FetchWorkflowStates(_ context.Context, teamID string) ([]domain.WorkflowState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FetchWorkflowStates"); err != nil {
		return nil, err
	}
	return append([]domain.WorkflowState(nil), f.states[teamID]...), nil
}

func (f *fakeLinearClient) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

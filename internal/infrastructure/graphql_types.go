package infrastructure

import "linear-mcp-server/internal/domain"

// Query selections. Nested objects are value types; a null object decodes
// to its zero value and is detected by an empty ID.

type teamNode struct {
	ID          string `graphql:"id"`
	Key         string `graphql:"key"`
	Name        string `graphql:"name"`
	Description string `graphql:"description"`
}

func (n teamNode) toDomain() domain.Team {
	return domain.Team{
		ID:          n.ID,
		Key:         n.Key,
		Name:        n.Name,
		Description: n.Description,
	}
}

type userNode struct {
	ID     string `graphql:"id"`
	Name   string `graphql:"name"`
	Email  string `graphql:"email"`
	Active bool   `graphql:"active"`
}

func (n userNode) toDomain() domain.User {
	return domain.User{
		ID:     n.ID,
		Name:   n.Name,
		Email:  n.Email,
		Active: n.Active,
	}
}

type stateNode struct {
	ID   string `graphql:"id"`
	Name string `graphql:"name"`
	Type string `graphql:"type"`
}

type issueNode struct {
	ID          string    `graphql:"id"`
	Identifier  string    `graphql:"identifier"`
	Title       string    `graphql:"title"`
	Description string    `graphql:"description"`
	Priority    float64   `graphql:"priority"`
	URL         string    `graphql:"url"`
	CreatedAt   string    `graphql:"createdAt"`
	UpdatedAt   string    `graphql:"updatedAt"`
	State       stateNode `graphql:"state"`
	Assignee    struct {
		ID   string `graphql:"id"`
		Name string `graphql:"name"`
	} `graphql:"assignee"`
	Team struct {
		ID  string `graphql:"id"`
		Key string `graphql:"key"`
	} `graphql:"team"`
}

func (n issueNode) toDomain() domain.Issue {
	issue := domain.Issue{
		ID:          n.ID,
		Identifier:  n.Identifier,
		Title:       n.Title,
		Description: n.Description,
		Priority:    n.Priority,
		URL:         n.URL,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.State.ID != "" {
		issue.State = &domain.WorkflowState{ID: n.State.ID, Name: n.State.Name, Type: n.State.Type}
	}
	if n.Assignee.ID != "" {
		issue.Assignee = &domain.User{ID: n.Assignee.ID, Name: n.Assignee.Name}
	}
	if n.Team.ID != "" {
		issue.Team = &domain.Team{ID: n.Team.ID, Key: n.Team.Key}
	}
	return issue
}

type projectNode struct {
	ID          string `graphql:"id"`
	Name        string `graphql:"name"`
	Description string `graphql:"description"`
	State       string `graphql:"state"`
	URL         string `graphql:"url"`
	StartDate   string `graphql:"startDate"`
	TargetDate  string `graphql:"targetDate"`
}

func (n projectNode) toDomain() domain.Project {
	return domain.Project{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		State:       n.State,
		URL:         n.URL,
		StartDate:   n.StartDate,
		TargetDate:  n.TargetDate,
	}
}

// Input objects. The Go type names are sent as the GraphQL variable types,
// so they must match Linear's schema names.

// IssueFilter mirrors Linear's IssueFilter input.
type IssueFilter struct {
	Team              *TeamFilter          `json:"team,omitempty"`
	State             *WorkflowStateFilter `json:"state,omitempty"`
	Assignee          *NullableUserFilter  `json:"assignee,omitempty"`
	SearchableContent *ContentComparator   `json:"searchableContent,omitempty"`
}

// TeamFilter mirrors Linear's TeamFilter input.
type TeamFilter struct {
	Key *StringComparator `json:"key,omitempty"`
}

// TeamCollectionFilter mirrors Linear's TeamCollectionFilter input.
type TeamCollectionFilter struct {
	Some *TeamFilter `json:"some,omitempty"`
}

// WorkflowStateFilter mirrors Linear's WorkflowStateFilter input.
type WorkflowStateFilter struct {
	Name *StringComparator `json:"name,omitempty"`
}

// NullableUserFilter mirrors Linear's NullableUserFilter input.
type NullableUserFilter struct {
	ID *IDComparator `json:"id,omitempty"`
}

// ProjectFilter mirrors Linear's ProjectFilter input.
type ProjectFilter struct {
	AccessibleTeams *TeamCollectionFilter `json:"accessibleTeams,omitempty"`
	State           *StringComparator     `json:"state,omitempty"`
}

// StringComparator mirrors Linear's StringComparator input.
type StringComparator struct {
	Eq string `json:"eq"`
}

// IDComparator mirrors Linear's IDComparator input.
type IDComparator struct {
	Eq string `json:"eq"`
}

// ContentComparator mirrors Linear's ContentComparator input.
type ContentComparator struct {
	Contains string `json:"contains"`
}

// IssueCreateInput mirrors Linear's IssueCreateInput input.
type IssueCreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	TeamID      string  `json:"teamId"`
	Priority    *int    `json:"priority,omitempty"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
}

// IssueUpdateInput mirrors Linear's IssueUpdateInput input.
type IssueUpdateInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
	StateID     *string `json:"stateId,omitempty"`
}

// newIssueFilter returns nil, sent as a null filter, when nothing is set.
func newIssueFilter(f domain.IssueFilter) *IssueFilter {
	if f.IsEmpty() {
		return nil
	}
	filter := &IssueFilter{}
	if f.TeamKey != "" {
		filter.Team = &TeamFilter{Key: &StringComparator{Eq: f.TeamKey}}
	}
	if f.StateName != "" {
		filter.State = &WorkflowStateFilter{Name: &StringComparator{Eq: f.StateName}}
	}
	if f.AssigneeID != "" {
		filter.Assignee = &NullableUserFilter{ID: &IDComparator{Eq: f.AssigneeID}}
	}
	if f.Search != "" {
		filter.SearchableContent = &ContentComparator{Contains: f.Search}
	}
	return filter
}

func newProjectFilter(f domain.ProjectFilter) *ProjectFilter {
	if f.IsEmpty() {
		return nil
	}
	filter := &ProjectFilter{}
	if f.TeamKey != "" {
		filter.AccessibleTeams = &TeamCollectionFilter{
			Some: &TeamFilter{Key: &StringComparator{Eq: f.TeamKey}},
		}
	}
	if f.State != "" {
		filter.State = &StringComparator{Eq: f.State}
	}
	return filter
}

func newIssueCreateInput(in domain.IssueCreateInput) IssueCreateInput {
	out := IssueCreateInput{
		Title:    in.Title,
		TeamID:   in.TeamID,
		Priority: in.Priority,
	}
	if in.Description != "" {
		out.Description = &in.Description
	}
	if in.AssigneeID != "" {
		out.AssigneeID = &in.AssigneeID
	}
	return out
}

func newIssueUpdateInput(in domain.IssueUpdateInput) IssueUpdateInput {
	return IssueUpdateInput{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		StateID:     in.StateID,
	}
}

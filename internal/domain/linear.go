package domain

import "errors"

// Page sizes accepted by the Linear API.
const (
	DefaultPageSize = 50
	MaxPageSize     = 250
)

// ErrNotFound is returned by a LinearClient when the requested entity does
// not exist or is not visible to the authenticated user.
var ErrNotFound = errors.New("entity not found")

// Issue is a Linear issue as returned by the API.
type Issue struct {
	ID          string
	Identifier  string
	Title       string
	Description string
	Priority    float64
	URL         string
	CreatedAt   string
	UpdatedAt   string

	// State, Assignee and Team are nil when the API returns null.
	State    *WorkflowState
	Assignee *User
	Team     *Team
}

// Team is a Linear team. Key is the short prefix used in issue identifiers
// (e.g. "ENG" in "ENG-123").
type Team struct {
	ID          string
	Key         string
	Name        string
	Description string
}

// Project is a Linear project.
type Project struct {
	ID          string
	Name        string
	Description string
	State       string
	URL         string
	StartDate   string
	TargetDate  string
}

// User is a member of the Linear workspace.
type User struct {
	ID     string
	Name   string
	Email  string
	Active bool
}

// WorkflowState is one column of a team's issue workflow (e.g. "In Progress").
type WorkflowState struct {
	ID   string
	Name string
	Type string
}

// IssueFilter narrows an issue query. Empty fields are not applied.
type IssueFilter struct {
	TeamKey    string
	StateName  string
	AssigneeID string
	Search     string
}

// IsEmpty reports whether no filter field is set.
func (f IssueFilter) IsEmpty() bool {
	return f == IssueFilter{}
}

// ProjectFilter narrows a project query. Empty fields are not applied.
type ProjectFilter struct {
	TeamKey string
	State   string
}

// IsEmpty reports whether no filter field is set.
func (f ProjectFilter) IsEmpty() bool {
	return f == ProjectFilter{}
}

// IssueCreateInput carries the fields of a new issue.
type IssueCreateInput struct {
	Title       string
	Description string
	TeamID      string
	Priority    *int
	AssigneeID  string
}

// IssueUpdateInput is a partial update. Nil fields are left unchanged.
type IssueUpdateInput struct {
	Title       *string
	Description *string
	Priority    *int
	StateID     *string
}

// IsEmpty reports whether the update changes nothing.
func (u IssueUpdateInput) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil && u.StateID == nil
}

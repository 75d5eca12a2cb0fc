package domain

// IssueView is the compact JSON shape of an issue returned by the tools.
type IssueView struct {
	ID          string  `json:"id"`
	Identifier  string  `json:"identifier"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status,omitempty"`
	Priority    float64 `json:"priority"`
	Assignee    string  `json:"assignee,omitempty"`
	Team        string  `json:"team,omitempty"`
	URL         string  `json:"url"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// TeamView is the compact JSON shape of a team.
type TeamView struct {
	ID          string  `json:"id"`
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProjectView is the compact JSON shape of a project.
type ProjectView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	State       string  `json:"state"`
	URL         string  `json:"url"`
	StartDate   *string `json:"startDate"`
	TargetDate  *string `json:"targetDate"`
}

// UserView is the compact JSON shape of a user.
type UserView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// CreatedIssueView is the issue summary returned after a create.
type CreatedIssueView struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// CreateIssueResult is the payload of a successful create_issue call.
type CreateIssueResult struct {
	Success bool             `json:"success"`
	Issue   CreatedIssueView `json:"issue"`
}

// UpdateIssueResult is the payload of a successful update_issue call.
type UpdateIssueResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewIssueView projects an issue. Missing state, assignee and team are
// omitted from the output.
func NewIssueView(issue Issue) IssueView {
	view := IssueView{
		ID:          issue.ID,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: nullable(issue.Description),
		Priority:    issue.Priority,
		URL:         issue.URL,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
	if issue.State != nil {
		view.Status = issue.State.Name
	}
	if issue.Assignee != nil {
		view.Assignee = issue.Assignee.Name
	}
	if issue.Team != nil {
		view.Team = issue.Team.Key
	}
	return view
}

// NewIssueViews projects a list of issues, never returning nil.
func NewIssueViews(issues []Issue) []IssueView {
	views := make([]IssueView, 0, len(issues))
	for _, issue := range issues {
		views = append(views, NewIssueView(issue))
	}
	return views
}

// NewTeamView projects a team.
func NewTeamView(team Team) TeamView {
	return TeamView{
		ID:          team.ID,
		Key:         team.Key,
		Name:        team.Name,
		Description: nullable(team.Description),
	}
}

// NewTeamViews projects a list of teams, never returning nil.
func NewTeamViews(teams []Team) []TeamView {
	views := make([]TeamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, NewTeamView(team))
	}
	return views
}

// NewProjectView projects a project.
func NewProjectView(project Project) ProjectView {
	return ProjectView{
		ID:          project.ID,
		Name:        project.Name,
		Description: nullable(project.Description),
		State:       project.State,
		URL:         project.URL,
		StartDate:   nullable(project.StartDate),
		TargetDate:  nullable(project.TargetDate),
	}
}

// NewProjectViews projects a list of projects, never returning nil.
func NewProjectViews(projects []Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, NewProjectView(project))
	}
	return views
}

// NewUserView projects a user.
func NewUserView(user User) UserView {
	return UserView{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
	}
}

// NewCreatedIssueView summarises a freshly created issue. A nil issue yields
// an empty summary.
func NewCreatedIssueView(issue *Issue) CreatedIssueView {
	if issue == nil {
		return CreatedIssueView{}
	}
	return CreatedIssueView{
		ID:         issue.ID,
		Identifier: issue.Identifier,
		Title:      issue.Title,
		URL:        issue.URL,
	}
}

// nullable maps "" to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package application

import "linear-mcp-server/internal/domain"

// Tool names served by the Linear handler.
const (
	ToolListIssues   = "list_issues"
	ToolGetIssue     = "get_issue"
	ToolCreateIssue  = "create_issue"
	ToolUpdateIssue  = "update_issue"
	ToolListTeams    = "list_teams"
	ToolListProjects = "list_projects"
	ToolGetUser      = "get_user"
)

// Catalog returns the tool descriptors in their fixed order.
// Every call builds a fresh slice, so callers may not mutate a shared catalog.
func Catalog() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        ToolListIssues,
			Description: "List issues from Linear. Can filter by team, status, assignee, or search term.",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"team": {
						Type:        "string",
						Description: `Team key (e.g., "ENG", "PROD")`,
					},
					"status": {
						Type:        "string",
						Description: `Issue status (e.g., "Todo", "In Progress", "Done")`,
					},
					"assignee": {
						Type:        "string",
						Description: "Assignee email or name",
					},
					"search": {
						Type:        "string",
						Description: "Search term to filter issues",
					},
					"limit": {
						Type:        "number",
						Description: "Maximum number of issues to return (default: 50)",
					},
				},
			},
		},
		{
			Name:        ToolGetIssue,
			Description: `Get details of a specific Linear issue by ID or identifier (e.g., "ENG-123")`,
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"identifier": {
						Type:        "string",
						Description: `Issue identifier (e.g., "ENG-123") or ID`,
					},
				},
				Required: []string{"identifier"},
			},
		},
		{
			Name:        ToolCreateIssue,
			Description: "Create a new issue in Linear",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"title": {
						Type:        "string",
						Description: "Issue title",
					},
					"description": {
						Type:        "string",
						Description: "Issue description (supports markdown)",
					},
					"teamKey": {
						Type:        "string",
						Description: `Team key (e.g., "ENG", "PROD")`,
					},
					"priority": {
						Type:        "number",
						Description: "Priority (0=No priority, 1=Urgent, 2=High, 3=Normal, 4=Low)",
					},
					"assigneeEmail": {
						Type:        "string",
						Description: "Email of the assignee",
					},
				},
				Required: []string{"title", "teamKey"},
			},
		},
		{
			Name:        ToolUpdateIssue,
			Description: "Update an existing Linear issue",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"identifier": {
						Type:        "string",
						Description: `Issue identifier (e.g., "ENG-123") or ID`,
					},
					"title": {
						Type:        "string",
						Description: "New title",
					},
					"description": {
						Type:        "string",
						Description: "New description",
					},
					"status": {
						Type:        "string",
						Description: `New status name (e.g., "In Progress", "Done")`,
					},
					"priority": {
						Type:        "number",
						Description: "New priority (0-4)",
					},
				},
				Required: []string{"identifier"},
			},
		},
		{
			Name:        ToolListTeams,
			Description: "List all teams in the Linear workspace",
			InputSchema: domain.JSONSchema{
				Type:       "object",
				Properties: map[string]domain.SchemaProperty{},
			},
		},
		{
			Name:        ToolListProjects,
			Description: "List projects in Linear",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"team": {
						Type:        "string",
						Description: "Filter by team key",
					},
					"status": {
						Type:        "string",
						Description: "Filter by status (planned, started, paused, completed, canceled)",
					},
				},
			},
		},
		{
			Name:        ToolGetUser,
			Description: "Get information about the current user or a specific user",
			InputSchema: domain.JSONSchema{
				Type: "object",
				Properties: map[string]domain.SchemaProperty{
					"email": {
						Type:        "string",
						Description: "User email (optional, returns current user if not specified)",
					},
				},
			},
		},
	}
}

package application

import (
	"context"
	"errors"
	"fmt"

	"linear-mcp-server/internal/domain"
)

// handleListIssues handles the list_issues tool call.
// Unresolved team and assignee keys drop that filter instead of failing.
func (h *LinearHandler) handleListIssues(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	teamKey, err := getStringParam(args, "team", false)
	if err != nil {
		return nil, err
	}
	status, err := getStringParam(args, "status", false)
	if err != nil {
		return nil, err
	}
	assignee, err := getStringParam(args, "assignee", false)
	if err != nil {
		return nil, err
	}
	search, err := getStringParam(args, "search", false)
	if err != nil {
		return nil, err
	}
	limit, err := getIntParam(args, "limit", false)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}

	filter := domain.IssueFilter{
		StateName: status,
		Search:    search,
	}

	if teamKey != "" {
		team, err := h.resolver.team(ctx, teamKey)
		if err != nil {
			return nil, err
		}
		if team != nil {
			filter.TeamKey = teamKey
		} else {
			h.logger.Warn().Str("team", teamKey).Msg("team not found, listing issues without team filter")
		}
	}

	if assignee != "" {
		user, err := h.resolver.userMatching(ctx, assignee)
		if err != nil {
			return nil, err
		}
		if user != nil {
			filter.AssigneeID = user.ID
		} else {
			h.logger.Warn().Str("assignee", assignee).Msg("no user matches assignee, listing issues without assignee filter")
		}
	}

	issues, err := h.client.QueryIssues(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.NewIssueViews(issues))
}

// handleGetIssue handles the get_issue tool call.
func (h *LinearHandler) handleGetIssue(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	identifier, err := getStringParam(args, "identifier", true)
	if err != nil {
		return nil, err
	}

	issue, err := h.client.FetchIssue(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return issueNotFound(identifier), nil
	}
	if err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.NewIssueView(*issue))
}

// handleCreateIssue handles the create_issue tool call.
// An assigneeEmail with no exact match creates the issue unassigned.
func (h *LinearHandler) handleCreateIssue(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	title, err := getStringParam(args, "title", true)
	if err != nil {
		return nil, err
	}
	teamKey, err := getStringParam(args, "teamKey", true)
	if err != nil {
		return nil, err
	}
	description, err := getStringParam(args, "description", false)
	if err != nil {
		return nil, err
	}
	priority, err := getOptionalIntParam(args, "priority")
	if err != nil {
		return nil, err
	}
	assigneeEmail, err := getStringParam(args, "assigneeEmail", false)
	if err != nil {
		return nil, err
	}

	team, err := h.resolver.team(ctx, teamKey)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return domain.NewToolErrorResponse(fmt.Sprintf("Team %s not found", teamKey)), nil
	}

	input := domain.IssueCreateInput{
		Title:       title,
		Description: description,
		TeamID:      team.ID,
		Priority:    priority,
	}

	if assigneeEmail != "" {
		user, err := h.resolver.userByEmail(ctx, assigneeEmail)
		if err != nil {
			return nil, err
		}
		if user != nil {
			input.AssigneeID = user.ID
		} else {
			h.logger.Warn().Str("assignee_email", assigneeEmail).Msg("no user with assignee email, creating issue unassigned")
		}
	}

	issue, err := h.client.CreateIssue(ctx, input)
	if err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.CreateIssueResult{
		Success: true,
		Issue:   domain.NewCreatedIssueView(issue),
	})
}

// handleUpdateIssue handles the update_issue tool call.
// Empty strings leave title, description and status unchanged; a present
// priority, including 0, is always applied.
func (h *LinearHandler) handleUpdateIssue(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	identifier, err := getStringParam(args, "identifier", true)
	if err != nil {
		return nil, err
	}
	title, err := getStringParam(args, "title", false)
	if err != nil {
		return nil, err
	}
	description, err := getStringParam(args, "description", false)
	if err != nil {
		return nil, err
	}
	status, err := getStringParam(args, "status", false)
	if err != nil {
		return nil, err
	}
	priority, err := getOptionalIntParam(args, "priority")
	if err != nil {
		return nil, err
	}

	issue, err := h.client.FetchIssue(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return issueNotFound(identifier), nil
	}
	if err != nil {
		return nil, err
	}

	input := domain.IssueUpdateInput{Priority: priority}
	if title != "" {
		input.Title = &title
	}
	if description != "" {
		input.Description = &description
	}

	if status != "" {
		stateID, err := h.resolveStateID(ctx, issue, status)
		if err != nil {
			return nil, err
		}
		input.StateID = stateID
	}

	if err := h.client.UpdateIssue(ctx, issue.ID, input); err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.UpdateIssueResult{
		Success: true,
		Message: fmt.Sprintf("Issue %s updated", identifier),
	})
}

// resolveStateID finds the state named status among the workflow states of
// the issue's team. It returns nil when there is no such state.
func (h *LinearHandler) resolveStateID(ctx context.Context, issue *domain.Issue, status string) (*string, error) {
	if issue.Team == nil {
		h.logger.Warn().Str("issue", issue.Identifier).Str("status", status).Msg("issue has no team, status left unchanged")
		return nil, nil
	}

	state, err := h.resolver.state(ctx, issue.Team.ID, status)
	if err != nil {
		return nil, err
	}
	if state == nil {
		h.logger.Warn().Str("issue", issue.Identifier).Str("status", status).Msg("no workflow state with that name, status left unchanged")
		return nil, nil
	}
	return &state.ID, nil
}

func issueNotFound(identifier string) *domain.ToolResponse {
	return domain.NewToolErrorResponse(fmt.Sprintf("Issue %s not found", identifier))
}

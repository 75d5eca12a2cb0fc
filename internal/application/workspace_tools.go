package application

import (
	"context"
	"fmt"

	"linear-mcp-server/internal/domain"
)

// handleListTeams handles the list_teams tool call.
func (h *LinearHandler) handleListTeams(ctx context.Context, _ map[string]interface{}) (*domain.ToolResponse, error) {
	teams, err := h.client.FetchTeams(ctx)
	if err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.NewTeamViews(teams))
}

// handleListProjects handles the list_projects tool call.
func (h *LinearHandler) handleListProjects(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	teamKey, err := getStringParam(args, "team", false)
	if err != nil {
		return nil, err
	}
	status, err := getStringParam(args, "status", false)
	if err != nil {
		return nil, err
	}

	filter := domain.ProjectFilter{State: status}

	if teamKey != "" {
		team, err := h.resolver.team(ctx, teamKey)
		if err != nil {
			return nil, err
		}
		if team != nil {
			filter.TeamKey = teamKey
		} else {
			h.logger.Warn().Str("team", teamKey).Msg("team not found, listing projects without team filter")
		}
	}

	projects, err := h.client.QueryProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	return h.mapper.MapToToolResponse(domain.NewProjectViews(projects))
}

// handleGetUser handles the get_user tool call.
// Without an email it returns the authenticated user.
func (h *LinearHandler) handleGetUser(ctx context.Context, args map[string]interface{}) (*domain.ToolResponse, error) {
	email, err := getStringParam(args, "email", false)
	if err != nil {
		return nil, err
	}

	if email == "" {
		viewer, err := h.client.FetchViewer(ctx)
		if err != nil {
			return nil, err
		}
		return h.mapper.MapToToolResponse(domain.NewUserView(*viewer))
	}

	user, err := h.resolver.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return domain.NewToolErrorResponse(fmt.Sprintf("User with email %s not found", email)), nil
	}

	return h.mapper.MapToToolResponse(domain.NewUserView(*user))
}

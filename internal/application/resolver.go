package application

import (
	"context"
	"errors"
	"strings"

	"linear-mcp-server/internal/domain"
)

// resolver turns the friendly keys callers pass (team key, email, state
// name) into Linear entities. A nil entity with a nil error means no match.
type resolver struct {
	client          domain.LinearClient
	userLookupLimit int
}

// team looks a team up by key. domain.ErrNotFound is reported as no match.
func (r *resolver) team(ctx context.Context, key string) (*domain.Team, error) {
	team, err := r.client.FetchTeam(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// userMatching returns the first user whose email or name contains query,
// ignoring case.
func (r *resolver) userMatching(ctx context.Context, query string) (*domain.User, error) {
	users, err := r.client.FetchUsers(ctx, r.userLookupLimit)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	for i := range users {
		if strings.Contains(strings.ToLower(users[i].Email), needle) ||
			strings.Contains(strings.ToLower(users[i].Name), needle) {
			return &users[i], nil
		}
	}
	return nil, nil
}

// userByEmail returns the user whose email equals email exactly.
func (r *resolver) userByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.client.FetchUsers(ctx, r.userLookupLimit)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// state returns the workflow state of the team named exactly name.
func (r *resolver) state(ctx context.Context, teamID, name string) (*domain.WorkflowState, error) {
	states, err := r.client.FetchWorkflowStates(ctx, teamID)
	if err != nil {
		return nil, err
	}

	for i := range states {
		if states[i].Name == name {
			return &states[i], nil
		}
	}
	return nil, nil
}

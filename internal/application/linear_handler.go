package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"linear-mcp-server/internal/domain"
)

// LinearHandler implements ToolHandler for Linear operations.
// It routes MCP tool calls to the LinearClient, resolving friendly keys first,
// and renders the results through the ResponseMapper.
type LinearHandler struct {
	client   domain.LinearClient
	mapper   domain.ResponseMapper
	resolver *resolver
	logger   zerolog.Logger
}

// NewLinearHandler creates a new LinearHandler instance.
// userLookupLimit bounds the user page scanned when resolving assignees and emails.
func NewLinearHandler(client domain.LinearClient, mapper domain.ResponseMapper, userLookupLimit int, logger zerolog.Logger) *LinearHandler {
	return &LinearHandler{
		client: client,
		mapper: mapper,
		resolver: &resolver{
			client:          client,
			userLookupLimit: userLookupLimit,
		},
		logger: logger.With().Str("component", "linear_handler").Logger(),
	}
}

// ToolName returns the identifier for this handler.
func (h *LinearHandler) ToolName() string {
	return "linear"
}

// ListTools returns the Linear tool catalog.
func (h *LinearHandler) ListTools() []domain.ToolDefinition {
	return Catalog()
}

// Handle processes a tool call.
func (h *LinearHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	switch req.Name {
	case ToolListIssues:
		return h.handleListIssues(ctx, req.Arguments)
	case ToolGetIssue:
		return h.handleGetIssue(ctx, req.Arguments)
	case ToolCreateIssue:
		return h.handleCreateIssue(ctx, req.Arguments)
	case ToolUpdateIssue:
		return h.handleUpdateIssue(ctx, req.Arguments)
	case ToolListTeams:
		return h.handleListTeams(ctx, req.Arguments)
	case ToolListProjects:
		return h.handleListProjects(ctx, req.Arguments)
	case ToolGetUser:
		return h.handleGetUser(ctx, req.Arguments)
	default:
		return nil, &domain.Error{
			Code:    domain.MethodNotFound,
			Message: fmt.Sprintf("unknown Linear tool: %s", req.Name),
		}
	}
}

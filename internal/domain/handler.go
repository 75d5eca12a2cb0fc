package domain

import (
	"context"
)

// ToolHandler serves a group of MCP tools backed by one remote system.
type ToolHandler interface {
	// Handle processes an MCP tool call request.
	// A returned error is reported to the caller as an "Error: ..." tool result.
	Handle(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// ListTools returns the tools served by this handler, in catalog order.
	ListTools() []ToolDefinition

	// ToolName returns the identifier for this handler.
	ToolName() string
}

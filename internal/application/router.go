package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"linear-mcp-server/internal/domain"
	"linear-mcp-server/internal/metrics"
)

// RequestRouter dispatches MCP tool calls to the ToolHandler serving each
// tool. It is the single failure boundary for tool calls: every outcome,
// including handler errors and panics, becomes a ToolResponse.
type RequestRouter struct {
	handlers map[string]domain.ToolHandler // keyed by tool name
	tools    []domain.ToolDefinition
	schemas  map[string]*gojsonschema.Schema
	mapper   domain.ResponseMapper
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewRequestRouter creates a RequestRouter serving every tool of the given
// handlers, in the order the handlers list them.
// Returns an error if two handlers claim the same tool or a schema does not compile.
func NewRequestRouter(mapper domain.ResponseMapper, m *metrics.Metrics, logger zerolog.Logger, handlers ...domain.ToolHandler) (*RequestRouter, error) {
	router := &RequestRouter{
		handlers: make(map[string]domain.ToolHandler),
		schemas:  make(map[string]*gojsonschema.Schema),
		mapper:   mapper,
		metrics:  m,
		logger:   logger.With().Str("component", "router").Logger(),
	}

	for _, handler := range handlers {
		for _, tool := range handler.ListTools() {
			if _, exists := router.handlers[tool.Name]; exists {
				return nil, fmt.Errorf("tool %s is registered twice", tool.Name)
			}

			schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema))
			if err != nil {
				return nil, fmt.Errorf("invalid input schema for tool %s: %w", tool.Name, err)
			}

			router.handlers[tool.Name] = handler
			router.schemas[tool.Name] = schema
			router.tools = append(router.tools, tool)
		}
	}

	return router, nil
}

// Route executes a tool call and always returns a response.
// Unknown tools yield "Unknown tool: <name>"; invalid arguments, handler
// errors and panics yield "Error: <message>". All of them set isError.
func (r *RequestRouter) Route(ctx context.Context, req *domain.ToolRequest) *domain.ToolResponse {
	start := time.Now()

	handler, exists := r.handlers[req.Name]
	if !exists {
		r.logger.Warn().Str("tool", req.Name).Msg("unknown tool")
		r.metrics.ObserveToolCall("unknown", true, time.Since(start))
		return domain.NewToolErrorResponse(fmt.Sprintf("Unknown tool: %s", req.Name))
	}

	if req.Arguments == nil {
		req.Arguments = make(map[string]interface{})
	}

	resp := r.invoke(ctx, handler, req)
	duration := time.Since(start)

	r.metrics.ObserveToolCall(req.Name, resp.IsError, duration)
	r.logger.Info().
		Str("tool", req.Name).
		Dur("duration", duration).
		Bool("is_error", resp.IsError).
		Msg("tool call")

	return resp
}

// invoke validates the arguments and runs the handler, recovering panics.
func (r *RequestRouter) invoke(ctx context.Context, handler domain.ToolHandler, req *domain.ToolRequest) (resp *domain.ToolResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().Str("tool", req.Name).Interface("panic", rec).Msg("tool handler panicked")
			resp = r.mapper.MapError(fmt.Errorf("%v", rec))
		}
	}()

	if err := r.validateArguments(req.Name, req.Arguments); err != nil {
		return r.mapper.MapError(err)
	}

	result, err := handler.Handle(ctx, req)
	if err != nil {
		r.logger.Error().Err(err).Str("tool", req.Name).Msg("tool execution failed")
		return r.mapper.MapError(err)
	}
	if result == nil {
		return r.mapper.MapError(fmt.Errorf("tool %s returned no result", req.Name))
	}

	return result
}

// validateArguments checks arguments against the tool's input schema.
func (r *RequestRouter) validateArguments(toolName string, args map[string]interface{}) error {
	schema, ok := r.schemas[toolName]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(withoutNulls(args)))
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, resultErr := range result.Errors() {
			if field := resultErr.Field(); field != "" && field != "(root)" {
				problems = append(problems, field+": "+resultErr.Description())
				continue
			}
			problems = append(problems, resultErr.Description())
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(problems, "; "))
	}

	return nil
}

// withoutNulls drops null-valued arguments, which handlers treat as absent.
func withoutNulls(args map[string]interface{}) map[string]interface{} {
	present := make(map[string]interface{}, len(args))
	for name, value := range args {
		if value != nil {
			present[name] = value
		}
	}
	return present
}

// ListAllTools returns the definitions of every routed tool, in registration order.
// This is used for MCP tool discovery (tools/list method).
func (r *RequestRouter) ListAllTools() []domain.ToolDefinition {
	tools := make([]domain.ToolDefinition, len(r.tools))
	copy(tools, r.tools)
	return tools
}

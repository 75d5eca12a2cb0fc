package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"linear-mcp-server/internal/domain"
	"linear-mcp-server/internal/metrics"
)

// MCP protocol constants reported by initialize.
const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "linear-mcp-server"
	ServerVersion   = "1.0.0"
)

// Server is the main MCP server implementation.
// It reads JSON-RPC requests from the transport one at a time and implements
// the MCP protocol methods on top of the RequestRouter.
type Server struct {
	transport domain.Transport
	router    *RequestRouter
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	done      chan struct{}
}

// NewServer creates a new MCP server instance.
func NewServer(transport domain.Transport, router *RequestRouter, m *metrics.Metrics, logger zerolog.Logger) *Server {
	return &Server{
		transport: transport,
		router:    router,
		metrics:   m,
		logger:    logger.With().Str("component", "server").Logger(),
		done:      make(chan struct{}),
	}
}

// Start starts the transport and begins processing requests in the background.
func (s *Server) Start(ctx context.Context) error {
	if err := s.transport.Start(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to start transport")
		return fmt.Errorf("failed to start transport: %w", err)
	}

	s.logger.Info().Msg("server started")

	go s.processRequests(ctx)

	return nil
}

// Done is closed once the server stops processing requests, either because
// the context was cancelled or the transport closed its request channel.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// processRequests handles incoming requests sequentially.
func (s *Server) processRequests(ctx context.Context) {
	defer close(s.done)

	reqChan := s.transport.Receive()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("server shutting down")
			return
		case req, ok := <-reqChan:
			if !ok {
				s.logger.Info().Msg("transport closed")
				return
			}

			s.handleRequest(ctx, req)
		}
	}
}

// handleRequest processes a single JSON-RPC request and sends its response.
func (s *Server) handleRequest(ctx context.Context, req *domain.Request) {
	s.metrics.ObserveRequest(req.Method)
	s.logger.Debug().
		Str("method", req.Method).
		Interface("request_id", req.ID).
		Msg("received request")

	response := s.dispatch(ctx, req)
	if response == nil {
		return
	}
	response.SessionID = req.SessionID

	if err := s.transport.Send(response); err != nil {
		s.logger.Error().Err(err).Interface("request_id", req.ID).Msg("failed to send response")
	}
}

// dispatch returns the response to req, or nil for notifications.
func (s *Server) dispatch(ctx context.Context, req *domain.Request) *domain.Response {
	if req.IsNotification() {
		s.logger.Debug().Str("method", req.Method).Msg("notification ignored")
		return nil
	}

	if err := s.validateRequest(req); err != nil {
		return domain.NewErrorResponse(req.ID, domain.InvalidRequest, "Invalid Request", err.Error())
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return s.result(req, map[string]interface{}{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return domain.NewErrorResponse(req.ID, domain.MethodNotFound, "Method not found", fmt.Sprintf("unknown method: %s", req.Method))
	}
}

// validateRequest validates the basic structure of a JSON-RPC request.
func (s *Server) validateRequest(req *domain.Request) error {
	if req.JSONRPC != "2.0" {
		return fmt.Errorf("invalid jsonrpc version: %s", req.JSONRPC)
	}

	if req.Method == "" {
		return fmt.Errorf("method is required")
	}

	return nil
}

// handleInitialize handles the MCP initialize handshake.
func (s *Server) handleInitialize(req *domain.Request) *domain.Response {
	return s.result(req, map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
	})
}

// handleToolsList handles the MCP tools/list method.
func (s *Server) handleToolsList(req *domain.Request) *domain.Response {
	return s.result(req, map[string]interface{}{
		"tools": s.router.ListAllTools(),
	})
}

// handleToolsCall handles the MCP tools/call method.
// Tool failures are reported inside the result; only malformed params
// produce a JSON-RPC error.
func (s *Server) handleToolsCall(ctx context.Context, req *domain.Request) *domain.Response {
	toolReq, err := parseToolRequest(req.Params)
	if err != nil {
		return domain.NewErrorResponse(req.ID, domain.InvalidParams, "Invalid params", err.Error())
	}

	return s.result(req, s.router.Route(ctx, toolReq))
}

func (s *Server) result(req *domain.Request, result interface{}) *domain.Response {
	return &domain.Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

// parseToolRequest decodes tools/call params into a ToolRequest.
func parseToolRequest(params json.RawMessage) (*domain.ToolRequest, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("params is required for tools/call")
	}

	var toolReq domain.ToolRequest
	if err := json.Unmarshal(params, &toolReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool request: %w", err)
	}

	if toolReq.Arguments == nil {
		toolReq.Arguments = make(map[string]interface{})
	}

	return &toolReq, nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info().Msg("closing server")
	return s.transport.Close()
}

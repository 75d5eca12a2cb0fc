package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultResponseMapper renders results as two-space indented JSON text.
type DefaultResponseMapper struct{}

// NewResponseMapper creates a new instance of DefaultResponseMapper.
func NewResponseMapper() ResponseMapper {
	return &DefaultResponseMapper{}
}

// MapToToolResponse converts a projection to MCP format.
// A nil result is rendered as an empty JSON object.
func (m *DefaultResponseMapper) MapToToolResponse(result interface{}) (*ToolResponse, error) {
	if result == nil {
		return NewTextResponse("{}"), nil
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return NewTextResponse(string(jsonBytes)), nil
}

// MapError converts any error into an isError tool response.
func (m *DefaultResponseMapper) MapError(err error) *ToolResponse {
	if err == nil {
		return NewToolErrorResponse("Error: unknown error")
	}
	return NewToolErrorResponse("Error: " + err.Error())
}

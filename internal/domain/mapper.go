package domain

// ResponseMapper converts handler results to MCP tool responses.
type ResponseMapper interface {
	// MapToToolResponse serializes a projection as the text of a tool response.
	// Returns an error if the value cannot be serialized.
	MapToToolResponse(result interface{}) (*ToolResponse, error)

	// MapError converts a failure into an isError tool response whose text
	// starts with "Error: ".
	MapError(err error) *ToolResponse
}

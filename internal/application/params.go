package application

import (
	"fmt"

	"linear-mcp-server/internal/domain"
)

// getStringParam extracts a string parameter from the arguments map.
// Returns an error if the parameter is required but missing or not a string.
func getStringParam(args map[string]interface{}, name string, required bool) (string, error) {
	value, exists := args[name]
	if !exists || value == nil {
		if required {
			return "", &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a string", name),
		}
	}

	return strValue, nil
}

// getIntParam extracts an integer parameter from the arguments map.
// A missing optional parameter yields 0.
func getIntParam(args map[string]interface{}, name string, required bool) (int, error) {
	value, err := getOptionalIntParam(args, name)
	if err != nil {
		return 0, err
	}
	if value == nil {
		if required {
			return 0, &domain.Error{
				Code:    domain.InvalidParams,
				Message: fmt.Sprintf("missing required parameter: %s", name),
			}
		}
		return 0, nil
	}
	return *value, nil
}

// getOptionalIntParam extracts an integer parameter, returning nil when the
// parameter is absent. Zero is a present value.
func getOptionalIntParam(args map[string]interface{}, name string) (*int, error) {
	value, exists := args[name]
	if !exists || value == nil {
		return nil, nil
	}

	// Handle both float64 (from JSON) and int
	var n int
	switch v := value.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	default:
		return nil, &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("parameter %s must be a number", name),
		}
	}
	return &n, nil
}

package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Empty strings in optional fields always render as JSON null and
// non-empty ones round-trip unchanged.
func TestProperty_NullableProjection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("description is null iff empty", prop.ForAll(
		func(description string) bool {
			data, err := json.Marshal(NewTeamView(Team{ID: "t", Key: "ENG", Description: description}))
			if err != nil {
				return false
			}

			var decoded map[string]interface{}
			if err := json.Unmarshal(data, &decoded); err != nil {
				return false
			}

			value, present := decoded["description"]
			if !present {
				return false
			}
			if description == "" {
				return value == nil
			}
			return value == description
		},
		gen.OneGenOf(gen.Const(""), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Projecting the same issue twice produces byte-identical output.
func TestProperty_ProjectionIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	mapper := NewResponseMapper()

	properties.Property("same issue, same text", prop.ForAll(
		func(title string, priority int, withState bool) bool {
			issue := Issue{ID: "i", Identifier: "ENG-1", Title: title, Priority: float64(priority)}
			if withState {
				issue.State = &WorkflowState{Name: "Todo"}
			}

			first, err1 := mapper.MapToToolResponse(NewIssueView(issue))
			second, err2 := mapper.MapToToolResponse(NewIssueView(issue))
			return err1 == nil && err2 == nil && first.Text() == second.Text()
		},
		gen.AnyString(),
		gen.IntRange(0, 4),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Every mapped error is an isError response prefixed with "Error: ".
func TestProperty_MapErrorPrefix(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	mapper := NewResponseMapper()

	properties.Property("errors are prefixed", prop.ForAll(
		func(message string) bool {
			resp := mapper.MapError(&Error{Code: InternalError, Message: message})
			return resp.IsError && strings.HasPrefix(resp.Text(), "Error: ") && strings.HasSuffix(resp.Text(), message)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Only "", "apikey" and "oauth" are accepted auth types.
func TestProperty_ParseAuthType(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("unknown auth types are rejected", prop.ForAll(
		func(s string) bool {
			authType, err := ParseAuthType(s)
			switch s {
			case "", "apikey":
				return err == nil && authType == APIKeyAuth
			case "oauth":
				return err == nil && authType == OAuthAuth
			default:
				return err != nil
			}
		},
		gen.OneGenOf(gen.OneConstOf("", "apikey", "oauth", "basic", "token"), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

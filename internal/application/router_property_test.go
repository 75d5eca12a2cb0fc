package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"linear-mcp-server/internal/domain"
)

func isCatalogName(name string) bool {
	for _, tool := range Catalog() {
		if tool.Name == name {
			return true
		}
	}
	return false
}

// Any name outside the catalog yields "Unknown tool: <name>" without
// touching the Linear API.
func TestProperty_UnknownToolNames(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("unknown tools are rejected", prop.ForAll(
		func(name string) bool {
			client := newFakeLinearClient()
			router := newTestRouter(t, client)

			resp := router.Route(context.Background(), &domain.ToolRequest{Name: name})

			return resp.IsError &&
				resp.Text() == "Unknown tool: "+name &&
				client.callCount() == 0
		},
		gen.AnyString().SuchThat(func(name string) bool { return !isCatalogName(name) }),
	))

	properties.TestingRun(t)
}

// Every tool call that fails in the API client is reported with the
// "Error: " prefix followed by the client's message.
func TestProperty_FailureBoundary(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genTool := gen.OneConstOf(ToolListIssues, ToolListTeams, ToolListProjects, ToolGetUser)

	properties.Property("client errors become Error: results", prop.ForAll(
		func(tool string, message string) bool {
			client := newFakeLinearClient()
			client.setErr(errors.New(message))
			router := newTestRouter(t, client)

			resp := router.Route(context.Background(), &domain.ToolRequest{Name: tool})

			return resp.IsError && resp.Text() == "Error: "+message && len(resp.Content) == 1
		},
		genTool,
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Priority is applied whenever it is present, including 0.
func TestProperty_UpdatePriorityPresence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("present priority is always sent", prop.ForAll(
		func(priority int) bool {
			client := newFakeLinearClient()
			router := newTestRouter(t, client)

			resp := router.Route(context.Background(), &domain.ToolRequest{
				Name:      ToolUpdateIssue,
				Arguments: map[string]interface{}{"identifier": "ENG-1", "priority": float64(priority)},
			})

			return !resp.IsError &&
				client.lastUpdate != nil &&
				client.lastUpdate.Priority != nil &&
				*client.lastUpdate.Priority == priority
		},
		gen.IntRange(0, 4),
	))

	properties.Property("empty title leaves the title unchanged", prop.ForAll(
		func(title string) bool {
			client := newFakeLinearClient()
			router := newTestRouter(t, client)

			router.Route(context.Background(), &domain.ToolRequest{
				Name:      ToolUpdateIssue,
				Arguments: map[string]interface{}{"identifier": "ENG-1", "title": title},
			})

			if title == "" {
				return client.lastUpdate.Title == nil
			}
			return client.lastUpdate.Title != nil && *client.lastUpdate.Title == title
		},
		gen.OneGenOf(gen.Const(""), gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// The catalog and read-only tools give the same answer on every call.
func TestProperty_Idempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genTool := gen.OneConstOf(ToolListTeams, ToolListProjects, ToolGetUser, ToolListIssues)

	properties.Property("repeated calls agree", prop.ForAll(
		func(tool string) bool {
			router := newTestRouter(t, newFakeLinearClient())

			if !reflect.DeepEqual(router.ListAllTools(), router.ListAllTools()) {
				return false
			}

			first := router.Route(context.Background(), &domain.ToolRequest{Name: tool})
			second := router.Route(context.Background(), &domain.ToolRequest{Name: tool})
			return reflect.DeepEqual(first, second)
		},
		genTool,
	))

	properties.TestingRun(t)
}

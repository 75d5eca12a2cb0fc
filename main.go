package main

import (
	"errors"
	"fmt"
	"os"

	"linear-mcp-server/internal/cli"
	"linear-mcp-server/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage formats a startup failure for stderr. A missing credential
// is printed as-is so the user sees which variable to set.
func exitMessage(err error) string {
	if errors.Is(err, domain.ErrMissingAPIKey) {
		return err.Error()
	}
	return fmt.Sprintf("Fatal error: %v", err)
}

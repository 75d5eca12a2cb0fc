package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"linear-mcp-server/internal/application"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog as JSON",
		Long:  `Print the name, description and input schema of every tool. No Linear credential is needed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(application.Catalog(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode tool catalog: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

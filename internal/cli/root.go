package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"linear-mcp-server/internal/application"
)

// options holds the persistent flags shared by all commands.
type options struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand serves MCP, so MCP clients can launch the binary bare.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "linear-mcp-server",
		Short: "MCP server exposing the Linear issue tracker",
		Long: `linear-mcp-server exposes Linear issues, teams, projects and users
as Model Context Protocol tools.

The Linear credential is read from the LINEAR_API_KEY environment variable.`,
		Version:       application.ServerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", application.ServerName))

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newToolsCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"linear-mcp-server/internal/application"
	"linear-mcp-server/internal/domain"
	"linear-mcp-server/internal/infrastructure"
	"linear-mcp-server/internal/logger"
	"linear-mcp-server/internal/metrics"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Linear tools over MCP",
		Long: `Serve the Linear tools over the configured MCP transport.

The stdio transport reads newline-delimited JSON-RPC from stdin and writes
responses to stdout. The http transport serves SSE on /mcp together with
/health and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	config, err := domain.LoadConfigWithEnv(opts.configPath, opts.getenv)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:     config.Logging.Level,
		Pretty:    config.Logging.Pretty,
		Redaction: true,
		Output:    cmd.ErrOrStderr(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authManager, err := domain.NewAuthenticationManagerFromConfig(config)
	if err != nil {
		return err
	}
	httpClient, err := authManager.GetAuthenticatedClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %w", err)
	}

	m := metrics.NewMetrics()
	mapper := domain.NewResponseMapper()
	client := infrastructure.NewLinearClient(config.Linear.APIURL, httpClient)
	handler := application.NewLinearHandler(client, mapper, config.Linear.UserLookupLimit, log)

	router, err := application.NewRequestRouter(mapper, m, log, handler)
	if err != nil {
		return fmt.Errorf("failed to create request router: %w", err)
	}

	transport := newTransport(cmd, config, m, log)
	server := application.NewServer(transport, router, m, log)

	if err := server.Start(ctx); err != nil {
		return err
	}

	log.Info().
		Str("transport", config.Transport.Type).
		Str("api_url", config.Linear.APIURL).
		Str("auth_type", config.Linear.AuthType).
		Int("tools", len(router.ListAllTools())).
		Msg("linear mcp server ready")

	if config.Transport.Type == "stdio" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Linear MCP server running on stdio")
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case <-server.Done():
	}

	if err := server.Close(); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func newTransport(cmd *cobra.Command, config *domain.Config, m *metrics.Metrics, log zerolog.Logger) domain.Transport {
	if config.Transport.Type == "http" {
		transport := domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port, log)
		transport.Mount("/metrics", m.Handler())
		return transport
	}
	return domain.NewStdioTransportWithIO(cmd.InOrStdin(), cmd.OutOrStdout(), log)
}

// getenv reads the process environment, letting --log-level win over
// LINEAR_MCP_LOG_LEVEL.
func (o *options) getenv(key string) string {
	if key == domain.EnvLogLevel && o.logLevel != "" {
		return o.logLevel
	}
	return os.Getenv(key)
}

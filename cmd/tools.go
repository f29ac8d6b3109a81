package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/config"
	"github.com/vikrambhat2/AgenticRAG/internal/llm"
	"github.com/vikrambhat2/AgenticRAG/internal/server"
	"github.com/vikrambhat2/AgenticRAG/internal/tools"
)

var (
	toolsTransport string
	toolsPort      int
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Run the résumé matching tool server",
	Long: `Serves the parse_resume, parse_jd, match_resume_to_jd and summarize_gap tools
over the Model Context Protocol, on stdio (default) or streamable HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newToolServer(cfg)
		if err != nil {
			return err
		}

		transport := cfg.Tools.Transport
		if toolsTransport != "" {
			transport = config.ToolTransport(toolsTransport)
		}
		port := cfg.Tools.Port
		if cmd.Flags().Changed("port") {
			port = toolsPort
		}

		switch transport {
		case config.TransportStdio:
			fmt.Fprintf(os.Stderr, "%s tool server started on stdio (model=%s)\n", tools.ServerName, cfg.ToolModel)
			return srv.Serve()
		case config.TransportHTTP:
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpSrv := server.New(server.Config{Name: "tools", Port: port})
			httpSrv.Router().Handle(tools.HTTPEndpoint, srv.HTTPHandler())
			fmt.Fprintf(os.Stderr, "%s tool server listening on http://localhost:%d%s (model=%s)\n",
				tools.ServerName, port, tools.HTTPEndpoint, cfg.ToolModel)
			return httpSrv.Run(ctx)
		default:
			return fmt.Errorf("unknown transport %q: must be stdio or http", transport)
		}
	},
}

// newToolServer builds the tool service on the configured tool model. A
// provider that cannot be created is logged before the error is returned.
func newToolServer(cfg *config.Config) (*tools.Server, error) {
	provider, err := createLLMProviderFromConfig(cfg, cfg.ToolModel)
	if err != nil {
		zlog.Error().Err(err).Str("provider", string(cfg.Provider)).Str("model", cfg.ToolModel).Msg("tool model initialisation failed")
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return tools.NewServer(llm.NewMeteredProvider(provider), cfg.Temperature), nil
}

func init() {
	toolsCmd.Flags().StringVar(&toolsTransport, "transport", "", "stdio or http (default: tools.transport from config)")
	toolsCmd.Flags().IntVarP(&toolsPort, "port", "p", 8765, "port for the http transport")
	rootCmd.AddCommand(toolsCmd)
}

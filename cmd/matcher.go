package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/matcher"
	"github.com/vikrambhat2/AgenticRAG/internal/matcherui"
	"github.com/vikrambhat2/AgenticRAG/internal/server"
)

var (
	matcherPort       int
	matcherToolServer string
)

var matcherCmd = &cobra.Command{
	Use:   "matcher",
	Short: "Start the résumé matcher web UI",
	Long: `Starts a web UI that takes a résumé and a job description (PDF or pasted text)
and runs them through the matching tools. By default the tool server is this
executable's tools command spawned over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		toolServer := cfg.Matcher.ToolServer
		if matcherToolServer != "" {
			toolServer = matcherToolServer
		}
		svc, err := matcher.Dial(ctx, toolServer)
		if err != nil {
			return err
		}
		defer svc.Close()

		extractor, err := document.NewExtractor(ctx)
		if err != nil {
			return fmt.Errorf("creating PDF extractor: %w", err)
		}

		port := cfg.Matcher.Port
		if cmd.Flags().Changed("port") {
			port = matcherPort
		}
		srv := server.New(server.Config{Name: "matcher", Port: port})
		matcherui.New(extractor, svc).RegisterRoutes(srv.Router())

		fmt.Fprintf(os.Stderr, "Résumé matcher running at http://localhost:%d\n", port)
		return srv.Run(ctx)
	},
}

func init() {
	matcherCmd.Flags().IntVarP(&matcherPort, "port", "p", 8502, "port to listen on")
	matcherCmd.Flags().StringVar(&matcherToolServer, "tool-server", "", "tool server URL or command line (default: matcher.tool_server from config)")
	rootCmd.AddCommand(matcherCmd)
}

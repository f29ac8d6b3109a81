package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vikrambhat2/AgenticRAG/internal/document"
	"github.com/vikrambhat2/AgenticRAG/internal/matcher"
)

var (
	matchResume     string
	matchJD         string
	matchToolServer string
	matchJSON       bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a résumé against a job description from the terminal",
	Long: `Runs parse_resume, parse_jd, match_resume_to_jd and summarize_gap on the given
inputs. --resume and --jd accept a PDF path, a text file path or literal text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		resumeText, err := readInput(ctx, matchResume)
		if err != nil {
			return fmt.Errorf("reading resume: %w", err)
		}
		jdText, err := readInput(ctx, matchJD)
		if err != nil {
			return fmt.Errorf("reading job description: %w", err)
		}

		toolServer := cfg.Matcher.ToolServer
		if matchToolServer != "" {
			toolServer = matchToolServer
		}
		svc, err := matcher.Dial(ctx, toolServer)
		if err != nil {
			return err
		}
		defer svc.Close()

		pipeline := &matcher.Pipeline{
			Tools: svc,
			OnStep: func(tool string) {
				fmt.Fprintf(os.Stderr, "Running %s...\n", tool)
			},
		}
		report, err := pipeline.Run(ctx, resumeText, jdText)
		if err != nil {
			return err
		}

		if matchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(report)
		return nil
	},
}

// readInput treats value as a file path when it names an existing file, and
// as literal text otherwise.
func readInput(ctx context.Context, value string) (string, error) {
	info, err := os.Stat(value)
	if value == "" || err != nil || info.IsDir() {
		return value, nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(value), ".pdf") {
		return string(data), nil
	}

	extractor, err := document.NewExtractor(ctx)
	if err != nil {
		return "", err
	}
	return extractor.Text(ctx, filepath.Base(value), bytes.NewReader(data))
}

func printReport(r *matcher.Report) {
	fmt.Printf("## Parsed Resume\n\n%s\n\n", r.ParsedResume)
	fmt.Printf("## Parsed Job Description\n\n%s\n\n", r.ParsedJD)

	fmt.Println("## Match Result")
	fmt.Println()
	if len(r.Match.Payload) > 0 {
		var out bytes.Buffer
		if json.Indent(&out, r.Match.Payload, "", "  ") == nil {
			fmt.Println(out.String())
		} else {
			fmt.Println(string(r.Match.Payload))
		}
	} else {
		fmt.Println(r.Match.Raw)
	}
	fmt.Println()

	fmt.Println("## Gap Summary")
	fmt.Println()
	if r.GapError != "" {
		fmt.Println(r.GapError)
	} else {
		fmt.Println(r.GapSummary)
	}
}

func init() {
	matchCmd.Flags().StringVar(&matchResume, "resume", "", "résumé PDF, text file or literal text")
	matchCmd.Flags().StringVar(&matchJD, "jd", "", "job description PDF, text file or literal text")
	matchCmd.Flags().StringVar(&matchToolServer, "tool-server", "", "tool server URL or command line (default: matcher.tool_server from config)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(matchCmd)
}

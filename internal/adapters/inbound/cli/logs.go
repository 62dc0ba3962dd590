package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/tui"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func newLogsCmd() *cobra.Command {
	var (
		output     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "logs <path>",
		Short: "Analyze NuGet build logs for known CPM migration errors",
		Long:  "Scan a build log file, or every .log/.txt file in a directory, for known NuGet and MSBuild error codes, then summarize occurrences by priority with suggested fixes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			fs := afero.NewOsFs()
			logger := loggerFromContext(cmd.Context())

			svc := application.NewLogAnalyzerService(
				discovery.New(fs, nil),
				filestore.New(fs),
				logger,
			)

			analyses, summary, err := svc.Analyze(absPath)
			if errors.Is(err, domain.ErrNoProjectFiles) {
				return fmt.Errorf("no log files found at %s", absPath)
			}
			if err != nil {
				return fmt.Errorf("log analysis failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(struct {
					Files   []*domain.LogAnalysis `json:"files"`
					Summary *domain.LogSummary    `json:"summary"`
				}{analyses, summary}); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderLogSummary(summary))
			}

			if output != "" {
				if err := afero.WriteFile(fs, output, []byte(tui.PlainLogSummary(summary)), 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				logger.Info("wrote log analysis report", "file", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Write a plain-text analysis report to this file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the analysis as JSON")
	return cmd
}

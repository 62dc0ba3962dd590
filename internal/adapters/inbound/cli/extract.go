package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/config"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/tui"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func newExtractCmd() *cobra.Command {
	var (
		output     string
		reportPath string
		exportData string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Extract package versions for CPM migration",
		Long:  "Collect package versions from packages.config and .csproj files, resolve version conflicts, and generate Directory.Packages.props content.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			fs := afero.NewOsFs()
			logger := loggerFromContext(cmd.Context())
			cfg, err := config.New(fs).Load(absPath)
			if err != nil {
				return err
			}

			svc := application.NewExtractService(
				discovery.New(fs, cfg.ExcludeDirs),
				filestore.New(fs),
				cfg,
				logger,
			)

			report, err := svc.Extract(absPath)
			if errors.Is(err, domain.ErrNoProjectFiles) {
				return fmt.Errorf("no packages.config or .csproj files found under %s", absPath)
			}
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			if len(report.Packages) == 0 {
				return fmt.Errorf("no package declarations found under %s", absPath)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			props := svc.GenerateProps(report)
			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), props)
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderExtraction(report))
				logger.Info("dry run - no files written")
				return nil
			}

			if err := afero.WriteFile(fs, output, []byte(props), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			logger.Info("wrote central version file", "path", output)

			if err := afero.WriteFile(fs, reportPath, []byte(tui.PlainExtraction(report)), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", reportPath, err)
			}
			logger.Info("wrote extraction report", "path", reportPath)

			if exportData != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling export data: %w", err)
				}
				if err := afero.WriteFile(fs, exportData, data, 0644); err != nil {
					return fmt.Errorf("writing %s: %w", exportData, err)
				}
				logger.Info("exported detailed data", "path", exportData)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderExtraction(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", domain.PropsFileName, "Output path for the generated Directory.Packages.props")
	cmd.Flags().StringVar(&reportPath, "report", "package-extraction-report.txt", "Output path for the extraction report")
	cmd.Flags().StringVar(&exportData, "export-data", "", "Export detailed extraction data to a JSON file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print generated content without writing files")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full report as JSON")

	return cmd
}

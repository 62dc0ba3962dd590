package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/buildtool"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/config"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/gitinfo"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/tui"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		skipBuild  bool
		strict     bool
		output     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a CPM migration and score it",
		Long:  "Check Directory.Packages.props, project files, props/project consistency and (optionally) a restore+build, then compute a weighted score and band. Exits non-zero when any category fails.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			absPath, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			fs := afero.NewOsFs()
			logger := loggerFromContext(cmd.Context())
			cfg, err := config.New(fs).Load(absPath)
			if err != nil {
				return err
			}

			svc := application.NewValidateService(
				discovery.New(fs, cfg.ExcludeDirs),
				filestore.New(fs),
				buildtool.New(cfg.Build),
				gitinfo.New(),
				logger,
			)

			report, err := svc.Validate(cmd.Context(), absPath, skipBuild)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderValidation(report))
			}

			if output != "" {
				if err := afero.WriteFile(fs, output, []byte(tui.PlainValidation(report)), 0o644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				logger.Info("wrote validation report", "file", output)
			}

			if !report.Passed() {
				return fmt.Errorf("validation failed with score %.1f (%s)", report.Score, report.Band)
			}
			if strict {
				for _, cat := range report.Categories {
					if cat.Status == domain.StatusWarn {
						return fmt.Errorf("strict mode: category %s has warnings", cat.Name)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip the dotnet restore and build checks")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().StringVar(&output, "output", "", "Write a plain-text validation report to this file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	return cmd
}

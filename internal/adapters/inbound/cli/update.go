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
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func newUpdateCmd() *cobra.Command {
	var (
		pattern    string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Batch-rewrite project files for CPM migration",
		Long:  "Apply one idempotent rewrite operation across every discovered .csproj file. Changed files get a .backup sibling before the first write; unchanged files are left completely untouched.",
	}
	cmd.PersistentFlags().StringVar(&pattern, "pattern", "", "Doublestar glob for project files (overrides path)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report planned changes without writing")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	run := func(cmd *cobra.Command, pathArg string, req application.UpdateRequest) error {
		root := "."
		if pathArg != "" {
			root = pathArg
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

		svc := application.NewUpdateService(
			discovery.New(fs, cfg.ExcludeDirs),
			filestore.New(fs),
			logger,
		)

		req.Root = absPath
		req.Pattern = pattern
		req.DryRun = dryRun

		result, err := svc.Run(req)
		if errors.Is(err, domain.ErrNoProjectFiles) {
			return fmt.Errorf("no .csproj files found (path %s, pattern %q)", absPath, pattern)
		}
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		printUpdateSummary(cmd, result)
		return nil
	}

	stripCmd := &cobra.Command{
		Use:   "strip-versions [path]",
		Short: "Remove Version attributes from PackageReference elements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, firstOrEmpty(args), application.UpdateRequest{
				Operation: "strip-versions",
				Apply:     domain.StripPackageVersions,
				Describe: func(count int) string {
					return fmt.Sprintf("removed %d Version attribute(s)", count)
				},
			})
		},
	}

	assemblyCmd := &cobra.Command{
		Use:   "assembly-info [path]",
		Short: "Disable GenerateAssemblyInfo in projects referencing SharedAssemblyInfo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, firstOrEmpty(args), application.UpdateRequest{
				Operation: "assembly-info",
				Apply:     domain.AddAssemblyInfoProperty,
				Describe: func(int) string {
					return "added GenerateAssemblyInfo=false"
				},
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove-package <name> [path]",
		Short: "Remove every PackageReference for a package",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return run(cmd, secondOrEmpty(args), application.UpdateRequest{
				Operation: "remove-package",
				Apply: func(content string) (string, int) {
					return domain.RemovePackageReference(content, name)
				},
				Describe: func(count int) string {
					return fmt.Sprintf("removed %d reference(s) to %s", count, name)
				},
			})
		},
	}

	addPropCmd := &cobra.Command{
		Use:   "add-property <name> <value> [path]",
		Short: "Add a property to the first PropertyGroup of each project",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value := args[0], args[1]
			return run(cmd, thirdOrEmpty(args), application.UpdateRequest{
				Operation: "add-property",
				Apply: func(content string) (string, int) {
					return domain.AddProperty(content, name, value)
				},
				Describe: func(int) string {
					return fmt.Sprintf("added %s=%s", name, value)
				},
			})
		},
	}

	cmd.AddCommand(stripCmd, assemblyCmd, removeCmd, addPropCmd)
	return cmd
}

func printUpdateSummary(cmd *cobra.Command, result *domain.UpdateResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Operation: %s\n", result.Operation)
	if result.DryRun {
		fmt.Fprintln(out, "DRY RUN - no files were modified")
	}
	fmt.Fprintf(out, "Files scanned: %d, changed: %d, unchanged: %d\n",
		result.FilesScanned, len(result.Changes), result.Skipped)
	for _, change := range result.Changes {
		fmt.Fprintf(out, "  %s: %s\n", change.Path, change.Description)
	}
	for _, fileErr := range result.Errors {
		fmt.Fprintf(out, "  ERROR %s: %s\n", fileErr.Path, fileErr.Error)
	}
	if len(result.BackupsCreated) > 0 {
		fmt.Fprintf(out, "Backups created: %d (suffix %s)\n",
			len(result.BackupsCreated), filestore.BackupSuffix)
	}
}

func firstOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func secondOrEmpty(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

func thirdOrEmpty(args []string) string {
	if len(args) > 2 {
		return args[2]
	}
	return ""
}

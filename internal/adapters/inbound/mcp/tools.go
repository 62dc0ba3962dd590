package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/config"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/gitinfo"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

// registerTools registers all cpmkit MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. cpm_extract
	s.AddTool(
		mcplib.NewTool("cpm_extract",
			mcplib.WithDescription("Extract package declarations from the solution, resolve version conflicts and return the extraction report plus the generated Directory.Packages.props content as JSON"),
		),
		handleExtract(projectPath),
	)

	// 2. cpm_validate
	s.AddTool(
		mcplib.NewTool("cpm_validate",
			mcplib.WithDescription("Validate the CPM migration (build checks skipped) and return the scored report as JSON"),
		),
		handleValidate(projectPath),
	)

	// 3. cpm_analyze_log
	s.AddTool(
		mcplib.NewTool("cpm_analyze_log",
			mcplib.WithDescription("Analyze a NuGet build log (or a directory of logs) for known CPM migration error codes"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to a log file or a directory containing .log/.txt files"),
			),
		),
		handleAnalyzeLog(),
	)

	// 4. cpm_update_plan
	s.AddTool(
		mcplib.NewTool("cpm_update_plan",
			mcplib.WithDescription("Dry-run one batch rewrite operation and return the plan as JSON. Never writes files."),
			mcplib.WithString("operation",
				mcplib.Required(),
				mcplib.Description("One of: strip-versions, assembly-info, remove-package, add-property"),
			),
			mcplib.WithString("package", mcplib.Description("Package name (remove-package only)")),
			mcplib.WithString("name", mcplib.Description("Property name (add-property only)")),
			mcplib.WithString("value", mcplib.Description("Property value (add-property only)")),
		),
		handleUpdatePlan(projectPath),
	)
}

// quietLogger suppresses service log output; MCP responses carry the data.
func quietLogger() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func handleExtract(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		fs := afero.NewOsFs()
		cfg, err := config.New(fs).Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		svc := application.NewExtractService(
			discovery.New(fs, cfg.ExcludeDirs),
			filestore.New(fs),
			cfg,
			quietLogger(),
		)
		report, err := svc.Extract(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("extraction failed: %v", err)), nil
		}

		return jsonResult(struct {
			Report *domain.ExtractionReport `json:"report"`
			Props  string                   `json:"props"`
		}{report, svc.GenerateProps(report)})
	}
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		fs := afero.NewOsFs()
		cfg, err := config.New(fs).Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		svc := application.NewValidateService(
			discovery.New(fs, cfg.ExcludeDirs),
			filestore.New(fs),
			nil, // build is always skipped over MCP
			gitinfo.New(),
			quietLogger(),
		)
		report, err := svc.Validate(ctx, projectPath, true)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleAnalyzeLog() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		fs := afero.NewOsFs()
		svc := application.NewLogAnalyzerService(
			discovery.New(fs, nil),
			filestore.New(fs),
			quietLogger(),
		)
		analyses, summary, err := svc.Analyze(path)
		if err != nil {
			return errorResult(fmt.Sprintf("log analysis failed: %v", err)), nil
		}

		return jsonResult(struct {
			Files   []*domain.LogAnalysis `json:"files"`
			Summary *domain.LogSummary    `json:"summary"`
		}{analyses, summary})
	}
}

func handleUpdatePlan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		operation, err := request.RequireString("operation")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var apply func(string) (string, int)
		switch operation {
		case "strip-versions":
			apply = domain.StripPackageVersions
		case "assembly-info":
			apply = domain.AddAssemblyInfoProperty
		case "remove-package":
			pkg := request.GetString("package", "")
			if pkg == "" {
				return errorResult("remove-package requires the package argument"), nil
			}
			apply = func(content string) (string, int) {
				return domain.RemovePackageReference(content, pkg)
			}
		case "add-property":
			name := request.GetString("name", "")
			value := request.GetString("value", "")
			if name == "" {
				return errorResult("add-property requires the name argument"), nil
			}
			apply = func(content string) (string, int) {
				return domain.AddProperty(content, name, value)
			}
		default:
			return errorResult(fmt.Sprintf("unknown operation %q", operation)), nil
		}

		fs := afero.NewOsFs()
		cfg, err := config.New(fs).Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		svc := application.NewUpdateService(
			discovery.New(fs, cfg.ExcludeDirs),
			filestore.New(fs),
			quietLogger(),
		)
		result, err := svc.Run(application.UpdateRequest{
			Operation: operation,
			Root:      projectPath,
			DryRun:    true,
			Apply:     apply,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("planning failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

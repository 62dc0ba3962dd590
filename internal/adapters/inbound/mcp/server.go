package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCPMKitMCPServer creates a new MCP server with all cpmkit tools
// registered. The projectPath is the root directory of the solution to
// operate on.
func NewCPMKitMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"cpmkit",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}

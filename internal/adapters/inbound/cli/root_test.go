package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmkit/cpmkit/internal/adapters/inbound/cli"
)

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeFixture(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand_Help(t *testing.T) {
	output, err := runCommand(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "extract")
	assert.Contains(t, output, "update")
	assert.Contains(t, output, "validate")
	assert.Contains(t, output, "logs")
	assert.Contains(t, output, "mcp")
}

func TestRootCommand_UnknownSubcommand(t *testing.T) {
	_, err := runCommand(t, "does-not-exist")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	output, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "cpmkit")
	assert.Contains(t, output, "dev")
}

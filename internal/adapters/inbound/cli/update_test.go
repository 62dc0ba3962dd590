package cli_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unmigrated = `<Project>
  <PropertyGroup>
    <TargetFramework>net48</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
    <PackageReference Include="Serilog" Version="2.12.0" />
  </ItemGroup>
</Project>`

func TestUpdateStripVersions(t *testing.T) {
	dir := t.TempDir()
	project := writeFixture(t, dir, "App/App.csproj", unmigrated)

	output, err := runCommand(t, "update", "strip-versions", dir)

	require.NoError(t, err)
	assert.Contains(t, output, "changed: 1")
	assert.Contains(t, output, "removed 1 Version attribute(s)")

	content, readErr := os.ReadFile(project)
	require.NoError(t, readErr)
	assert.NotContains(t, string(content), "Version=")

	backup, readErr := os.ReadFile(project + ".backup")
	require.NoError(t, readErr)
	assert.Equal(t, unmigrated, string(backup))
}

func TestUpdateStripVersions_DryRun(t *testing.T) {
	dir := t.TempDir()
	project := writeFixture(t, dir, "App/App.csproj", unmigrated)

	output, err := runCommand(t, "update", "strip-versions", dir, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, output, "DRY RUN")

	content, readErr := os.ReadFile(project)
	require.NoError(t, readErr)
	assert.Equal(t, unmigrated, string(content))
	_, statErr := os.Stat(project + ".backup")
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdateAssemblyInfo(t *testing.T) {
	dir := t.TempDir()
	project := writeFixture(t, dir, "App/App.csproj", `<Project>
  <PropertyGroup>
    <TargetFramework>net48</TargetFramework>
  </PropertyGroup>
  <ItemGroup>
    <Compile Include="..\SharedAssemblyInfo.cs" />
  </ItemGroup>
</Project>`)

	_, err := runCommand(t, "update", "assembly-info", dir)

	require.NoError(t, err)
	content, readErr := os.ReadFile(project)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "<GenerateAssemblyInfo>false</GenerateAssemblyInfo>")
}

func TestUpdateRemovePackage(t *testing.T) {
	dir := t.TempDir()
	project := writeFixture(t, dir, "App/App.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Legacy.Pkg" Version="1.0.0" />
    <PackageReference Include="Serilog" />
  </ItemGroup>
</Project>`)

	output, err := runCommand(t, "update", "remove-package", "Legacy.Pkg", dir)

	require.NoError(t, err)
	assert.Contains(t, output, "removed 1 reference(s) to Legacy.Pkg")

	content, readErr := os.ReadFile(project)
	require.NoError(t, readErr)
	assert.NotContains(t, string(content), "Legacy.Pkg")
	assert.Contains(t, string(content), "Serilog")
}

func TestUpdateAddProperty(t *testing.T) {
	dir := t.TempDir()
	project := writeFixture(t, dir, "App/App.csproj", unmigrated)

	_, err := runCommand(t, "update", "add-property", "LangVersion", "latest", dir)

	require.NoError(t, err)
	content, readErr := os.ReadFile(project)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "<LangVersion>latest</LangVersion>")
}

func TestUpdate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "App/App.csproj", unmigrated)

	output, err := runCommand(t, "update", "strip-versions", dir, "--json")

	require.NoError(t, err)
	assert.Contains(t, output, `"operation": "strip-versions"`)
	assert.Contains(t, output, `"files_scanned": 1`)
}

func TestUpdate_PatternFlag(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "App/App.csproj", unmigrated)
	other := writeFixture(t, dir, "Lib/Lib.csproj", unmigrated)

	_, err := runCommand(t, "update", "strip-versions", dir, "--pattern", "App/*.csproj")

	require.NoError(t, err)
	content, readErr := os.ReadFile(other)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "Version=", "files outside the pattern stay untouched")
}

func TestUpdate_NoProjects(t *testing.T) {
	_, err := runCommand(t, "update", "strip-versions", t.TempDir())
	assert.Error(t, err)
}

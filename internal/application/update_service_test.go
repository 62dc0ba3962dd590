package application_test

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func newUpdateService(fs afero.Fs) *application.UpdateService {
	return application.NewUpdateService(
		discovery.New(fs, nil),
		filestore.New(fs),
		quietLogger(),
	)
}

func stripRequest(root string) application.UpdateRequest {
	return application.UpdateRequest{
		Operation: "strip-versions",
		Root:      root,
		Apply:     domain.StripPackageVersions,
		Describe: func(count int) string {
			return fmt.Sprintf("removed %d Version attribute(s)", count)
		},
	}
}

func TestRun_BacksUpOnlyChangedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/App.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Serilog" Version="2.12.0" />
  </ItemGroup>
</Project>`)
	writeFile(t, fs, "sln/Lib/Lib.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Serilog" />
  </ItemGroup>
</Project>`)

	result, err := newUpdateService(fs).Run(stripRequest("sln"))

	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesScanned)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "removed 1 Version attribute(s)", result.Changes[0].Description)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, result.BackupsCreated, 1, "only the changed file gets a backup")
	exists, _ := afero.Exists(fs, "sln/App/App.csproj.backup")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, "sln/Lib/Lib.csproj.backup")
	assert.False(t, exists, "untouched files must not grow backups")

	updated, err := afero.ReadFile(fs, "sln/App/App.csproj")
	require.NoError(t, err)
	assert.NotContains(t, string(updated), "Version=")
}

func TestRun_IsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/App.csproj",
		`<Project><ItemGroup><PackageReference Include="Moq" Version="4.18.0" /></ItemGroup></Project>`)
	svc := newUpdateService(fs)

	first, err := svc.Run(stripRequest("sln"))
	require.NoError(t, err)
	require.Len(t, first.Changes, 1)

	second, err := svc.Run(stripRequest("sln"))
	require.NoError(t, err)
	assert.Empty(t, second.Changes, "a second run finds nothing left to rewrite")
	assert.Equal(t, 1, second.Skipped)
	assert.Empty(t, second.BackupsCreated)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	original := `<Project><ItemGroup><PackageReference Include="xunit" Version="2.4.2" /></ItemGroup></Project>`
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/App.csproj", original)

	req := stripRequest("sln")
	req.DryRun = true
	result, err := newUpdateService(fs).Run(req)

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.Len(t, result.Changes, 1, "the plan still reports would-be changes")
	assert.Empty(t, result.BackupsCreated)

	content, err := afero.ReadFile(fs, "sln/App/App.csproj")
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
	exists, _ := afero.Exists(fs, "sln/App/App.csproj.backup")
	assert.False(t, exists)
}

func TestRun_NoProjectFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0o755))

	_, err := newUpdateService(fs).Run(stripRequest("empty"))

	assert.ErrorIs(t, err, domain.ErrNoProjectFiles)
}

func TestRun_PatternLimitsScope(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/App.csproj",
		`<Project><ItemGroup><PackageReference Include="Moq" Version="4.18.0" /></ItemGroup></Project>`)
	writeFile(t, fs, "sln/Tests/Tests.csproj",
		`<Project><ItemGroup><PackageReference Include="Moq" Version="4.18.0" /></ItemGroup></Project>`)

	req := stripRequest("sln")
	req.Pattern = "App/*.csproj"
	result, err := newUpdateService(fs).Run(req)

	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesScanned)

	untouched, err := afero.ReadFile(fs, "sln/Tests/Tests.csproj")
	require.NoError(t, err)
	assert.Contains(t, string(untouched), "Version=")
}

func TestRun_RemovePackageOperation(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/App.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Legacy.Pkg" Version="1.0.0" />
    <PackageReference Include="Serilog" />
  </ItemGroup>
</Project>`)

	result, err := newUpdateService(fs).Run(application.UpdateRequest{
		Operation: "remove-package",
		Root:      "sln",
		Apply: func(content string) (string, int) {
			return domain.RemovePackageReference(content, "Legacy.Pkg")
		},
	})

	require.NoError(t, err)
	require.Len(t, result.Changes, 1)

	updated, err := afero.ReadFile(fs, "sln/App/App.csproj")
	require.NoError(t, err)
	assert.NotContains(t, string(updated), "Legacy.Pkg")
	assert.Contains(t, string(updated), "Serilog")
}

package application_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/discovery"
	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/application"
	"github.com/cpmkit/cpmkit/internal/domain"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func newExtractService(fs afero.Fs) *application.ExtractService {
	return application.NewExtractService(
		discovery.New(fs, nil),
		filestore.New(fs),
		domain.DefaultConfig(),
		quietLogger(),
	)
}

func TestExtract_MergesConfigAndProjectDeclarations(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/packages.config", `<packages>
  <package id="Newtonsoft.Json" version="12.0.1" />
  <package id="Serilog" version="2.12.0" />
</packages>`)
	writeFile(t, fs, "sln/App/App.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
    <PackageReference Include="Already.Migrated" />
  </ItemGroup>
</Project>`)

	report, err := newExtractService(fs).Extract("sln")

	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesRead)
	assert.Equal(t, []string{"12.0.1", "13.0.3"}, report.Packages["Newtonsoft.Json"])
	assert.NotContains(t, report.Packages, "Already.Migrated",
		"versionless references are already centrally managed")

	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "Newtonsoft.Json", report.Conflicts[0].Name)
	assert.Equal(t, "13.0.3", report.Conflicts[0].Resolution)
	assert.Equal(t, "13.0.3", report.Resolutions["Newtonsoft.Json"])
	assert.Equal(t, "2.12.0", report.Resolutions["Serilog"])

	assert.Equal(t, "JSON", report.Categories["Newtonsoft.Json"])
	assert.Equal(t, "Logging", report.Categories["Serilog"])
}

func TestExtract_SkipsMalformedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/Bad/packages.config", "<packages><package id=")
	writeFile(t, fs, "sln/Good/packages.config", `<packages><package id="xunit" version="2.4.2" /></packages>`)

	report, err := newExtractService(fs).Extract("sln")

	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesRead)
	assert.Equal(t, []string{"2.4.2"}, report.Packages["xunit"])
}

func TestExtract_NoInputFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("empty", 0o755))

	_, err := newExtractService(fs).Extract("empty")

	assert.ErrorIs(t, err, domain.ErrNoProjectFiles)
}

func TestGenerateProps_UsesResolutions(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "sln/App/packages.config", `<packages>
  <package id="Newtonsoft.Json" version="13.0.3" />
  <package id="AWSSDK.S3" version="3.7.0" />
</packages>`)

	svc := newExtractService(fs)
	report, err := svc.Extract("sln")
	require.NoError(t, err)

	props := svc.GenerateProps(report)

	assert.Contains(t, props, "<ManagePackageVersionsCentrally>true</ManagePackageVersionsCentrally>")
	assert.Contains(t, props, `<PackageVersion Include="Newtonsoft.Json" Version="13.0.3" />`)
	assert.Contains(t, props, `<ItemGroup Label="AWS SDK">`)
}

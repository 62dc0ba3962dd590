package application

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/msbuild"
	"github.com/cpmkit/cpmkit/internal/domain"
)

// ValidateService runs the four-stage migration checklist: central version
// file, project file compliance, cross-consistency, and (optionally) an
// external restore-and-build.
type ValidateService struct {
	finder domain.ProjectFinder
	store  domain.FileStore
	runner domain.BuildRunner
	git    domain.GitInfo
	logger *log.Logger
}

func NewValidateService(finder domain.ProjectFinder, store domain.FileStore, runner domain.BuildRunner, git domain.GitInfo, logger *log.Logger) *ValidateService {
	return &ValidateService{finder: finder, store: store, runner: runner, git: git, logger: logger}
}

// Validate scores the migration state of the solution at root. skipBuild
// records the build stage as SKIP instead of invoking the toolchain.
func (s *ValidateService) Validate(ctx context.Context, root string, skipBuild bool) (*domain.ValidationReport, error) {
	report := &domain.ValidationReport{}

	s.logger.Info("validating central version file")
	propsResult, inProps := s.validateProps(root)
	report.Categories = append(report.Categories, propsResult)

	s.logger.Info("validating project files")
	projectsResult, inProjects := s.validateProjects(root)
	report.Categories = append(report.Categories, projectsResult)

	s.logger.Info("validating package consistency")
	report.Categories = append(report.Categories, s.validateConsistency(inProps, inProjects))

	s.logger.Info("validating build", "skip", skipBuild)
	report.Categories = append(report.Categories, s.validateBuild(ctx, root, skipBuild))

	report.ComputeOverall()

	// Best-effort commit stamp; validation works outside a repository too.
	if hash, err := s.git.CommitHash(root); err == nil {
		report.CommitHash = hash
	}
	return report, nil
}

func (s *ValidateService) validateProps(root string) (domain.CategoryResult, map[string]bool) {
	result := domain.CategoryResult{Name: domain.CategoryProps}
	inProps := make(map[string]bool)

	path := filepath.Join(root, domain.PropsFileName)
	if !s.store.Exists(path) {
		result.Status = domain.StatusFail
		result.Details = []string{domain.PropsFileName + " file not found"}
		return result, inProps
	}

	content, err := s.store.Read(path)
	if err == nil {
		var props *msbuild.PropsFile
		props, err = msbuild.ParseProps(content, path)
		if err == nil {
			var duplicates []string
			for _, entry := range props.Entries {
				if entry.Name == "" || entry.Version == "" {
					continue
				}
				if inProps[entry.Name] {
					duplicates = append(duplicates, entry.Name)
					continue
				}
				inProps[entry.Name] = true
			}

			if !props.ManagedCentrally {
				result.Details = append(result.Details,
					domain.CentralManagementProperty+" property not set to true")
			}
			if len(duplicates) > 0 {
				result.Details = append(result.Details,
					"Duplicate PackageVersion entries: "+strings.Join(duplicates, ", "))
			}
			result.Details = append(result.Details,
				fmt.Sprintf("Found %d PackageVersion entries", len(inProps)))

			switch {
			case len(duplicates) > 0:
				result.Status = domain.StatusFail
			case !props.ManagedCentrally:
				result.Status = domain.StatusWarn
			default:
				result.Status = domain.StatusPass
			}
			return result, inProps
		}
	}

	result.Status = domain.StatusFail
	result.Details = []string{fmt.Sprintf("Error parsing %s: %v", domain.PropsFileName, err)}
	return result, inProps
}

func (s *ValidateService) validateProjects(root string) (domain.CategoryResult, map[string]bool) {
	result := domain.CategoryResult{Name: domain.CategoryProjects}
	inProjects := make(map[string]bool)

	projects, err := s.finder.FindProjects(root, "")
	if err != nil {
		result.Status = domain.StatusFail
		result.Details = []string{fmt.Sprintf("Error discovering project files: %v", err)}
		return result, inProjects
	}

	var issues []string
	for _, project := range projects {
		content, err := s.store.Read(project)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: error reading - %v", filepath.Base(project), err))
			continue
		}
		refs, err := msbuild.ScanPackageReferences(content)
		if err != nil {
			issues = append(issues, fmt.Sprintf("%s: error parsing - %v", filepath.Base(project), err))
			continue
		}

		withVersion := 0
		for _, ref := range refs {
			if ref.Version != "" {
				withVersion++
			} else {
				inProjects[ref.Name] = true
			}
		}
		if withVersion > 0 {
			issues = append(issues, fmt.Sprintf(
				"%s: %d PackageReference elements still have Version attributes",
				filepath.Base(project), withVersion))
		}

		if s.store.Exists(filepath.Join(filepath.Dir(project), "packages.config")) {
			issues = append(issues, fmt.Sprintf("%s: packages.config still exists", filepath.Base(project)))
		}
	}

	result.Details = []string{fmt.Sprintf("Validated %d project files", len(projects))}
	if len(issues) > 0 {
		result.Details = append(result.Details, issues...)
		result.Status = domain.StatusFail
	} else {
		result.Details = append(result.Details, "All project files are CPM compliant")
		result.Status = domain.StatusPass
	}
	return result, inProjects
}

func (s *ValidateService) validateConsistency(inProps, inProjects map[string]bool) domain.CategoryResult {
	result := domain.CategoryResult{Name: domain.CategoryConsistency}

	var missing, unused []string
	for name := range inProjects {
		if !inProps[name] {
			missing = append(missing, name)
		}
	}
	for name := range inProps {
		if !inProjects[name] {
			unused = append(unused, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(unused)

	if len(unused) > 0 {
		result.Details = append(result.Details,
			"Packages defined in "+domain.PropsFileName+" but not used: "+strings.Join(unused, ", "))
	}
	result.Details = append(result.Details,
		fmt.Sprintf("Packages in %s: %d", domain.PropsFileName, len(inProps)),
		fmt.Sprintf("Packages referenced in projects: %d", len(inProjects)))

	switch {
	case len(missing) > 0:
		result.Status = domain.StatusFail
		result.Details = append(result.Details,
			"Packages in projects but missing from "+domain.PropsFileName+": "+strings.Join(missing, ", "))
	case len(unused) > 0:
		result.Status = domain.StatusWarn
	default:
		result.Status = domain.StatusPass
		result.Details = append(result.Details, "Package consistency validated successfully")
	}
	return result
}

func (s *ValidateService) validateBuild(ctx context.Context, root string, skipBuild bool) domain.CategoryResult {
	result := domain.CategoryResult{Name: domain.CategoryBuild}
	if skipBuild {
		result.Status = domain.StatusSkip
		result.Details = []string{"Build validation skipped"}
		return result
	}

	buildResult := s.runner.RestoreAndBuild(ctx, root)
	result.Details = buildResult.Details
	if buildResult.Succeeded {
		result.Status = domain.StatusPass
	} else {
		result.Status = domain.StatusFail
	}
	return result
}

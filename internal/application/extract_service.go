package application

import (
	"github.com/charmbracelet/log"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/msbuild"
	"github.com/cpmkit/cpmkit/internal/domain"
)

// ExtractService collects package versions from packages.config and project
// files, resolves version conflicts, and categorizes the result for the
// generated Directory.Packages.props.
type ExtractService struct {
	finder      domain.ProjectFinder
	store       domain.FileStore
	categorizer *domain.Categorizer
	logger      *log.Logger
}

func NewExtractService(finder domain.ProjectFinder, store domain.FileStore, cfg domain.ProjectConfig, logger *log.Logger) *ExtractService {
	return &ExtractService{
		finder:      finder,
		store:       store,
		categorizer: domain.NewCategorizer(cfg.Categories),
		logger:      logger,
	}
}

// Extract scans root for legacy version declarations and inline references.
// Malformed files are logged and skipped; the batch always completes.
// Returns domain.ErrNoProjectFiles when discovery comes up empty.
func (s *ExtractService) Extract(root string) (*domain.ExtractionReport, error) {
	configs, err := s.finder.FindPackagesConfigs(root)
	if err != nil {
		return nil, err
	}
	projects, err := s.finder.FindProjects(root, "")
	if err != nil {
		return nil, err
	}
	if len(configs)+len(projects) == 0 {
		return nil, domain.ErrNoProjectFiles
	}
	s.logger.Info("extracting package versions",
		"packages_config", len(configs), "csproj", len(projects))

	extraction := domain.NewExtraction()
	filesRead := 0

	for _, file := range configs {
		content, err := s.store.Read(file)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "file", file, "err", err)
			continue
		}
		decls, err := msbuild.ParsePackagesConfig(content, file)
		if err != nil {
			s.logger.Warn("skipping malformed file", "file", file, "err", err)
			continue
		}
		for _, decl := range decls {
			extraction.Add(decl)
		}
		filesRead++
	}

	for _, file := range projects {
		content, err := s.store.Read(file)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "file", file, "err", err)
			continue
		}
		refs, err := msbuild.ScanPackageReferences(content)
		if err != nil {
			s.logger.Warn("skipping malformed file", "file", file, "err", err)
			continue
		}
		for _, ref := range refs {
			// A reference without a version is already centrally managed.
			if ref.Version == "" {
				continue
			}
			extraction.Add(domain.PackageDeclaration{
				Name:       ref.Name,
				Version:    ref.Version,
				SourceFile: file,
			})
		}
		filesRead++
	}

	resolutions, conflicts := extraction.Resolve()
	categories := make(map[string]string, len(resolutions))
	for name := range resolutions {
		categories[name] = s.categorizer.Categorize(name)
	}

	return &domain.ExtractionReport{
		Packages:    extraction.Versions,
		Sources:     extraction.Sources,
		Categories:  categories,
		Conflicts:   conflicts,
		Resolutions: resolutions,
		FilesRead:   filesRead,
	}, nil
}

// GenerateProps renders the central version file from resolved versions.
func (s *ExtractService) GenerateProps(report *domain.ExtractionReport) string {
	return domain.GeneratePropsContent(report.Resolutions, s.categorizer)
}

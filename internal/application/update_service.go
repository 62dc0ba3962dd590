package application

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cpmkit/cpmkit/internal/adapters/outbound/filestore"
	"github.com/cpmkit/cpmkit/internal/domain"
)

// UpdateRequest selects and parameterizes one batch rewrite operation.
type UpdateRequest struct {
	// Operation names the rewrite for reports ("strip-versions", ...).
	Operation string
	Root      string
	// Pattern is a doublestar glob; when set it wins over Root.
	Pattern string
	DryRun  bool
	// Apply rewrites a file's content, returning the new content and the
	// number of changes. Zero changes means the file is left untouched.
	Apply func(content string) (string, int)
	// Describe renders a change count as a human-readable summary.
	Describe func(count int) string
}

// UpdateService applies one idempotent rewrite operation across every
// discovered project file. Files transform independently: a parse or write
// failure is recorded and the batch moves on.
type UpdateService struct {
	finder domain.ProjectFinder
	store  domain.FileStore
	logger *log.Logger
}

func NewUpdateService(finder domain.ProjectFinder, store domain.FileStore, logger *log.Logger) *UpdateService {
	return &UpdateService{finder: finder, store: store, logger: logger}
}

// Run executes the request. For every file whose content actually changes,
// a backup is taken before the write; byte-identical output skips both the
// backup and the write. Returns domain.ErrNoProjectFiles when discovery
// finds nothing.
func (s *UpdateService) Run(req UpdateRequest) (*domain.UpdateResult, error) {
	files, err := s.finder.FindProjects(req.Root, req.Pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.ErrNoProjectFiles
	}
	s.logger.Info("running batch update", "operation", req.Operation, "files", len(files), "dry_run", req.DryRun)

	result := &domain.UpdateResult{
		Operation:    req.Operation,
		FilesScanned: len(files),
		DryRun:       req.DryRun,
	}

	for _, file := range files {
		content, err := s.store.Read(file)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "file", file, "err", err)
			result.Errors = append(result.Errors, domain.FileError{Path: file, Error: err.Error()})
			continue
		}

		updated, count := req.Apply(content)
		if updated == content {
			s.logger.Debug("no changes", "file", file)
			result.Skipped++
			continue
		}

		if !req.DryRun {
			backupCreated, err := s.store.WriteWithBackup(file, updated)
			if backupCreated {
				s.logger.Debug("created backup", "file", file+filestore.BackupSuffix)
				result.BackupsCreated = append(result.BackupsCreated, file+filestore.BackupSuffix)
			}
			if err != nil {
				s.logger.Warn("write failed", "file", file, "err", err)
				result.Errors = append(result.Errors, domain.FileError{Path: file, Error: err.Error()})
				continue
			}
		}

		description := fmt.Sprintf("%d change(s)", count)
		if req.Describe != nil {
			description = req.Describe(count)
		}
		s.logger.Info(description, "file", file)
		result.Changes = append(result.Changes, domain.FileChange{
			Path:        file,
			Description: description,
			Count:       count,
		})
	}

	return result, nil
}

package application

import (
	"github.com/charmbracelet/log"

	"github.com/cpmkit/cpmkit/internal/domain"
)

// LogAnalyzerService applies the static error-pattern table to build logs,
// one file or a whole directory of them, and aggregates the findings.
type LogAnalyzerService struct {
	finder domain.ProjectFinder
	store  domain.FileStore
	logger *log.Logger
}

func NewLogAnalyzerService(finder domain.ProjectFinder, store domain.FileStore, logger *log.Logger) *LogAnalyzerService {
	return &LogAnalyzerService{finder: finder, store: store, logger: logger}
}

// Analyze handles a single log file or every *.log / *.txt file directly in
// a directory. Unreadable files are logged and skipped. Returns
// domain.ErrNoProjectFiles when nothing is analyzable.
func (s *LogAnalyzerService) Analyze(path string) ([]*domain.LogAnalysis, *domain.LogSummary, error) {
	files := []string{path}
	if s.store.IsDir(path) {
		found, err := s.finder.FindLogs(path)
		if err != nil {
			return nil, nil, err
		}
		files = found
	}
	if len(files) == 0 {
		return nil, nil, domain.ErrNoProjectFiles
	}

	var analyses []*domain.LogAnalysis
	for _, file := range files {
		content, err := s.store.Read(file)
		if err != nil {
			s.logger.Warn("skipping unreadable log", "file", file, "err", err)
			continue
		}
		s.logger.Debug("analyzing log", "file", file)
		analyses = append(analyses, domain.MatchLog(file, content))
	}
	if len(analyses) == 0 {
		return nil, nil, domain.ErrNoProjectFiles
	}

	return analyses, domain.AggregateLogs(analyses), nil
}

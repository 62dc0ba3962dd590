package domain

import "context"

// ProjectFinder enumerates input files for a run. Results are stable-sorted
// so repeated runs over an unchanged tree produce identical reports.
type ProjectFinder interface {
	// FindProjects returns .csproj files under root, or files matching the
	// doublestar pattern when pattern is non-empty (pattern wins over root).
	FindProjects(root, pattern string) ([]string, error)
	// FindPackagesConfigs returns packages.config files under root.
	FindPackagesConfigs(root string) ([]string, error)
	// FindLogs returns *.log and *.txt files directly inside dir.
	FindLogs(dir string) ([]string, error)
}

// FileStore reads and rewrites project files with the backup-before-write
// convention: the first modification of a file in a run creates a sibling
// .backup copy, and an existing backup is never overwritten.
type FileStore interface {
	Read(path string) (string, error)
	// WriteWithBackup persists content, creating the backup first when none
	// exists. It reports whether a backup was created by this call.
	WriteWithBackup(path, content string) (backupCreated bool, err error)
	Exists(path string) bool
	IsDir(path string) bool
}

// ConfigLoader loads tool configuration for a solution directory.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// BuildResult carries the outcome of the external restore/build toolchain.
// Only the exit status and captured stderr are consumed by validation.
type BuildResult struct {
	Succeeded bool
	Details   []string
}

// BuildRunner invokes the external restore-then-build toolchain with a hard
// timeout per step. Expiry is reported as a failed BuildResult, not an error.
type BuildRunner interface {
	RestoreAndBuild(ctx context.Context, dir string) BuildResult
}

// GitInfo exposes repository metadata for report stamping.
type GitInfo interface {
	CommitHash(dir string) (string, error)
}

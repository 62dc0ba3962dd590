// Package discovery enumerates the project files, legacy config files and
// build logs a run operates on. Discovery is read-only and deterministic:
// results are stable-sorted so an unchanged tree yields identical reports.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Directories that never contain hand-edited project files.
var skipDirs = map[string]bool{
	".git":         true,
	".vs":          true,
	"bin":          true,
	"obj":          true,
	"packages":     true,
	"node_modules": true,
}

// Finder implements domain.ProjectFinder over an afero filesystem.
type Finder struct {
	fs        afero.Fs
	extraSkip map[string]bool
}

func New(fs afero.Fs, excludeDirs []string) *Finder {
	extra := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		extra[strings.TrimSuffix(d, "/")] = true
	}
	return &Finder{fs: fs, extraSkip: extra}
}

// FindProjects returns every .csproj under root, or the files matching
// pattern when one is given. The pattern takes precedence over root.
func (f *Finder) FindProjects(root, pattern string) ([]string, error) {
	if pattern != "" {
		return f.glob(root, pattern)
	}
	return f.walk(root, func(name string) bool {
		return strings.HasSuffix(name, ".csproj")
	})
}

// FindPackagesConfigs returns every packages.config under root.
func (f *Finder) FindPackagesConfigs(root string) ([]string, error) {
	return f.walk(root, func(name string) bool {
		return name == "packages.config"
	})
}

// FindLogs returns *.log and *.txt files directly inside dir, matching the
// flat layout build agents drop their logs in.
func (f *Finder) FindLogs(dir string) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, err
	}
	var logs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".log") || strings.HasSuffix(entry.Name(), ".txt") {
			logs = append(logs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(logs)
	return logs, nil
}

func (f *Finder) walk(root string, match func(name string) bool) ([]string, error) {
	var found []string
	err := afero.Walk(f.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDirs[info.Name()] || f.extraSkip[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if match(info.Name()) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

func (f *Finder) glob(root, pattern string) ([]string, error) {
	if root == "" {
		root = "."
	}
	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(f.fs, root)), filepath.ToSlash(pattern))
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

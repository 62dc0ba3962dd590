package domain

import "errors"

// ErrNoProjectFiles is returned when discovery produces zero input files.
// It is a setup-time failure: nothing has been read or written yet.
var ErrNoProjectFiles = errors.New("no project files found")

// PackageDeclaration is a single (name, version) pair extracted from a
// packages.config entry or an inline PackageReference. Immutable once read.
type PackageDeclaration struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	SourceFile string `json:"source_file"`
}

// Extraction accumulates package versions across all scanned files.
// It is threaded explicitly through the per-file collection loop rather
// than living as shared state, so callers may fold results in any order.
type Extraction struct {
	// Versions maps package name to the distinct versions observed,
	// kept sorted for deterministic reports.
	Versions map[string][]string `json:"packages"`
	// Sources maps package name to every file that declared a version
	// for it. A file appears once per declaration it contains.
	Sources map[string][]string `json:"sources"`
}

func NewExtraction() *Extraction {
	return &Extraction{
		Versions: make(map[string][]string),
		Sources:  make(map[string][]string),
	}
}

// Add records one declaration. Duplicate versions for the same package
// collapse; source files are always appended for traceability.
func (e *Extraction) Add(decl PackageDeclaration) {
	if decl.Name == "" || decl.Version == "" {
		return
	}
	versions := e.Versions[decl.Name]
	if !containsString(versions, decl.Version) {
		versions = append(versions, decl.Version)
		SortVersions(versions)
	}
	e.Versions[decl.Name] = versions
	e.Sources[decl.Name] = append(e.Sources[decl.Name], decl.SourceFile)
}

// PackageCount returns the number of unique package names observed.
func (e *Extraction) PackageCount() int { return len(e.Versions) }

// ConflictRecord describes a package observed with more than one version,
// together with the chosen resolution.
type ConflictRecord struct {
	Name       string   `json:"name"`
	Versions   []string `json:"versions"`
	Resolution string   `json:"resolution"`
}

// Resolve picks exactly one version per package: the maximum under
// segment-wise comparison for conflicted packages, the single observed
// version otherwise. It never fails; a name only exists in the set if at
// least one version was observed.
func (e *Extraction) Resolve() (resolutions map[string]string, conflicts []ConflictRecord) {
	resolutions = make(map[string]string, len(e.Versions))
	for name, versions := range e.Versions {
		resolved := MaxVersion(versions)
		resolutions[name] = resolved
		if len(versions) > 1 {
			conflicts = append(conflicts, ConflictRecord{
				Name:       name,
				Versions:   append([]string(nil), versions...),
				Resolution: resolved,
			})
		}
	}
	sortConflicts(conflicts)
	return resolutions, conflicts
}

// ExtractionReport is the full result of an extract run, including the data
// exported by --export-data.
type ExtractionReport struct {
	Packages    map[string][]string `json:"packages"`
	Sources     map[string][]string `json:"sources"`
	Categories  map[string]string   `json:"categories"`
	Conflicts   []ConflictRecord    `json:"conflicts"`
	Resolutions map[string]string   `json:"resolutions"`
	FilesRead   int                 `json:"files_read"`
}

// FileChange records one applied (or planned, under dry-run) modification.
type FileChange struct {
	Path        string `json:"path"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// FileError records a per-file failure that did not abort the batch.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// UpdateResult summarizes a batch update run.
type UpdateResult struct {
	Operation      string       `json:"operation"`
	FilesScanned   int          `json:"files_scanned"`
	Changes        []FileChange `json:"changes"`
	Skipped        int          `json:"skipped"`
	Errors         []FileError  `json:"errors,omitempty"`
	BackupsCreated []string     `json:"backups_created,omitempty"`
	DryRun         bool         `json:"dry_run"`
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

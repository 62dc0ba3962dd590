// Package filestore persists project file rewrites with the
// backup-before-write convention: the first modification of a file in a run
// creates a sibling .backup copy, and an existing backup is never touched.
package filestore

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// BackupSuffix is appended to the original path for the backup sibling.
const BackupSuffix = ".backup"

// Store implements domain.FileStore over an afero filesystem.
type Store struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

func (s *Store) Read(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

func (s *Store) IsDir(path string) bool {
	ok, err := afero.IsDir(s.fs, path)
	return err == nil && ok
}

// WriteWithBackup copies the original to path.backup (unless a backup is
// already present from an earlier run) and then replaces the file content.
// The write itself goes through a temp file and rename so an interrupted
// run cannot leave a half-written project file.
func (s *Store) WriteWithBackup(path, content string) (bool, error) {
	backupCreated := false
	backupPath := path + BackupSuffix
	if !s.Exists(backupPath) {
		original, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return false, fmt.Errorf("reading original for backup: %w", err)
		}
		if err := s.writeAtomic(backupPath, original); err != nil {
			return false, fmt.Errorf("creating backup: %w", err)
		}
		backupCreated = true
	}

	if err := s.writeAtomic(path, []byte(content)); err != nil {
		return backupCreated, err
	}
	return backupCreated, nil
}

// writeAtomic writes via a temp file in the target directory and renames it
// into place, so the destination is either the old or the new content.
func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(s.fs, dir, ".cpmkit-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer s.fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}
	return nil
}

// Package backup keeps two-tier snapshots of target config files: an
// original taken on first backup and never overwritten, and a current
// overwritten before every enable. Snapshots persist across sessions so
// disable and reset always have something to restore to.
package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/youjizi/proxy-manager/internal/util"
)

// Store writes and reads snapshot files under Dir.
type Store struct {
	Dir string
}

// NewStore creates a Store rooted at dir. The directory is created lazily
// on the first backup.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// DefaultDir returns the platform backup directory,
// <user-config-dir>/proxy-manager/backups.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve backup directory: %w", err)
	}
	return filepath.Join(base, "proxy-manager", "backups"), nil
}

// OriginalPath returns the write-once snapshot path for a target name.
func (s *Store) OriginalPath(name string) string {
	return filepath.Join(s.Dir, name+".original.backup")
}

// CurrentPath returns the per-enable snapshot path for a target name.
func (s *Store) CurrentPath(name string) string {
	return filepath.Join(s.Dir, name+".current.backup")
}

// HasOriginal reports whether an original snapshot exists for name.
func (s *Store) HasOriginal(name string) bool {
	return util.FileExists(s.OriginalPath(name))
}

// HasCurrent reports whether a current snapshot exists for name.
func (s *Store) HasCurrent(name string) bool {
	return util.FileExists(s.CurrentPath(name))
}

// Backup snapshots the file at path under the given target name. A missing
// source file is a no-op success. The original snapshot is written only if
// absent; the current snapshot is overwritten every time.
func (s *Store) Backup(name, path string) error {
	if !util.FileExists(path) {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	original := s.OriginalPath(name)
	if !util.FileExists(original) {
		if err := util.WriteFileAtomic(original, content, 0644); err != nil {
			return fmt.Errorf("write original backup: %w", err)
		}
	}

	if err := util.WriteFileAtomic(s.CurrentPath(name), content, 0644); err != nil {
		return fmt.Errorf("write current backup: %w", err)
	}
	return nil
}

// Restore overwrites path with the selected snapshot for name. It returns
// false with a nil error when no such snapshot exists; snapshots are never
// deleted on restore.
func (s *Store) Restore(name, path string, toOriginal bool) (bool, error) {
	backupPath := s.CurrentPath(name)
	if toOriginal {
		backupPath = s.OriginalPath(name)
	}
	if !util.FileExists(backupPath) {
		return false, nil
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := util.WriteFileAtomic(path, content, 0644); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

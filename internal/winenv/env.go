// Package winenv manages the HTTP_PROXY/HTTPS_PROXY/NO_PROXY user
// environment variables behind a small capability interface, so the
// registry-backed implementation stays isolated to Windows builds and
// tests run against an in-memory fake.
package winenv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/util"
)

// proxyVars are the environment variables owned by this package.
var proxyVars = []string{"HTTP_PROXY", "HTTPS_PROXY", "NO_PROXY"}

// Environment is the platform capability for user environment variables.
type Environment interface {
	// Read returns a variable's value and whether it is set.
	Read(name string) (string, bool)
	// Write sets a variable.
	Write(name, value string) error
	// Delete unsets a variable. Deleting an absent variable is not an error.
	Delete(name string) error
	// NotifyChanged broadcasts that the environment changed so newly
	// started processes pick it up. Fire-and-forget.
	NotifyChanged()
}

// Memory is an in-memory Environment for tests and unsupported platforms.
type Memory struct {
	Vars          map[string]string
	Notifications int
}

func NewMemory() *Memory {
	return &Memory{Vars: make(map[string]string)}
}

func (m *Memory) Read(name string) (string, bool) {
	v, ok := m.Vars[name]
	return v, ok
}

func (m *Memory) Write(name, value string) error {
	m.Vars[name] = value
	return nil
}

func (m *Memory) Delete(name string) error {
	delete(m.Vars, name)
	return nil
}

func (m *Memory) NotifyChanged() { m.Notifications++ }

// Applier drives proxy state on an Environment with the same two-tier
// backup scheme used for file targets, persisted as JSON blobs in
// BackupDir rather than through the file backup store.
type Applier struct {
	Env       Environment
	BackupDir string
}

// NewApplier creates an Applier writing its backups under backupDir.
func NewApplier(env Environment, backupDir string) *Applier {
	return &Applier{Env: env, BackupDir: backupDir}
}

func (a *Applier) originalPath() string {
	return filepath.Join(a.BackupDir, "windows_env.original.backup.json")
}

func (a *Applier) currentPath() string {
	return filepath.Join(a.BackupDir, "windows_env.current.backup.json")
}

// HasOriginal reports whether an original environment backup exists.
func (a *Applier) HasOriginal() bool { return util.FileExists(a.originalPath()) }

// HasCurrent reports whether a current environment backup exists.
func (a *Applier) HasCurrent() bool { return util.FileExists(a.currentPath()) }

// Enable backs up the present variable values and sets all three to the
// given settings, then broadcasts the change.
func (a *Applier) Enable(settings domain.ProxySettings) (string, error) {
	snapshot := make(map[string]string)
	for _, name := range proxyVars {
		if value, ok := a.Env.Read(name); ok {
			snapshot[name] = value
		}
	}

	if err := os.MkdirAll(a.BackupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	blob, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode environment backup: %w", err)
	}
	if !util.FileExists(a.originalPath()) {
		if err := util.WriteFileAtomic(a.originalPath(), blob, 0644); err != nil {
			return "", fmt.Errorf("write original backup: %w", err)
		}
	}
	if err := util.WriteFileAtomic(a.currentPath(), blob, 0644); err != nil {
		return "", fmt.Errorf("write current backup: %w", err)
	}

	values := map[string]string{
		"HTTP_PROXY":  settings.HTTPProxy,
		"HTTPS_PROXY": settings.HTTPSProxy,
		"NO_PROXY":    settings.NoProxy,
	}
	for _, name := range proxyVars {
		if err := a.Env.Write(name, values[name]); err != nil {
			return "", fmt.Errorf("set %s: %w", name, err)
		}
	}

	a.Env.NotifyChanged()
	return "environment variables set (takes effect in new terminals)", nil
}

// Disable restores the variables captured by the last Enable.
func (a *Applier) Disable() (string, error) {
	if err := a.restoreFrom(a.currentPath()); err != nil {
		return "", err
	}
	return "restored previous environment variables (takes effect in new terminals)", nil
}

// Reset restores the variables captured by the very first Enable. With no
// original backup there is nothing to undo, which is a success.
func (a *Applier) Reset() (string, error) {
	if !util.FileExists(a.originalPath()) {
		return "no original backup, nothing to reset", nil
	}
	if err := a.restoreFrom(a.originalPath()); err != nil {
		return "", err
	}
	return "reset environment variables to original state (takes effect in new terminals)", nil
}

// restoreFrom deletes the proxy variables and re-sets whatever the backup
// blob contains, then broadcasts. A missing or unparsable blob restores
// nothing beyond the deletes.
func (a *Applier) restoreFrom(backupPath string) error {
	for _, name := range proxyVars {
		if err := a.Env.Delete(name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}

	if data, err := os.ReadFile(backupPath); err == nil {
		saved := make(map[string]string)
		if err := json.Unmarshal(data, &saved); err == nil {
			for name, value := range saved {
				if err := a.Env.Write(name, value); err != nil {
					return fmt.Errorf("restore %s: %w", name, err)
				}
			}
		}
	}

	a.Env.NotifyChanged()
	return nil
}

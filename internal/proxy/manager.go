// Package proxy sequences backup, edit, and restore across targets. Every
// batch operation processes its targets independently and returns one
// report line per target, ✓ for success and ✗ for failure, in input order.
package proxy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/youjizi/proxy-manager/internal/backup"
	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/editor"
	"github.com/youjizi/proxy-manager/internal/profile"
	"github.com/youjizi/proxy-manager/internal/target"
	"github.com/youjizi/proxy-manager/internal/util"
)

// Manager owns the per-target state machine. It holds no state of its own
// between calls; the backup store and user config are the only durable
// pieces.
type Manager struct {
	Registry *target.Registry
	Backups  *backup.Store
	Profiles *profile.Store
	Env      EnvApplier // nil when the platform has no environment target
}

// EnvApplier is the OS-environment counterpart of the file path: it keeps
// its own backups and applies settings to the user environment.
type EnvApplier interface {
	Enable(settings domain.ProxySettings) (string, error)
	Disable() (string, error)
	Reset() (string, error)
}

// NewManager wires a Manager. env may be nil on platforms without an
// environment target.
func NewManager(reg *target.Registry, backups *backup.Store, profiles *profile.Store, env EnvApplier) *Manager {
	return &Manager{Registry: reg, Backups: backups, Profiles: profiles, Env: env}
}

// Targets lists all managed targets, built-ins plus custom software.
func (m *Manager) Targets() []domain.Target {
	return m.Registry.List(m.Profiles.Load().CustomSoftware)
}

func ok(name, msg string) string { return fmt.Sprintf("✓ %s: %s", name, msg) }

func bad(name string, err error) string { return fmt.Sprintf("✗ %s: %s", name, err) }

// Enable turns the proxy on for every named target. One target's failure
// never aborts the rest.
func (m *Manager) Enable(names []string, settings domain.ProxySettings) []string {
	results := make([]string, 0, len(names))
	for _, name := range names {
		msg, err := m.enableOne(name, settings)
		if err != nil {
			results = append(results, bad(name, err))
			continue
		}
		results = append(results, ok(name, msg))
	}
	return results
}

// Disable reverts every named target to its last pre-enable state,
// falling back to stripping proxy directives when no backup exists.
func (m *Manager) Disable(names []string) []string {
	results := make([]string, 0, len(names))
	for _, name := range names {
		msg, err := m.disableOne(name)
		if err != nil {
			results = append(results, bad(name, err))
			continue
		}
		results = append(results, ok(name, msg))
	}
	return results
}

// Reset restores every named target to its first-seen state.
func (m *Manager) Reset(names []string) []string {
	results := make([]string, 0, len(names))
	for _, name := range names {
		msg, err := m.resetOne(name)
		if err != nil {
			results = append(results, bad(name, err))
			continue
		}
		results = append(results, ok(name, msg))
	}
	return results
}

// EnableWithProfiles enables each mapped target using its profile's
// endpoint. An unresolvable profile yields a failure entry without
// touching that target.
func (m *Manager) EnableWithProfiles(mappings []domain.SoftwareProxyMapping) []string {
	cfg := m.Profiles.Load()

	results := make([]string, 0, len(mappings))
	for _, mapping := range mappings {
		p, found := cfg.Profile(mapping.ProfileName)
		if !found {
			results = append(results, bad(mapping.SoftwareName,
				fmt.Errorf("profile %q not found", mapping.ProfileName)))
			continue
		}

		settings := domain.SettingsForHostPort(p.Host, p.Port)
		msg, err := m.enableOne(mapping.SoftwareName, settings)
		if err != nil {
			results = append(results, bad(mapping.SoftwareName, err))
			continue
		}
		results = append(results, ok(mapping.SoftwareName, msg))
	}
	return results
}

func (m *Manager) lookup(name string) (domain.Target, error) {
	tgt, err := m.Registry.Get(name, m.Profiles.Load().CustomSoftware)
	if err != nil {
		return domain.Target{}, err
	}
	if tgt.Kind != domain.KindOSEnv && tgt.ConfigPath == "" {
		return domain.Target{}, errors.New("cannot resolve config path")
	}
	return tgt, nil
}

func (m *Manager) envApplier() (EnvApplier, error) {
	if m.Env == nil {
		return nil, errors.New("environment variables are only supported on Windows")
	}
	return m.Env, nil
}

func (m *Manager) enableOne(name string, settings domain.ProxySettings) (string, error) {
	tgt, err := m.lookup(name)
	if err != nil {
		return "", err
	}

	if tgt.Kind == domain.KindOSEnv {
		env, err := m.envApplier()
		if err != nil {
			return "", err
		}
		return env.Enable(settings)
	}

	ed, err := editor.ForKind(tgt.Kind)
	if err != nil {
		return "", err
	}

	if err := m.Backups.Backup(tgt.Name, tgt.ConfigPath); err != nil {
		return "", err
	}

	content := ""
	if data, err := os.ReadFile(tgt.ConfigPath); err == nil {
		content = string(data)
	}

	updated, err := ed.Apply(content, settings)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(tgt.ConfigPath), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := util.WriteFileAtomic(tgt.ConfigPath, []byte(updated), 0644); err != nil {
		return "", err
	}

	if tgt.Kind == domain.KindGeneratedXML {
		return "proxy enabled (restart the IDE to take effect)", nil
	}
	return "proxy enabled", nil
}

func (m *Manager) disableOne(name string) (string, error) {
	tgt, err := m.lookup(name)
	if err != nil {
		return "", err
	}

	if tgt.Kind == domain.KindOSEnv {
		env, err := m.envApplier()
		if err != nil {
			return "", err
		}
		return env.Disable()
	}

	restored, err := m.Backups.Restore(tgt.Name, tgt.ConfigPath, false)
	if err != nil {
		return "", err
	}
	if restored {
		return "restored previous config", nil
	}

	// Never backed up, e.g. proxied through some other means before this
	// tool ever ran. Stripping is safer than leaving stale directives.
	return m.strip(tgt)
}

func (m *Manager) resetOne(name string) (string, error) {
	tgt, err := m.lookup(name)
	if err != nil {
		return "", err
	}

	if tgt.Kind == domain.KindOSEnv {
		env, err := m.envApplier()
		if err != nil {
			return "", err
		}
		return env.Reset()
	}

	restored, err := m.Backups.Restore(tgt.Name, tgt.ConfigPath, true)
	if err != nil {
		return "", err
	}
	if restored {
		return "reset to original config", nil
	}
	return "no original backup, nothing to reset", nil
}

// strip removes proxy directives in place. The generated-XML kind strips
// by deleting the file, since it carries nothing but proxy state.
func (m *Manager) strip(tgt domain.Target) (string, error) {
	if tgt.Kind == domain.KindGeneratedXML {
		if util.FileExists(tgt.ConfigPath) {
			if err := os.Remove(tgt.ConfigPath); err != nil {
				return "", err
			}
		}
		return "proxy disabled (restart the IDE to take effect)", nil
	}

	if !util.FileExists(tgt.ConfigPath) {
		return "config file not found, nothing to do", nil
	}

	ed, err := editor.ForKind(tgt.Kind)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(tgt.ConfigPath)
	if err != nil {
		return "", err
	}
	stripped := ed.Strip(string(data))
	if err := util.WriteFileAtomic(tgt.ConfigPath, []byte(stripped), 0644); err != nil {
		return "", err
	}
	return "proxy disabled", nil
}

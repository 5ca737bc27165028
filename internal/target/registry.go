// Package target enumerates the software whose proxy configuration this
// tool can manage and resolves each entry to a config file path.
package target

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/util"
)

// EnvTargetName is the registry-backed OS environment target. It exists
// only on Windows and carries a registry key instead of a file path.
const EnvTargetName = "Windows Terminal"

const envRegistryKey = `HKEY_CURRENT_USER\Environment`

// Registry produces the target list for the current platform. The list is
// recomputed on every call; nothing about it is persisted.
type Registry struct {
	resolver PathResolver
	goos     string
}

// NewRegistry creates a Registry using the given resolver and GOOS value.
func NewRegistry(resolver PathResolver, goos string) *Registry {
	return &Registry{resolver: resolver, goos: goos}
}

// NewDefaultRegistry wires a Registry for the running platform.
func NewDefaultRegistry(goos string) *Registry {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(home, ".config")
	}
	return NewRegistry(ResolverFor(goos, home, configDir), goos)
}

// builtins returns the built-in target set in presentation order.
func (r *Registry) builtins() []domain.Target {
	targets := []domain.Target{
		{Name: "Git", Kind: domain.KindSectionedKV, Enabled: true},
		{Name: "npm", Kind: domain.KindFlatKV, Enabled: true},
		{Name: "Cursor", Kind: domain.KindJSON, Enabled: true},
		{Name: "VSCode", Kind: domain.KindJSON, Enabled: true},
		{Name: "IDEA", Kind: domain.KindGeneratedXML, Enabled: true},
	}
	if r.goos == "windows" {
		targets = append(targets, domain.Target{
			Name:       EnvTargetName,
			Kind:       domain.KindOSEnv,
			Enabled:    true,
			Installed:  true, // the user environment always exists
			ConfigPath: envRegistryKey,
		})
	}
	return targets
}

// List enumerates built-in targets plus the given custom software,
// resolving paths and deriving install state. A target counts as
// installed when its config file or the file's parent directory exists,
// so a plausible not-yet-created config still qualifies.
func (r *Registry) List(custom []domain.CustomSoftware) []domain.Target {
	targets := r.builtins()

	for i := range targets {
		if targets[i].Kind == domain.KindOSEnv {
			continue
		}
		path, ok := r.resolver.ConfigPath(targets[i].Name)
		if !ok {
			continue
		}
		targets[i].ConfigPath = path
		targets[i].Installed = util.FileExists(path) || util.DirExists(filepath.Dir(path))
	}

	for _, c := range custom {
		targets = append(targets, domain.Target{
			Name:       c.Name,
			Kind:       c.Kind,
			Enabled:    true,
			Installed:  true, // user-declared targets are taken at face value
			ConfigPath: c.ConfigPath,
			IsCustom:   true,
		})
	}

	return targets
}

// Get returns the named target from the current list.
func (r *Registry) Get(name string, custom []domain.CustomSoftware) (domain.Target, error) {
	for _, t := range r.List(custom) {
		if t.Name == name {
			return t, nil
		}
	}
	return domain.Target{}, fmt.Errorf("unknown software %q", name)
}

package target

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PathResolver maps a built-in software name to its config file path on
// one platform family. The second result is false when the software has
// no resolvable path here.
type PathResolver interface {
	ConfigPath(softwareName string) (string, bool)
}

// ResolverFor picks the resolver for the given GOOS. Home and user-config
// directories are injected so tests can point them at a sandbox.
func ResolverFor(goos, homeDir, configDir string) PathResolver {
	switch goos {
	case "darwin":
		return &DarwinResolver{HomeDir: homeDir}
	case "windows":
		return &WindowsResolver{HomeDir: homeDir, AppDataDir: configDir}
	default:
		return &UnixResolver{HomeDir: homeDir, ConfigDir: configDir}
	}
}

// DarwinResolver resolves config paths under the macOS conventions.
type DarwinResolver struct {
	HomeDir string
}

func (r *DarwinResolver) ConfigPath(name string) (string, bool) {
	appSupport := filepath.Join(r.HomeDir, "Library", "Application Support")
	switch name {
	case "Git":
		return filepath.Join(r.HomeDir, ".gitconfig"), true
	case "npm":
		return filepath.Join(r.HomeDir, ".npmrc"), true
	case "Cursor":
		return filepath.Join(appSupport, "Cursor", "User", "settings.json"), true
	case "VSCode":
		return filepath.Join(appSupport, "Code", "User", "settings.json"), true
	case "IDEA":
		return jetBrainsProxySettings(filepath.Join(appSupport, "JetBrains"))
	default:
		return "", false
	}
}

// WindowsResolver resolves config paths under %USERPROFILE% and %APPDATA%.
type WindowsResolver struct {
	HomeDir    string
	AppDataDir string
}

func (r *WindowsResolver) ConfigPath(name string) (string, bool) {
	switch name {
	case "Git":
		return filepath.Join(r.HomeDir, ".gitconfig"), true
	case "npm":
		return filepath.Join(r.HomeDir, ".npmrc"), true
	case "Cursor":
		return filepath.Join(r.AppDataDir, "Cursor", "User", "settings.json"), true
	case "VSCode":
		return filepath.Join(r.AppDataDir, "Code", "User", "settings.json"), true
	case "IDEA":
		return jetBrainsProxySettings(filepath.Join(r.AppDataDir, "JetBrains"))
	default:
		return "", false
	}
}

// UnixResolver covers Linux and the other XDG-style platforms. IntelliJ
// is not resolved here.
type UnixResolver struct {
	HomeDir   string
	ConfigDir string
}

func (r *UnixResolver) ConfigPath(name string) (string, bool) {
	switch name {
	case "Git":
		return filepath.Join(r.HomeDir, ".gitconfig"), true
	case "npm":
		return filepath.Join(r.HomeDir, ".npmrc"), true
	case "Cursor":
		return filepath.Join(r.ConfigDir, "Cursor", "User", "settings.json"), true
	case "VSCode":
		return filepath.Join(r.ConfigDir, "Code", "User", "settings.json"), true
	default:
		return "", false
	}
}

// jetBrainsProxySettings scans the vendor directory for version-suffixed
// IntelliJIdea install folders and picks the lexicographically greatest
// name as "latest". Note this misorders names with differing digit counts
// (IntelliJIdea9 sorts after IntelliJIdea2024.1); kept for compatibility
// with existing installs.
func jetBrainsProxySettings(vendorDir string) (string, bool) {
	entries, err := os.ReadDir(vendorDir)
	if err != nil {
		return "", false
	}

	var ideaDirs []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "IntelliJIdea") {
			ideaDirs = append(ideaDirs, e.Name())
		}
	}
	if len(ideaDirs) == 0 {
		return "", false
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ideaDirs)))

	return filepath.Join(vendorDir, ideaDirs[0], "options", "proxy.settings.xml"), true
}

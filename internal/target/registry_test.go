package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youjizi/proxy-manager/internal/domain"
)

func targetByName(t *testing.T, targets []domain.Target, name string) domain.Target {
	t.Helper()
	for _, tt := range targets {
		if tt.Name == name {
			return tt
		}
	}
	t.Fatalf("target %q not in list", name)
	return domain.Target{}
}

func TestRegistry_List_Builtins(t *testing.T) {
	home := t.TempDir()
	reg := NewRegistry(&UnixResolver{HomeDir: home, ConfigDir: filepath.Join(home, ".config")}, "linux")

	targets := reg.List(nil)

	names := make([]string, len(targets))
	for i, tgt := range targets {
		names[i] = tgt.Name
	}
	assert.Equal(t, []string{"Git", "npm", "Cursor", "VSCode", "IDEA"}, names)

	git := targetByName(t, targets, "Git")
	assert.Equal(t, domain.KindSectionedKV, git.Kind)
	assert.Equal(t, filepath.Join(home, ".gitconfig"), git.ConfigPath)
	assert.True(t, git.Installed, "home dir exists, so a dotfile target counts as installed")

	idea := targetByName(t, targets, "IDEA")
	assert.Empty(t, idea.ConfigPath, "IDEA has no resolvable path on linux")
	assert.False(t, idea.Installed)
}

func TestRegistry_List_EnvTargetOnlyOnWindows(t *testing.T) {
	home := t.TempDir()

	linux := NewRegistry(&UnixResolver{HomeDir: home, ConfigDir: home}, "linux")
	for _, tgt := range linux.List(nil) {
		assert.NotEqual(t, EnvTargetName, tgt.Name)
	}

	win := NewRegistry(&WindowsResolver{HomeDir: home, AppDataDir: home}, "windows")
	env := targetByName(t, win.List(nil), EnvTargetName)
	assert.Equal(t, domain.KindOSEnv, env.Kind)
	assert.True(t, env.Installed)
	assert.Equal(t, `HKEY_CURRENT_USER\Environment`, env.ConfigPath)
}

func TestRegistry_List_InstalledDerivation(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, "config")
	reg := NewRegistry(&UnixResolver{HomeDir: home, ConfigDir: configDir}, "linux")

	// No Code/User dir: VSCode not installed.
	vscode := targetByName(t, reg.List(nil), "VSCode")
	assert.False(t, vscode.Installed)

	// Parent dir alone is enough, even without settings.json.
	require.NoError(t, os.MkdirAll(filepath.Join(configDir, "Code", "User"), 0755))
	vscode = targetByName(t, reg.List(nil), "VSCode")
	assert.True(t, vscode.Installed)
}

func TestRegistry_List_MergesCustomSoftware(t *testing.T) {
	home := t.TempDir()
	reg := NewRegistry(&UnixResolver{HomeDir: home, ConfigDir: home}, "linux")

	custom := []domain.CustomSoftware{
		{Name: "mytool", Kind: domain.KindFlatKV, ConfigPath: "/etc/mytool.conf"},
	}
	got := targetByName(t, reg.List(custom), "mytool")

	assert.True(t, got.IsCustom)
	assert.True(t, got.Installed)
	assert.Equal(t, domain.KindFlatKV, got.Kind)
	assert.Equal(t, "/etc/mytool.conf", got.ConfigPath)
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry(&UnixResolver{HomeDir: t.TempDir(), ConfigDir: t.TempDir()}, "linux")

	npm, err := reg.Get("npm", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.KindFlatKV, npm.Kind)

	_, err = reg.Get("nope", nil)
	assert.Error(t, err)
}

func TestDarwinResolver(t *testing.T) {
	home := t.TempDir()
	r := &DarwinResolver{HomeDir: home}

	tests := []struct {
		software string
		want     string
	}{
		{software: "Git", want: filepath.Join(home, ".gitconfig")},
		{software: "npm", want: filepath.Join(home, ".npmrc")},
		{software: "VSCode", want: filepath.Join(home, "Library", "Application Support", "Code", "User", "settings.json")},
		{software: "Cursor", want: filepath.Join(home, "Library", "Application Support", "Cursor", "User", "settings.json")},
	}
	for _, tt := range tests {
		t.Run(tt.software, func(t *testing.T) {
			got, ok := r.ConfigPath(tt.software)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := r.ConfigPath("unknown")
	assert.False(t, ok)
}

func TestJetBrainsProxySettings_PicksGreatestName(t *testing.T) {
	home := t.TempDir()
	vendor := filepath.Join(home, "Library", "Application Support", "JetBrains")
	require.NoError(t, os.MkdirAll(filepath.Join(vendor, "IntelliJIdea2023.2"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(vendor, "IntelliJIdea2024.1"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(vendor, "WebStorm2024.1"), 0755))

	r := &DarwinResolver{HomeDir: home}
	got, ok := r.ConfigPath("IDEA")

	require.True(t, ok)
	assert.Equal(t, filepath.Join(vendor, "IntelliJIdea2024.1", "options", "proxy.settings.xml"), got)
}

func TestJetBrainsProxySettings_NoInstall(t *testing.T) {
	r := &DarwinResolver{HomeDir: t.TempDir()}
	_, ok := r.ConfigPath("IDEA")
	assert.False(t, ok)
}

func TestWindowsResolver(t *testing.T) {
	home := t.TempDir()
	appData := filepath.Join(home, "AppData", "Roaming")
	require.NoError(t, os.MkdirAll(filepath.Join(appData, "JetBrains", "IntelliJIdea2024.3"), 0755))

	r := &WindowsResolver{HomeDir: home, AppDataDir: appData}

	got, ok := r.ConfigPath("VSCode")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(appData, "Code", "User", "settings.json"), got)

	got, ok = r.ConfigPath("IDEA")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(appData, "JetBrains", "IntelliJIdea2024.3", "options", "proxy.settings.xml"), got)
}

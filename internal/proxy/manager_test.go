package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youjizi/proxy-manager/internal/backup"
	"github.com/youjizi/proxy-manager/internal/domain"
	"github.com/youjizi/proxy-manager/internal/profile"
	"github.com/youjizi/proxy-manager/internal/target"
)

// fakeResolver maps target names to fixed paths inside the test dir.
type fakeResolver map[string]string

func (f fakeResolver) ConfigPath(name string) (string, bool) {
	path, ok := f[name]
	return path, ok
}

// fakeEnv records calls so routing to the environment applier is testable
// without a Windows registry.
type fakeEnv struct {
	enabled  []domain.ProxySettings
	disables int
	resets   int
}

func (f *fakeEnv) Enable(settings domain.ProxySettings) (string, error) {
	f.enabled = append(f.enabled, settings)
	return "environment variables set", nil
}

func (f *fakeEnv) Disable() (string, error) {
	f.disables++
	return "restored previous environment variables", nil
}

func (f *fakeEnv) Reset() (string, error) {
	f.resets++
	return "reset environment variables", nil
}

type fixture struct {
	dir     string
	manager *Manager
	env     *fakeEnv
	paths   fakeResolver
}

func newFixture(t *testing.T, goos string) *fixture {
	t.Helper()
	dir := t.TempDir()

	paths := fakeResolver{
		"Git":    filepath.Join(dir, ".gitconfig"),
		"npm":    filepath.Join(dir, ".npmrc"),
		"Cursor": filepath.Join(dir, "Cursor", "settings.json"),
		"VSCode": filepath.Join(dir, "Code", "settings.json"),
		"IDEA":   filepath.Join(dir, "idea", "proxy.settings.xml"),
	}

	env := &fakeEnv{}
	m := NewManager(
		target.NewRegistry(paths, goos),
		backup.NewStore(filepath.Join(dir, "backups")),
		profile.NewStore(filepath.Join(dir, "user_config.json")),
		env,
	)
	return &fixture{dir: dir, manager: m, env: env, paths: paths}
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	path := f.paths[name]
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (f *fixture) read(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(f.paths[name])
	require.NoError(t, err)
	return string(data)
}

var testSettings = domain.ProxySettings{
	HTTPProxy:  "http://127.0.0.1:7890",
	HTTPSProxy: "http://127.0.0.1:7890",
	NoProxy:    domain.DefaultNoProxy,
}

func TestManager_Enable_WritesConfigAndBackups(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "Git", "[user]\n\tname = dev\n")

	results := f.manager.Enable([]string{"Git"}, testSettings)

	require.Len(t, results, 1)
	assert.Equal(t, "✓ Git: proxy enabled", results[0])

	content := f.read(t, "Git")
	assert.Contains(t, content, "[user]")
	assert.Contains(t, content, "proxy = http://127.0.0.1:7890")

	assert.True(t, f.manager.Backups.HasOriginal("Git"))
	assert.True(t, f.manager.Backups.HasCurrent("Git"))
}

func TestManager_Enable_CreatesMissingConfig(t *testing.T) {
	f := newFixture(t, "darwin")

	results := f.manager.Enable([]string{"VSCode"}, testSettings)

	require.Len(t, results, 1)
	assert.Equal(t, "✓ VSCode: proxy enabled", results[0])
	assert.Contains(t, f.read(t, "VSCode"), `"http.proxy": "http://127.0.0.1:7890"`)

	// Nothing existed before the enable, so there is nothing to back up.
	assert.False(t, f.manager.Backups.HasOriginal("VSCode"))
}

func TestManager_Enable_IDEAMentionsRestart(t *testing.T) {
	f := newFixture(t, "darwin")

	results := f.manager.Enable([]string{"IDEA"}, testSettings)

	require.Len(t, results, 1)
	assert.Equal(t, "✓ IDEA: proxy enabled (restart the IDE to take effect)", results[0])
	assert.Contains(t, f.read(t, "IDEA"), `<option name="PROXY_PORT" value="7890"/>`)
}

func TestManager_Enable_UnknownTargetFails(t *testing.T) {
	f := newFixture(t, "darwin")

	results := f.manager.Enable([]string{"Photoshop"}, testSettings)

	require.Len(t, results, 1)
	assert.Contains(t, results[0], "✗ Photoshop:")
	assert.Contains(t, results[0], "unknown software")
}

func TestManager_Enable_FailureDoesNotAbortBatch(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "npm", "registry=https://registry.npmjs.org/\n")

	results := f.manager.Enable([]string{"Photoshop", "npm"}, testSettings)

	require.Len(t, results, 2)
	assert.Contains(t, results[0], "✗ Photoshop:")
	assert.Equal(t, "✓ npm: proxy enabled", results[1])
	assert.Contains(t, f.read(t, "npm"), "proxy=http://127.0.0.1:7890")
}

func TestManager_Enable_CustomSoftware(t *testing.T) {
	f := newFixture(t, "darwin")
	customPath := filepath.Join(f.dir, "mytool.conf")
	_, err := f.manager.Profiles.AddCustomSoftware(domain.CustomSoftware{
		Name:       "MyTool",
		Kind:       domain.KindFlatKV,
		ConfigPath: customPath,
	})
	require.NoError(t, err)

	results := f.manager.Enable([]string{"MyTool"}, testSettings)

	require.Len(t, results, 1)
	assert.Equal(t, "✓ MyTool: proxy enabled", results[0])
	data, err := os.ReadFile(customPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https-proxy=http://127.0.0.1:7890")
}

func TestManager_Disable_RestoresPreEnableState(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "Git", "[user]\n\tname = dev\n")
	f.manager.Enable([]string{"Git"}, testSettings)

	results := f.manager.Disable([]string{"Git"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ Git: restored previous config", results[0])
	assert.Equal(t, "[user]\n\tname = dev\n", f.read(t, "Git"))
}

func TestManager_Disable_NoBackupStripsDirectives(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "npm", "registry=https://registry.npmjs.org/\nproxy=http://old:1\nhttps-proxy=http://old:1\n")

	results := f.manager.Disable([]string{"npm"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ npm: proxy disabled", results[0])
	content := f.read(t, "npm")
	assert.Contains(t, content, "registry=https://registry.npmjs.org/")
	assert.NotContains(t, content, "proxy=http://old:1")
}

func TestManager_Disable_NoBackupNoFile(t *testing.T) {
	f := newFixture(t, "darwin")

	results := f.manager.Disable([]string{"Git"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ Git: config file not found, nothing to do", results[0])
}

func TestManager_Disable_GeneratedXMLDeletesFile(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "IDEA", "<application/>")

	results := f.manager.Disable([]string{"IDEA"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ IDEA: proxy disabled (restart the IDE to take effect)", results[0])
	assert.NoFileExists(t, f.paths["IDEA"])
}

func TestManager_Reset_RestoresFirstSeenState(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "Git", "[user]\n\tname = first\n")
	f.manager.Enable([]string{"Git"}, testSettings)

	// A second enable must not overwrite the original-tier backup.
	f.write(t, "Git", "[user]\n\tname = second\n")
	f.manager.Enable([]string{"Git"}, testSettings)

	results := f.manager.Reset([]string{"Git"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ Git: reset to original config", results[0])
	assert.Equal(t, "[user]\n\tname = first\n", f.read(t, "Git"))
}

func TestManager_Reset_NoOriginalBackup(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "Git", "[user]\n\tname = dev\n")

	results := f.manager.Reset([]string{"Git"})

	require.Len(t, results, 1)
	assert.Equal(t, "✓ Git: no original backup, nothing to reset", results[0])
	assert.Equal(t, "[user]\n\tname = dev\n", f.read(t, "Git"))
}

func TestManager_EnvTargetRoutesToApplier(t *testing.T) {
	f := newFixture(t, "windows")

	enable := f.manager.Enable([]string{target.EnvTargetName}, testSettings)
	disable := f.manager.Disable([]string{target.EnvTargetName})
	reset := f.manager.Reset([]string{target.EnvTargetName})

	assert.Equal(t, []string{"✓ Windows Terminal: environment variables set"}, enable)
	assert.Equal(t, []string{"✓ Windows Terminal: restored previous environment variables"}, disable)
	assert.Equal(t, []string{"✓ Windows Terminal: reset environment variables"}, reset)

	require.Len(t, f.env.enabled, 1)
	assert.Equal(t, testSettings, f.env.enabled[0])
	assert.Equal(t, 1, f.env.disables)
	assert.Equal(t, 1, f.env.resets)
}

func TestManager_EnvTargetWithoutApplierFails(t *testing.T) {
	f := newFixture(t, "windows")
	f.manager.Env = nil

	results := f.manager.Enable([]string{target.EnvTargetName}, testSettings)

	require.Len(t, results, 1)
	assert.Contains(t, results[0], "✗ Windows Terminal:")
	assert.Contains(t, results[0], "only supported on Windows")
}

func TestManager_EnableWithProfiles(t *testing.T) {
	f := newFixture(t, "darwin")
	f.write(t, "Git", "[user]\n\tname = dev\n")
	f.write(t, "npm", "registry=https://registry.npmjs.org/\n")

	// Clash ships as a preset profile at 127.0.0.1:7890.
	results := f.manager.EnableWithProfiles([]domain.SoftwareProxyMapping{
		{SoftwareName: "Git", ProfileName: "Clash"},
		{SoftwareName: "npm", ProfileName: "NoSuchProfile"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "✓ Git: proxy enabled", results[0])
	assert.Contains(t, results[1], "✗ npm:")
	assert.Contains(t, results[1], `profile "NoSuchProfile" not found`)

	assert.Contains(t, f.read(t, "Git"), "proxy = http://127.0.0.1:7890")
	// The failed mapping must not touch the target's config.
	assert.Equal(t, "registry=https://registry.npmjs.org/\n", f.read(t, "npm"))
}

func TestManager_TargetsIncludesCustomSoftware(t *testing.T) {
	f := newFixture(t, "darwin")
	_, err := f.manager.Profiles.AddCustomSoftware(domain.CustomSoftware{
		Name:       "MyTool",
		Kind:       domain.KindJSON,
		ConfigPath: filepath.Join(f.dir, "mytool.json"),
	})
	require.NoError(t, err)

	targets := f.manager.Targets()

	names := make([]string, 0, len(targets))
	for _, tgt := range targets {
		names = append(names, tgt.Name)
	}
	assert.Equal(t, []string{"Git", "npm", "Cursor", "VSCode", "IDEA", "MyTool"}, names)
}

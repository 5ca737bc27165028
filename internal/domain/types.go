package domain

import "fmt"

// FormatKind identifies the config dialect a target's file is written in,
// which in turn selects the editor used to inject or strip proxy directives.
type FormatKind string

const (
	// KindSectionedKV is a bracketed-section key-value format (git config).
	KindSectionedKV FormatKind = "ini"
	// KindFlatKV is a flat key=value format (npmrc).
	KindFlatKV FormatKind = "kv"
	// KindJSON is a generic JSON settings object (VS Code, Cursor).
	KindJSON FormatKind = "json"
	// KindGeneratedXML is a single-purpose generated XML document (IDEA).
	KindGeneratedXML FormatKind = "xml"
	// KindOSEnv is the OS user environment (Windows registry).
	KindOSEnv FormatKind = "env"
)

// Target is a piece of software whose proxy configuration this tool manages.
// Identity is the name; Installed is derived on every listing, never persisted.
type Target struct {
	Name       string     `json:"name" toml:"name"`
	Kind       FormatKind `json:"format_kind" toml:"format_kind"`
	Enabled    bool       `json:"enabled" toml:"enabled"`
	Installed  bool       `json:"installed" toml:"installed"`
	ConfigPath string     `json:"config_path,omitempty" toml:"config_path,omitempty"`
	IsCustom   bool       `json:"is_custom,omitempty" toml:"is_custom,omitempty"`
}

// ProxySettings holds the proxy endpoints injected into target configs.
// Values are free-form URL-like strings; only the XML editor enforces a
// host:port shape.
type ProxySettings struct {
	HTTPProxy  string `json:"http_proxy"`
	HTTPSProxy string `json:"https_proxy"`
	NoProxy    string `json:"no_proxy"`
}

// DefaultNoProxy is the bypass list applied whenever settings are built
// from a profile rather than given explicitly.
const DefaultNoProxy = "localhost,127.0.0.1,::1"

// SettingsForHostPort builds ProxySettings pointing both HTTP and HTTPS
// traffic at http://host:port with the default bypass list.
func SettingsForHostPort(host string, port uint16) ProxySettings {
	endpoint := fmt.Sprintf("http://%s:%d", host, port)
	return ProxySettings{
		HTTPProxy:  endpoint,
		HTTPSProxy: endpoint,
		NoProxy:    DefaultNoProxy,
	}
}

// ProxyProfile is a named proxy endpoint.
type ProxyProfile struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// SoftwareProxyMapping binds a target name to the profile used for it.
type SoftwareProxyMapping struct {
	SoftwareName string `json:"software_name"`
	ProfileName  string `json:"profile_name"`
}

// CustomSoftware is a user-declared target merged into the built-in list.
type CustomSoftware struct {
	Name       string     `json:"name"`
	Kind       FormatKind `json:"config_type"`
	ConfigPath string     `json:"config_path"`
}

// ClosePreference records how the original GUI shell should behave on
// close. Kept for config-file compatibility.
type ClosePreference struct {
	Remember bool   `json:"remember"`
	Action   string `json:"action"` // "minimize" or "exit"
}

// UserConfig is the aggregate persisted whole on every mutation.
type UserConfig struct {
	Profiles        []ProxyProfile         `json:"profiles"`
	Mappings        []SoftwareProxyMapping `json:"mappings"`
	CustomSoftware  []CustomSoftware       `json:"custom_software"`
	ClosePreference ClosePreference        `json:"close_preference"`
}

// DefaultUserConfig returns the built-in config used when the user config
// file is missing or unparsable: three preset profiles, no mappings.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Profiles: []ProxyProfile{
			{Name: "Clash", Host: "127.0.0.1", Port: 7890},
			{Name: "V2Ray", Host: "127.0.0.1", Port: 10808},
			{Name: "Veee", Host: "127.0.0.1", Port: 15236},
		},
		Mappings:        []SoftwareProxyMapping{},
		CustomSoftware:  []CustomSoftware{},
		ClosePreference: ClosePreference{Remember: false, Action: "minimize"},
	}
}

// Profile returns the named profile, if present.
func (c *UserConfig) Profile(name string) (ProxyProfile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return ProxyProfile{}, false
}

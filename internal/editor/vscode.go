package editor

import (
	"encoding/json"
	"strings"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// proxyKey is the single settings key owned by the JSON editor.
const proxyKey = "http.proxy"

// VSCode edits JSON settings documents (VS Code, Cursor). Unparsable or
// empty content is treated as an empty object rather than an error, so a
// fresh settings file can be created in place.
type VSCode struct{}

// Apply sets the "http.proxy" key, preserving every other key.
func (VSCode) Apply(content string, settings domain.ProxySettings) (string, error) {
	obj := parseSettings(content)
	obj[proxyKey] = settings.HTTPProxy
	return renderSettings(obj)
}

// Strip removes the "http.proxy" key if present.
func (VSCode) Strip(content string) string {
	obj := parseSettings(content)
	delete(obj, proxyKey)
	out, err := renderSettings(obj)
	if err != nil {
		return content
	}
	return out
}

func parseSettings(content string) map[string]any {
	obj := map[string]any{}
	if strings.TrimSpace(content) == "" {
		return obj
	}
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return map[string]any{}
	}
	return obj
}

func renderSettings(obj map[string]any) (string, error) {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

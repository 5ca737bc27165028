package editor

import (
	"fmt"
	"strings"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// NPM edits the flat key=value format used by .npmrc. It owns only the
// proxy= and https-proxy= lines.
type NPM struct{}

// Apply strips stale proxy lines and appends the new ones. The result is
// trimmed of surrounding whitespace.
func (NPM) Apply(content string, settings domain.ProxySettings) (string, error) {
	stripped := NPM{}.Strip(content)
	out := stripped + fmt.Sprintf("\nproxy=%s\nhttps-proxy=%s\n",
		settings.HTTPProxy, settings.HTTPSProxy)
	return strings.TrimSpace(out), nil
}

// Strip drops every line whose trimmed, lowercased form starts with
// "proxy=" or "https-proxy=".
func (NPM) Strip(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(trimmed, "proxy=") || strings.HasPrefix(trimmed, "https-proxy=") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

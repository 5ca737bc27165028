package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// ideaTemplate is the fixed shape of the generated proxy.settings.xml.
const ideaTemplate = `<application>
  <component name="HttpConfigurable">
    <option name="USE_HTTP_PROXY" value="true"/>
    <option name="PROXY_HOST" value="%s"/>
    <option name="PROXY_PORT" value="%d"/>
  </component>
</application>`

// IDEA regenerates the single-purpose IntelliJ proxy settings document.
// There is no merge: Apply replaces the whole file and disabling deletes
// it, which the orchestrator handles for this kind.
type IDEA struct{}

// Apply builds the document from host and port parsed out of the HTTP
// proxy value. Prior content is ignored.
func (IDEA) Apply(_ string, settings domain.ProxySettings) (string, error) {
	host, port, err := ParseProxyURL(settings.HTTPProxy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(ideaTemplate, host, port), nil
}

// Strip returns empty content; the generated file carries nothing but
// proxy state, so stripping means deleting the file.
func (IDEA) Strip(string) string { return "" }

// ParseProxyURL extracts host and port from a "[scheme://]host:port"
// proxy value. Anything else is a malformed-input error.
func ParseProxyURL(raw string) (string, uint16, error) {
	trimmed := strings.TrimPrefix(raw, "http://")
	trimmed = strings.TrimPrefix(trimmed, "https://")

	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("invalid proxy address %q, expected host:port", raw)
	}

	port, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return "", 0, fmt.Errorf("invalid proxy port %q", parts[1])
	}
	return parts[0], uint16(port), nil
}

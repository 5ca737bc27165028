package editor

import (
	"fmt"
	"strings"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// Git edits the sectioned key-value format used by .gitconfig. Only the
// [http] and [https] sections are owned by this editor; every other
// section passes through untouched, in its original order.
type Git struct{}

// Apply strips any existing proxy sections and appends fresh [http] and
// [https] sections, so repeated applies never accumulate.
func (Git) Apply(content string, settings domain.ProxySettings) (string, error) {
	stripped := Git{}.Strip(content)
	section := fmt.Sprintf("\n[http]\n\tproxy = %s\n[https]\n\tproxy = %s\n",
		settings.HTTPProxy, settings.HTTPSProxy)
	return stripped + section, nil
}

// Strip removes the [http] and [https] sections, matching the bracketed
// header case-insensitively, and trims trailing whitespace.
func (Git) Strip(content string) string {
	var b strings.Builder
	skipSection := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section := strings.ToLower(trimmed[1 : len(trimmed)-1])
			skipSection = section == "http" || section == "https"
			if !skipSection {
				b.WriteString(line)
				b.WriteString("\n")
			}
		} else if !skipSection {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}

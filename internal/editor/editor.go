// Package editor holds one editor per config dialect. Editors are pure
// text/structure transforms; callers own all file I/O.
package editor

import (
	"fmt"

	"github.com/youjizi/proxy-manager/internal/domain"
)

// Editor injects or removes proxy directives in a config document while
// leaving unrelated content untouched.
type Editor interface {
	// Apply returns content with this tool's proxy directives set to the
	// given settings, replacing any previous ones.
	Apply(content string, settings domain.ProxySettings) (string, error)
	// Strip returns content with this tool's proxy directives removed.
	Strip(content string) string
}

// ForKind selects the editor for a file-backed format kind. KindOSEnv has
// no content editor; its registry-backed handling lives in winenv.
func ForKind(kind domain.FormatKind) (Editor, error) {
	switch kind {
	case domain.KindSectionedKV:
		return Git{}, nil
	case domain.KindFlatKV:
		return NPM{}, nil
	case domain.KindJSON:
		return VSCode{}, nil
	case domain.KindGeneratedXML:
		return IDEA{}, nil
	default:
		return nil, fmt.Errorf("no editor for format kind %q", kind)
	}
}

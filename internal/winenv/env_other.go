//go:build !windows

package winenv

import "errors"

// ErrUnsupported is returned on platforms without a writable user
// environment store.
var ErrUnsupported = errors.New("environment variables are only supported on Windows")

// NewPlatform reports that no Environment exists on this platform.
func NewPlatform() (Environment, error) {
	return nil, ErrUnsupported
}

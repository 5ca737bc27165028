package main

import (
	"fmt"
	"runtime"

	"github.com/youjizi/proxy-manager/internal/backup"
	"github.com/youjizi/proxy-manager/internal/detect"
	"github.com/youjizi/proxy-manager/internal/profile"
	"github.com/youjizi/proxy-manager/internal/proxy"
	"github.com/youjizi/proxy-manager/internal/target"
	"github.com/youjizi/proxy-manager/internal/util"
	"github.com/youjizi/proxy-manager/internal/winenv"
)

// newManager wires the orchestrator for the running platform. The
// environment applier is only available on Windows; elsewhere the manager
// reports environment operations as unsupported.
func newManager() (*proxy.Manager, error) {
	backupDir, err := backup.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("resolve backup directory: %w", err)
	}

	var env proxy.EnvApplier
	if platformEnv, envErr := winenv.NewPlatform(); envErr == nil {
		env = winenv.NewApplier(platformEnv, backupDir)
	}

	return proxy.NewManager(
		target.NewDefaultRegistry(runtime.GOOS),
		backup.NewStore(backupDir),
		profile.NewStore(profile.DefaultPath()),
		env,
	), nil
}

func newDetector() *detect.Detector {
	return detect.NewDetector(&util.RealCommandRunner{}, runtime.GOOS)
}

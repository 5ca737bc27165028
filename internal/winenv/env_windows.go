//go:build windows

package winenv

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const envKeyPath = "Environment"

// Registry implements Environment on HKEY_CURRENT_USER\Environment.
type Registry struct{}

// NewPlatform returns the registry-backed Environment.
func NewPlatform() (Environment, error) {
	return Registry{}, nil
}

func openEnvKey(access uint32) (registry.Key, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, envKeyPath, access)
	if err != nil {
		return 0, fmt.Errorf("open registry key %s: %w", envKeyPath, err)
	}
	return key, nil
}

func (Registry) Read(name string) (string, bool) {
	key, err := openEnvKey(registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return value, true
}

func (Registry) Write(name, value string) error {
	key, err := openEnvKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	if err := key.SetStringValue(name, value); err != nil {
		return fmt.Errorf("set registry value %s: %w", name, err)
	}
	return nil
}

func (Registry) Delete(name string) error {
	key, err := openEnvKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	err = key.DeleteValue(name)
	if err == registry.ErrNotExist {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete registry value %s: %w", name, err)
	}
	return nil
}

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	sendMessageTimeout = user32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast   = uintptr(0xFFFF)
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

// NotifyChanged broadcasts WM_SETTINGCHANGE for "Environment" with a
// bounded wait. Running processes keep their environment; only newly
// started ones observe the update.
func (Registry) NotifyChanged() {
	param, err := windows.UTF16PtrFromString(envKeyPath)
	if err != nil {
		return
	}
	var result uintptr
	sendMessageTimeout.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		5000,
		uintptr(unsafe.Pointer(&result)),
	)
}

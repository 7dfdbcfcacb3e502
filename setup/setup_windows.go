//go:build windows

package setup

import (
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sys/windows/registry"
)

const uninstallKey = `Microsoft\Windows\CurrentVersion\Uninstall\VB:Voicemeeter {17359A74-1236-5467}`

// installDir reads the Voicemeeter folder from its uninstall entry.
func installDir() (string, error) {
	path := `SOFTWARE\` + uninstallKey
	if runtime.GOARCH != "386" {
		path = `SOFTWARE\WOW6432Node\` + uninstallKey
	}
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	defer k.Close()

	uninstaller, _, err := k.GetStringValue("UninstallString")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return filepath.Dir(uninstaller), nil
}

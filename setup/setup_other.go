//go:build !windows

package setup

import "fmt"

func installDir() (string, error) {
	return "", fmt.Errorf("%w: Voicemeeter is Windows-only (use -simulate)", ErrNotInstalled)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func defaultLogPath() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not get user cache directory: %v", err)
	}
	dir := filepath.Join(cache, "vm-master-control")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "vmctl.log"), nil
}

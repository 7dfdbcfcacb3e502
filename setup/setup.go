// Package setup checks that Voicemeeter is installed before the panel starts
// and offers to install it when it is not.
package setup

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	VoicemeeterURL = "https://vb-audio.com/Voicemeeter/banana.htm"
	CableURL       = "https://vb-audio.com/Cable/"

	wingetVoicemeeter = "VB-Audio.Voicemeeter.Banana"
)

// ErrNotInstalled is returned when no Voicemeeter installation is found.
var ErrNotInstalled = errors.New("voicemeeter is not installed")

// DLLName is the remote API library matching the running architecture.
func DLLName() string {
	if runtime.GOARCH == "386" {
		return "VoicemeeterRemote.dll"
	}
	return "VoicemeeterRemote64.dll"
}

// FindRemoteDLL returns the path to the Voicemeeter remote API library.
// An explicit path wins; otherwise the installation directory is looked up.
func FindRemoteDLL(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("dll %s: %w", explicit, err)
		}
		return explicit, nil
	}
	dir, err := installDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DLLName())
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s missing", ErrNotInstalled, path)
	}
	return path, nil
}

// EnsureEnvironment locates the remote DLL, offering to install Voicemeeter
// when it is missing. The returned path may be empty if the user declined.
func EnsureEnvironment(scanner *bufio.Scanner, explicit string) (string, error) {
	fmt.Println("Checking Voicemeeter installation...")

	path, err := FindRemoteDLL(explicit)
	if err == nil {
		fmt.Printf("✔ Voicemeeter remote API found: %s\n", path)
		return path, nil
	}
	if explicit != "" || !errors.Is(err, ErrNotInstalled) {
		return "", err
	}

	fmt.Println("Voicemeeter Banana does not appear to be installed.")
	if !askYesNo(scanner, "Do you want to install it now? [Y/n]: ", true) {
		return "", err
	}
	if installErr := installVoicemeeter(scanner); installErr != nil {
		fmt.Printf("Automatic installation failed: %v\n", installErr)
		fmt.Printf("Please install Voicemeeter Banana manually from: %s\n", VoicemeeterURL)
		return "", err
	}

	path, err = FindRemoteDLL("")
	if err != nil {
		fmt.Println("Voicemeeter still not found. A reboot may be needed after installation.")
		return "", err
	}
	fmt.Printf("✔ Voicemeeter remote API found: %s\n", path)
	fmt.Printf("The loop-back path also needs VB-CABLE: %s\n", CableURL)
	return path, nil
}

func installVoicemeeter(scanner *bufio.Scanner) error {
	if err := InstallDependency(scanner, wingetVoicemeeter); err == nil {
		return nil
	}
	fmt.Println("Opening the Voicemeeter download page...")
	return openURL(VoicemeeterURL)
}

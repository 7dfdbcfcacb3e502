package setup

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

func askYesNo(scanner *bufio.Scanner, prompt string, def bool) bool {
	fmt.Print(prompt)
	if !scanner.Scan() {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "":
		return def
	case "y", "yes":
		return true
	}
	return false
}

// InstallDependency installs pkgName with the platform's package manager.
func InstallDependency(scanner *bufio.Scanner, pkgName string) error {
	pm, cmdArgs := detectPackageManager(pkgName)
	if pm == "" {
		return fmt.Errorf("no supported package manager found")
	}

	fmt.Printf("Package manager '%s' detected.\n", pm)
	if !askYesNo(scanner, fmt.Sprintf("Do you want to install '%s' using %s? [Y/n]: ", pkgName, pm), true) {
		return fmt.Errorf("installation of %s declined", pkgName)
	}

	fmt.Printf("Running: %s %s\n", pm, strings.Join(cmdArgs, " "))
	cmd := exec.Command(pm, cmdArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// Voicemeeter ships for Windows only, so only winget carries it.
func detectPackageManager(pkgName string) (string, []string) {
	if runtime.GOOS != "windows" {
		return "", nil
	}
	if _, err := exec.LookPath("winget"); err == nil {
		return "winget", []string{"install", "-e", "--id", pkgName}
	}
	return "", nil
}

func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		return fmt.Errorf("unsupported OS")
	}
	return cmd.Start()
}

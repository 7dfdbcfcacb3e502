//go:build windows

package voicemeeter

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const swMinimize = 6

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procFindWindow = user32.NewProc("FindWindowW")
	procShowWindow = user32.NewProc("ShowWindow")
)

// MinimizeWindow minimises the top-level window with the given title. It
// reports whether such a window was found.
func MinimizeWindow(title string) (bool, error) {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return false, err
	}
	if err := procFindWindow.Find(); err != nil {
		return false, err
	}
	hwnd, _, _ := procFindWindow.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return false, nil
	}
	procShowWindow.Call(hwnd, swMinimize)
	return true, nil
}

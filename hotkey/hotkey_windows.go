//go:build windows

package hotkey

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	wmHotkey    = 0x0312
	wmQuit      = 0x0012
	modNoRepeat = 0x4000
	hotkeyID    = 1
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey    = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey  = user32.NewProc("UnregisterHotKey")
	procGetMessage        = user32.NewProc("GetMessageW")
	procPostThreadMessage = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

func (l *Listener) listen(ctx context.Context) error {
	// Hotkey messages are posted to the registering thread's queue.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if ok, _, err := procRegisterHotKey.Call(0, hotkeyID, modNoRepeat, uintptr(l.key.vk)); ok == 0 {
		return fmt.Errorf("failed to register %s as a hotkey: %w", l.key.Name, err)
	}
	defer procUnregisterHotKey.Call(0, hotkeyID)
	log.Printf("[hotkey] registered %s", l.key.Name)

	tid := windows.GetCurrentThreadId()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			procPostThreadMessage.Call(uintptr(tid), wmQuit, 0, 0)
		case <-stop:
		}
	}()

	var m msg
	for {
		ret, _, err := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("GetMessage failed: %w", err)
		case 0: // WM_QUIT
			return ctx.Err()
		}
		if m.message == wmHotkey && m.wParam == hotkeyID {
			l.notify()
		}
	}
}

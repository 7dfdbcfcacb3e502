package hotkey

import (
	"testing"
	"time"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" f9 ")
	if err != nil || k.Name != "F9" || k.evdev != 67 || k.vk != 0x78 {
		t.Fatalf("ParseKey(f9) = %+v, %v", k, err)
	}
	if _, err := ParseKey("Hyper"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestNotifyCollapsesPresses(t *testing.T) {
	l := NewListener(Key{Name: "F9"})
	l.notify()
	l.notify()

	select {
	case <-l.KeyPressed():
	case <-time.After(time.Second):
		t.Fatal("press not delivered")
	}
	select {
	case <-l.KeyPressed():
		t.Fatal("second press should have been collapsed")
	default:
	}
}

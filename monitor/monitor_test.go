package monitor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/micha/vm-master-control/parser"
)

func TestMonitorFollowsNewRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vmctl.log")
	if err := os.WriteFile(path, []byte("2026/10/18 10:00:00 [session] old line\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewMonitor(path)
	if err != nil {
		t.Fatalf("NewMonitor: %v", err)
	}
	defer m.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	entries := make(chan parser.Entry, 8)
	go m.Entries(ctx, func(e parser.Entry) { entries <- e })

	// Let the tail reach the end of the existing content.
	time.Sleep(300 * time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not a record\n")
	f.WriteString("2026/10/18 10:00:01 [toggle] strip 1 B1 -> true\n")
	f.Close()

	select {
	case e := <-entries:
		if e.Tag != "toggle" || e.Message != "strip 1 B1 -> true" {
			t.Fatalf("unexpected entry %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no entry received")
	}
}

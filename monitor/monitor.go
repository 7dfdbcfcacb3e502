// Package monitor follows the panel's log file so the UI can show recent
// activity while the terminal is taken over by the interface.
package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/nxadm/tail"

	"github.com/micha/vm-master-control/parser"
)

// Monitor watches the log file for new records.
type Monitor struct {
	filePath string
	tail     *tail.Tail
}

// NewMonitor starts following filePath from its current end.
func NewMonitor(filePath string) (*Monitor, error) {
	t, err := tail.TailFile(filePath, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      true, // inotify is unreliable for files the same process appends to on some platforms
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to tail %s: %w", filePath, err)
	}
	return &Monitor{filePath: filePath, tail: t}, nil
}

// Entries delivers parsed records to fn until ctx is done or the tail ends.
// Lines that are not log records are dropped.
func (m *Monitor) Entries(ctx context.Context, fn func(parser.Entry)) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-m.tail.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				continue
			}
			if e := parser.ParseLine(line.Text); e != nil {
				fn(*e)
			}
		}
	}
}

// Stop stops following the file.
func (m *Monitor) Stop() {
	m.tail.Cleanup()
	m.tail.Stop()
}

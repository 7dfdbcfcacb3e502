//go:build !linux && !windows

package hotkey

import (
	"context"
	"fmt"
)

func (l *Listener) listen(ctx context.Context) error {
	return fmt.Errorf("global %s hotkey is not available on this platform; press t in the panel instead", l.key.Name)
}

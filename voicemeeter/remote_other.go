//go:build !windows

package voicemeeter

// New returns a Remote whose calls all fail with ErrUnsupported.
func New(dllPath string, kind Kind) Remote {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Login() error                               { return ErrUnsupported }
func (unsupported) Logout() error                              { return ErrUnsupported }
func (unsupported) Shutdown() error                            { return ErrUnsupported }
func (unsupported) Dirty() (bool, error)                       { return false, ErrUnsupported }
func (unsupported) DeviceCount(DeviceKind) (int, error)        { return 0, ErrUnsupported }
func (unsupported) DeviceName(DeviceKind, int) (string, error) { return "", ErrUnsupported }
func (unsupported) SetBusDevice(int, string) error             { return ErrUnsupported }
func (unsupported) SetStripDevice(int, string) error           { return ErrUnsupported }
func (unsupported) StripRoute(int, Route) (bool, error)        { return false, ErrUnsupported }
func (unsupported) SetStripRoute(int, Route, bool) error       { return ErrUnsupported }

// MinimizeWindow is a no-op outside Windows.
func MinimizeWindow(title string) (bool, error) {
	return false, nil
}

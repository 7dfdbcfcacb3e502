package voicemeeter

import (
	"fmt"
	"sync"
)

// Sim is an in-memory Remote. It is safe for concurrent use so that a
// background goroutine can play the part of someone clicking in the real
// Voicemeeter window.
type Sim struct {
	mu sync.Mutex

	inputs  []string
	outputs []string

	loggedIn bool
	running  bool
	dirty    bool

	busDevice   map[int]string
	stripDevice map[int]string
	routes      map[routeKey]bool

	writes []string
	fail   map[string]error
}

type routeKey struct {
	strip int
	route Route
}

// NewSim returns a running simulated mixer exposing the given device tables.
func NewSim(inputs, outputs []string) *Sim {
	return &Sim{
		inputs:      append([]string(nil), inputs...),
		outputs:     append([]string(nil), outputs...),
		running:     true,
		busDevice:   make(map[int]string),
		stripDevice: make(map[int]string),
		routes:      make(map[routeKey]bool),
		fail:        make(map[string]error),
	}
}

// FailOn makes every call to the named method ("Login", "SetStripRoute", ...)
// return err. A nil err clears the failure.
func (s *Sim) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, method)
		return
	}
	s.fail[method] = err
}

// Flip inverts a routing flag as if changed from outside and raises the
// dirty flag.
func (s *Sim) Flip(strip int, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := routeKey{strip, route}
	s.routes[k] = !s.routes[k]
	s.dirty = true
}

// Writes returns the parameter writes performed so far, oldest first.
func (s *Sim) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

// Running reports whether the simulated application is still up.
func (s *Sim) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LoggedIn reports whether a session is open.
func (s *Sim) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// BusDevice returns the device assigned to a bus.
func (s *Sim) BusDevice(bus int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busDevice[bus]
}

// StripDevice returns the device assigned to a strip.
func (s *Sim) StripDevice(strip int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stripDevice[strip]
}

func (s *Sim) failure(method string) error {
	if err, ok := s.fail[method]; ok {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (s *Sim) session(method string) error {
	if err := s.failure(method); err != nil {
		return err
	}
	if !s.loggedIn {
		return &CallError{Func: method, Code: -2}
	}
	return nil
}

func (s *Sim) Login() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("Login"); err != nil {
		return err
	}
	s.loggedIn = true
	s.running = true
	return nil
}

func (s *Sim) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("Logout"); err != nil {
		return err
	}
	s.loggedIn = false
	return nil
}

func (s *Sim) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("Shutdown"); err != nil {
		return err
	}
	s.running = false
	s.writes = append(s.writes, "Command.Shutdown=1;")
	return nil
}

func (s *Sim) Dirty() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("Dirty"); err != nil {
		return false, err
	}
	d := s.dirty
	s.dirty = false
	return d, nil
}

func (s *Sim) table(kind DeviceKind) []string {
	if kind == Output {
		return s.outputs
	}
	return s.inputs
}

func (s *Sim) DeviceCount(kind DeviceKind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("DeviceCount"); err != nil {
		return 0, err
	}
	return len(s.table(kind)), nil
}

func (s *Sim) DeviceName(kind DeviceKind, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("DeviceName"); err != nil {
		return "", err
	}
	t := s.table(kind)
	if index < 0 || index >= len(t) {
		return "", &CallError{Func: "DeviceName", Code: -1}
	}
	return t[index], nil
}

func (s *Sim) SetBusDevice(bus int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("SetBusDevice"); err != nil {
		return err
	}
	s.busDevice[bus] = name
	s.writes = append(s.writes, stringScript(busParam(bus, "device.wdm"), name))
	return nil
}

func (s *Sim) SetStripDevice(strip int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("SetStripDevice"); err != nil {
		return err
	}
	s.stripDevice[strip] = name
	s.writes = append(s.writes, stringScript(stripParam(strip, "device.wdm"), name))
	return nil
}

func (s *Sim) StripRoute(strip int, route Route) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("StripRoute"); err != nil {
		return false, err
	}
	return s.routes[routeKey{strip, route}], nil
}

func (s *Sim) SetStripRoute(strip int, route Route, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session("SetStripRoute"); err != nil {
		return err
	}
	s.routes[routeKey{strip, route}] = on
	s.writes = append(s.writes, boolScript(stripParam(strip, string(route)), on))
	return nil
}

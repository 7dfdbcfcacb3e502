package panel

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures by how the panel reacts to them.
type ErrorKind int

const (
	// ConnectionFailure: the session could not be opened. The panel stays
	// visible but inert until a reconnect.
	ConnectionFailure ErrorKind = iota + 1
	// ValidationFailure: a placeholder selection blocked the operation
	// before anything was written.
	ValidationFailure
	// RoutingOperationFailure: a mixer call failed part way. Earlier writes
	// are kept.
	RoutingOperationFailure
	// DeviceNotFound: the virtual cable driver is missing. Reported only.
	DeviceNotFound
	// PollTransientFailure: a poll tick failed. Retried on the next tick.
	PollTransientFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectionFailure:
		return "connection failure"
	case ValidationFailure:
		return "validation failure"
	case RoutingOperationFailure:
		return "routing failure"
	case DeviceNotFound:
		return "device not found"
	case PollTransientFailure:
		return "poll failure"
	}
	return "unknown failure"
}

var (
	ErrPlaceholder  = errors.New("please select devices in the dropdowns first")
	ErrOffline      = errors.New("not connected to Voicemeeter")
	ErrCableMissing = errors.New("could not find the virtual cable driver")
)

// OpError records which operation failed and why.
type OpError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opError(kind ErrorKind, op string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the ErrorKind carried by err, or 0.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return 0
}

// Package gatt provides the attribute-level transport consumed by
// capability discovery: characteristic existence checks and one-shot reads.
// The BLE implementation lives here too; everything above it depends only
// on the Conn interface.
package gatt

import (
	"context"
	"errors"
	"fmt"
)

// Conn exposes the two transport capabilities capability discovery needs
// from a connected device. Implementations must serialize reads: some
// transports do not support concurrent access to the same endpoint.
type Conn interface {
	// HasCharacteristic reports whether the device exposes a
	// characteristic with the given UUID.
	HasCharacteristic(uuid string) bool

	// ReadCharacteristic returns the current value behind the UUID.
	ReadCharacteristic(ctx context.Context, uuid string) ([]byte, error)
}

// NotFoundError represents an error when a GATT resource is not found
type NotFoundError struct {
	Resource string // "service", "characteristic"
	UUID     string
}

func (e *NotFoundError) Error() string {
	if e.UUID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.UUID)
}

// ConnectionState represents the specific kind of connection state failure
type ConnectionState string

const (
	NotConnected     ConnectionState = "not_connected"
	AlreadyConnected ConnectionState = "already_connected"
)

// ConnectionError represents any connection-related problem
type ConnectionError struct {
	State ConnectionState
	Msg   string
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.State)
	}
	return fmt.Sprintf("%s: %s", e.State, e.Msg)
}

// Is allows errors.Is to compare ConnectionError values by State
func (e *ConnectionError) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*ConnectionError)
	if !ok {
		return false
	}
	return e.State == t.State
}

// Predefined sentinel errors for connection states
var (
	ErrNotConnected     = &ConnectionError{State: NotConnected}
	ErrAlreadyConnected = &ConnectionError{State: AlreadyConnected}
)

// IsConnectionState reports whether err is a ConnectionError with the given state
func IsConnectionState(err error, state ConnectionState) bool {
	var cerr *ConnectionError
	if errors.As(err, &cerr) {
		return cerr.State == state
	}
	return false
}

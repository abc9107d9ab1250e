package energyplus

import (
	"errors"
	"time"
)

// ErrPinUnavailable is wrapped by Driver.Open failures
var ErrPinUnavailable = errors.New("pin unavailable")

// Driver hands out exclusive output pins.
// Open fails with an error wrapping ErrPinUnavailable if the pin is already
// claimed or can not be accessed.
type Driver interface {
	Open(pin int) (Pin, error)
}

// Pin is a claimed output pin
type Pin interface {
	// Set changes the level immediately
	Set(l Level) error
	// Hold blocks for at least d, leaving the level as it is
	Hold(d time.Duration)
	// Release drives the pin Low and gives it back. Calling it again is a no-op.
	Release() error
}

// Reset claims pin, which leaves it Low, and releases it again. It is the
// cleanup pass for a pin left high by an interrupted transmission.
func Reset(d Driver, pin int) error {
	p, err := d.Open(pin)
	if err != nil {
		return err
	}
	return p.Release()
}

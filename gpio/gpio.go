// Package gpio drives transmitter pins on the Raspberry Pi header.
//
// Builds tagged nogpio get a driver that refuses every pin, so the rest of the
// program can be built and tried off the Pi.
package gpio

import (
	"fmt"
	"sync"
	"time"

	"github.com/speters/energyplus/energyplus"

	log "github.com/sirupsen/logrus"
)

// TransmitPin is the BCM number of the pin the 433 MHz transmitter is wired to (physical pin 16)
const TransmitPin = 23

// maxPin is the highest BCM GPIO number of the BCM283x
const maxPin = 53

type backend interface {
	open() error
	close() error
	output(pin int)
	write(pin int, l energyplus.Level)
}

// Driver hands out exclusive pins on the GPIO header. The register mapping is
// opened with the first claimed pin and closed again when the last one is released.
type Driver struct {
	b       backend
	mu      sync.Mutex
	claimed map[int]*Pin
}

// NewDriver is the factory method to create a new Driver
func NewDriver() *Driver {
	return newDriver(newBackend())
}

func newDriver(b backend) *Driver {
	return &Driver{b: b, claimed: make(map[int]*Pin)}
}

// Open claims pin for output and drives it Low
func (o *Driver) Open(pin int) (energyplus.Pin, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if pin < 0 || pin > maxPin {
		return nil, fmt.Errorf("gpio%d: no such pin: %w", pin, energyplus.ErrPinUnavailable)
	}
	if _, ok := o.claimed[pin]; ok {
		return nil, fmt.Errorf("gpio%d: already claimed: %w", pin, energyplus.ErrPinUnavailable)
	}
	if len(o.claimed) == 0 {
		if err := o.b.open(); err != nil {
			return nil, fmt.Errorf("gpio%d: %v: %w", pin, err, energyplus.ErrPinUnavailable)
		}
	}
	o.b.output(pin)
	o.b.write(pin, energyplus.Low)

	p := &Pin{d: o, pin: pin}
	o.claimed[pin] = p
	log.Debugf("Claimed gpio%d", pin)
	return p, nil
}

// ReleaseAll drives every claimed pin Low and releases it
func (o *Driver) ReleaseAll() error {
	o.mu.Lock()
	pins := make([]*Pin, 0, len(o.claimed))
	for _, p := range o.claimed {
		pins = append(pins, p)
	}
	o.mu.Unlock()

	var first error
	for _, p := range pins {
		if err := p.Release(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Pin is a pin claimed from a Driver
type Pin struct {
	d        *Driver
	pin      int
	released bool
}

// Set drives the pin to l. It fails once the pin has been released.
func (p *Pin) Set(l energyplus.Level) error {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if p.released {
		return fmt.Errorf("gpio%d: released", p.pin)
	}
	p.d.b.write(p.pin, l)
	return nil
}

// Hold sleeps for at least d
func (p *Pin) Hold(d time.Duration) {
	time.Sleep(d)
}

// Release drives the pin Low and gives it back to the Driver. Further calls do nothing.
func (p *Pin) Release() error {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	if p.released {
		return nil
	}
	p.released = true
	p.d.b.write(p.pin, energyplus.Low)
	delete(p.d.claimed, p.pin)
	log.Debugf("Released gpio%d", p.pin)

	if len(p.d.claimed) == 0 {
		if err := p.d.b.close(); err != nil {
			return fmt.Errorf("gpio%d: close: %w", p.pin, err)
		}
	}
	return nil
}

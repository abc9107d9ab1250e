package energyplus

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Transmitter sends commands on a single pin of a Driver
type Transmitter struct {
	driver Driver
	pin    int

	lock sync.Mutex
}

// NewTransmitter is the factory method to create a new Transmitter
func NewTransmitter(d Driver, pin int) *Transmitter {
	return &Transmitter{driver: d, pin: pin}
}

// Transmit validates command and sends it. Nothing is sent and the pin is
// never claimed if command is not a valid Command.
func (o *Transmitter) Transmit(command string) error {
	c, err := ParseCommand(command)
	if err != nil {
		return err
	}
	return o.Send(c)
}

// Send claims the pin, puts the pulses of c on it and releases it again.
// The pin is released on every return path once it has been claimed.
func (o *Transmitter) Send(c Command) (err error) {
	o.lock.Lock()
	defer o.lock.Unlock()

	p, err := o.driver.Open(o.pin)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := p.Release(); rerr != nil && err == nil {
			err = fmt.Errorf("release pin %d: %w", o.pin, rerr)
		}
	}()

	start := time.Now()
	n := 0
	err = encode(c, func(pulse Pulse) error {
		if pulse.Level == Low && pulse.Duration == AGCLow {
			log.Debugf("Repetition %d/%d of %v on pin %d", n/(2*CommandLength+1)+1, RepeatCount, c, o.pin)
		}
		if err := p.Set(pulse.Level); err != nil {
			return fmt.Errorf("set pin %d %v: %w", o.pin, pulse.Level, err)
		}
		p.Hold(pulse.Duration)
		n++
		return nil
	})
	if err != nil {
		log.Debugf("Transmission of %v aborted after %d pulses: %v", c, n, err)
		return err
	}
	log.Infof("Sent %v on pin %d (%d pulses, %v)", c, o.pin, n, time.Since(start))
	return nil
}

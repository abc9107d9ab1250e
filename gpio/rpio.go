//go:build !nogpio

package gpio

import (
	"github.com/speters/energyplus/energyplus"
	"github.com/stianeikeland/go-rpio/v4"
)

// rpioBackend maps the GPIO registers through /dev/gpiomem, or /dev/mem when run as root
type rpioBackend struct{}

func newBackend() backend { return rpioBackend{} }

func (rpioBackend) open() error { return rpio.Open() }
func (rpioBackend) close() error { return rpio.Close() }

func (rpioBackend) output(pin int) { rpio.Pin(pin).Output() }

func (rpioBackend) write(pin int, l energyplus.Level) {
	if l == energyplus.High {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}
}

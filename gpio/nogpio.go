//go:build nogpio

package gpio

import (
	"errors"

	"github.com/speters/energyplus/energyplus"
)

type stubBackend struct{}

func newBackend() backend { return stubBackend{} }

func (stubBackend) open() error {
	return errors.New("built without GPIO support")
}
func (stubBackend) close() error { return nil }
func (stubBackend) output(pin int) {}
func (stubBackend) write(pin int, l energyplus.Level) {}

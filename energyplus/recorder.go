package energyplus

import (
	"fmt"
	"sync"
	"time"
)

// Recorder is a Driver that keeps the pulses written to its pins instead of
// driving hardware. Hold does not sleep.
type Recorder struct {
	mu       sync.Mutex
	claimed  map[int]bool
	pulses   []Pulse
	level    Level
	releases int
	opens    int

	// FailSetAfter makes Set fail once this many levels have been set. Zero disables it.
	FailSetAfter int
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{claimed: make(map[int]bool)}
}

func (r *Recorder) Open(pin int) (Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimed[pin] {
		return nil, fmt.Errorf("pin %d already claimed: %w", pin, ErrPinUnavailable)
	}
	r.claimed[pin] = true
	r.opens++
	return &recordedPin{r: r, pin: pin}, nil
}

// Pulses returns a copy of the pulses recorded so far
func (r *Recorder) Pulses() []Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Pulse(nil), r.pulses...)
}

// Level is the last level set on any pin
func (r *Recorder) Level() Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// Releases counts the releases that actually gave a pin back
func (r *Recorder) Releases() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.releases
}

// Opens counts successful claims
func (r *Recorder) Opens() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens
}

// Claimed reports whether pin is currently held
func (r *Recorder) Claimed(pin int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claimed[pin]
}

type recordedPin struct {
	r        *Recorder
	pin      int
	sets     int
	released bool
}

func (p *recordedPin) Set(l Level) error {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	if p.released {
		return fmt.Errorf("pin %d: set after release", p.pin)
	}
	if p.r.FailSetAfter > 0 && p.sets >= p.r.FailSetAfter {
		return fmt.Errorf("pin %d: injected failure after %d sets", p.pin, p.sets)
	}
	p.sets++
	p.r.level = l
	p.r.pulses = append(p.r.pulses, Pulse{Level: l})
	return nil
}

func (p *recordedPin) Hold(d time.Duration) {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	if n := len(p.r.pulses); n > 0 {
		p.r.pulses[n-1].Duration += d
	}
}

func (p *recordedPin) Release() error {
	p.r.mu.Lock()
	defer p.r.mu.Unlock()
	if p.released {
		return nil
	}
	p.released = true
	p.r.level = Low
	p.r.releases++
	delete(p.r.claimed, p.pin)
	return nil
}

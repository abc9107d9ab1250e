package energyplus

import "time"

// Protocol timing of the Energy+ plugs, measured from the original remote
const (
	AGCHigh    = 400 * time.Microsecond  // once, before the first repetition
	AGCLow     = 2210 * time.Microsecond // before every repetition
	PulseShort = 335 * time.Microsecond
	PulseLong  = 1190 * time.Microsecond
)

// RepeatCount is how many times a command is sent per transmission
const RepeatCount = 6

// PulseCount is the number of pulses in a full transmission of a command
const PulseCount = 1 + RepeatCount*(1+CommandLength*2)

// Level is the logic level of an output pin
type Level uint8

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// MarshalText lets pulse lists encode levels by name
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Pulse is a level held for at least Duration
type Pulse struct {
	Level    Level         `json:"level"`
	Duration time.Duration `json:"duration_ns"`
}

func (p Pulse) String() string {
	return p.Level.String() + " " + p.Duration.String()
}

// encode walks the pulses of a full transmission of c: the initial AGC pulse,
// then RepeatCount times the AGC low pulse followed by two pulses per bit.
// A '0' bit is a short high and a long low, a '1' bit a long high and a short low.
func encode(c Command, emit func(p Pulse) error) error {
	if err := emit(Pulse{High, AGCHigh}); err != nil {
		return err
	}
	for r := 0; r < RepeatCount; r++ {
		if err := emit(Pulse{Low, AGCLow}); err != nil {
			return err
		}
		for i, b := range c.bits {
			var hi, lo time.Duration
			switch b {
			case '0':
				hi, lo = PulseShort, PulseLong
			case '1':
				hi, lo = PulseLong, PulseShort
			default:
				return &SymbolError{Symbol: rune(b), Index: i}
			}
			if err := emit(Pulse{High, hi}); err != nil {
				return err
			}
			if err := emit(Pulse{Low, lo}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Frame returns the pulses a transmission of c puts on the pin
func Frame(c Command) ([]Pulse, error) {
	pulses := make([]Pulse, 0, PulseCount)
	err := encode(c, func(p Pulse) error {
		pulses = append(pulses, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pulses, nil
}

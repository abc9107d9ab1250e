// Package energyplus encodes commands for Energy+ remote controlled power plugs
// into the pulse train of an on-off keyed 433 MHz transmitter.
package energyplus

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// CommandLength is the number of bits in an Energy+ command sequence
const CommandLength = 25

var (
	ErrInvalidCommandLength = errors.New("invalid command length")
	ErrInvalidSymbol        = errors.New("invalid symbol in command")
)

// CommandLengthError reports a command string that is not CommandLength bits long
type CommandLengthError struct {
	Length int
}

func (e *CommandLengthError) Error() string {
	return fmt.Sprintf("command is %d bits long, want %d", e.Length, CommandLength)
}

func (e *CommandLengthError) Is(target error) bool { return target == ErrInvalidCommandLength }

// SymbolError reports a character other than '0' or '1' at Index
type SymbolError struct {
	Symbol rune
	Index  int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d in command", e.Symbol, e.Index)
}

func (e *SymbolError) Is(target error) bool { return target == ErrInvalidSymbol }

// Command is a validated 25 bit command sequence, one '0' or '1' byte per bit.
// The zero value is not a valid command; use ParseCommand.
type Command struct {
	bits [CommandLength]byte
}

// ParseCommand checks s and returns it as a Command.
// Length is counted in characters, so multi-byte input is reported with its visible length.
func ParseCommand(s string) (Command, error) {
	var c Command

	if n := utf8.RuneCountInString(s); n != CommandLength {
		return c, &CommandLengthError{Length: n}
	}
	i := 0
	for _, r := range s {
		if r != '0' && r != '1' {
			return c, &SymbolError{Symbol: r, Index: i}
		}
		c.bits[i] = byte(r)
		i++
	}
	return c, nil
}

func (c Command) String() string {
	return string(c.bits[:])
}

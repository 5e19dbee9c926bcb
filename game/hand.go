package game

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	PLAY_OPTION_EVEN = 1
	PLAY_OPTION_ODD  = 2

	MIN_VALUE = 1
	MAX_VALUE = 5
)

// Parity is the slot a play goes into
type Parity string

const (
	Even Parity = "Even"
	Odd  Parity = "Odd"
)

// HandPlayed is a validated guess: a parity and the number shown
type HandPlayed struct {
	parity Parity
	value  uint8
}

// New builds a HandPlayed from an option code (1 Even, 2 Odd) and a value.
// The range is checked before the option code.
func New(option uint8, value uint8) (HandPlayed, error) {
	if value < MIN_VALUE || value > MAX_VALUE {
		return HandPlayed{}, &OutOfRangeError{Value: value}
	}

	switch option {
	case PLAY_OPTION_EVEN:
		return HandPlayed{parity: Even, value: value}, nil
	case PLAY_OPTION_ODD:
		return HandPlayed{parity: Odd, value: value}, nil
	default:
		return HandPlayed{}, &InvalidOptionError{Option: option}
	}
}

// FromText parses both tokens as unsigned 8 bit integers and calls New
func FromText(option, value string) (HandPlayed, error) {
	o, err := parseUint8(option)
	if err != nil {
		return HandPlayed{}, err
	}
	v, err := parseUint8(value)
	if err != nil {
		return HandPlayed{}, err
	}
	return New(o, v)
}

// parseUint8 accepts one leading '+' before the digits
func parseUint8(s string) (uint8, error) {
	if len(s) > 1 && s[0] == '+' && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, &ParseArgumentError{Cause: numErr.Err.Error()}
		}
		return 0, &ParseArgumentError{Cause: err.Error()}
	}
	return uint8(n), nil
}

// Parity returns which slot the play belongs to
func (h HandPlayed) Parity() Parity {
	return h.parity
}

// Value returns the number carried by the play, whatever its parity
func (h HandPlayed) Value() uint8 {
	return h.value
}

func (h HandPlayed) String() string {
	return fmt.Sprintf("%s(%d)", h.parity, h.value)
}

// MarshalText renders the play the way String does, e.g. "Odd(2)"
func (h HandPlayed) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func valueIsEven(v int) bool {
	return v%2 == 0
}

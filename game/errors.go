package game

import (
	"errors"
	"fmt"
)

// ErrAlreadyContainAddress is returned when an address tries to play twice in one round
var ErrAlreadyContainAddress = errors.New("The game already contain your play. Wait for other player.")

// InvalidOptionError is returned for an option code other than 1 or 2
type InvalidOptionError struct {
	Option uint8
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("%d is not a valid option. The options are: 1 for Even and 2 for Odd", e.Option)
}

// OutOfRangeError is returned for a value outside [1,5]
type OutOfRangeError struct {
	Value uint8
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%d is out of range. The number must be from 1 to 5.", e.Value)
}

// PlayOptionTakenError is returned when the slot for a parity already holds another player
type PlayOptionTakenError struct {
	Play HandPlayed
}

func (e *PlayOptionTakenError) Error() string {
	return fmt.Sprintf("You tried to play '%s' but this play option was already taken. Choose the other.", e.Play)
}

// MissingPlayError is returned when a winner is asked for before both slots are filled.
// Play carries the missing parity with a zero value.
type MissingPlayError struct {
	Play HandPlayed
}

func (e *MissingPlayError) Error() string {
	return fmt.Sprintf("Cannot guess now, Missing the player option: %s.", e.Play)
}

// ParseArgumentError is returned when a token is not an unsigned 8 bit integer
type ParseArgumentError struct {
	Cause string
}

func (e *ParseArgumentError) Error() string {
	if e.Cause == "" {
		return "Error parsing arguments."
	}
	return fmt.Sprintf("Error parsing arguments. Cause: %s", e.Cause)
}

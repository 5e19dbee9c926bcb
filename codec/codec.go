// Package codec turns request datagrams into plays.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jbarratt/oddeven/game"
)

// ArgumentCountMessage is the text sent when a payload does not hold exactly two tokens
const ArgumentCountMessage = "You must pass exactly 2 arguments."

// ParsingError is returned when a payload is not valid text or has the wrong shape
type ParsingError struct {
	Description string
}

func (e *ParsingError) Error() string {
	return e.Description
}

// Decode reads "<option_code> <value>" from a payload.
// Errors from game validation are returned unchanged.
func Decode(payload []byte) (game.HandPlayed, error) {
	if !utf8.Valid(payload) {
		return game.HandPlayed{}, &ParsingError{Description: invalidUTF8(payload)}
	}

	tokens := strings.Fields(string(payload))
	if len(tokens) != 2 {
		return game.HandPlayed{}, &ParsingError{Description: ArgumentCountMessage}
	}

	return game.FromText(tokens[0], tokens[1])
}

// invalidUTF8 describes the first bad sequence in payload: its length when it
// is invalid, or where it starts when the payload ends inside it.
func invalidUTF8(payload []byte) string {
	for i := 0; i < len(payload); {
		r, size := utf8.DecodeRune(payload[i:])
		if r != utf8.RuneError || size > 1 {
			i += size
			continue
		}
		n, complete := badSequenceLen(payload[i:])
		if !complete {
			return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", i)
		}
		return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", n, i)
	}
	return "invalid utf-8 sequence"
}

// badSequenceLen counts the bytes of b that start a sequence before the first
// byte that cannot continue it. complete is false when b ends first.
func badSequenceLen(b []byte) (n int, complete bool) {
	width := 0
	lo, hi := byte(0x80), byte(0xBF)
	switch first := b[0]; {
	case first >= 0xC2 && first <= 0xDF:
		width = 2
	case first == 0xE0:
		width, lo = 3, 0xA0
	case first == 0xED:
		width, hi = 3, 0x9F
	case first >= 0xE1 && first <= 0xEF:
		width = 3
	case first == 0xF0:
		width, lo = 4, 0x90
	case first >= 0xF1 && first <= 0xF3:
		width = 4
	case first == 0xF4:
		width, hi = 4, 0x8F
	default:
		return 1, true
	}

	for k := 1; k < width; k++ {
		if k >= len(b) {
			return 0, false
		}
		if k > 1 {
			lo, hi = 0x80, 0xBF
		}
		if b[k] < lo || b[k] > hi {
			return k, true
		}
	}
	return width, true
}

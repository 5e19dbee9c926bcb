package codec

import (
	"fmt"
	"testing"

	"github.com/jbarratt/oddeven/game"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	h, err := Decode([]byte("1 3"))
	require.NoError(t, err)
	require.Equal(t, game.Even, h.Parity())
	require.Equal(t, uint8(3), h.Value())

	// a line typed in a terminal carries its newline
	h, err = Decode([]byte("  2\t5\n"))
	require.NoError(t, err)
	require.Equal(t, "Odd(5)", h.String())
}

func encode(h game.HandPlayed) []byte {
	option := game.PLAY_OPTION_EVEN
	if h.Parity() == game.Odd {
		option = game.PLAY_OPTION_ODD
	}
	return []byte(fmt.Sprintf("%d %d", option, h.Value()))
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, option := range []uint8{game.PLAY_OPTION_EVEN, game.PLAY_OPTION_ODD} {
		for v := uint8(game.MIN_VALUE); v <= game.MAX_VALUE; v++ {
			want, err := game.New(option, v)
			require.NoError(t, err)

			got, err := Decode(encode(want))
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Equal(t, want.String(), got.String())
		}
	}
}

func TestDecodeArgumentCount(t *testing.T) {
	for _, payload := range []string{"", "   ", "1", "1 2 3", "1 2 3 4", "\n"} {
		_, err := Decode([]byte(payload))
		require.Equal(t, &ParsingError{Description: ArgumentCountMessage}, err, "payload %q", payload)
		require.EqualError(t, err, "You must pass exactly 2 arguments.")
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    string
	}{
		{name: "stray continuation", payload: []byte{'1', ' ', 0xff}, want: "invalid utf-8 sequence of 1 bytes from index 2"},
		{name: "lead byte at start", payload: []byte{0xff, 0xfe}, want: "invalid utf-8 sequence of 1 bytes from index 0"},
		{name: "four byte sequence broken at the end", payload: []byte("1 \xf0\x90\x80A"), want: "invalid utf-8 sequence of 3 bytes from index 2"},
		{name: "three byte sequence broken after two", payload: []byte("1 \xe2\x82A"), want: "invalid utf-8 sequence of 2 bytes from index 2"},
		{name: "surrogate", payload: []byte("1 \xed\xa0\x80"), want: "invalid utf-8 sequence of 1 bytes from index 2"},
		{name: "overlong", payload: []byte("1 \xc0\x80"), want: "invalid utf-8 sequence of 1 bytes from index 2"},
		{name: "truncated three byte sequence", payload: []byte("1 \xe2\x82"), want: "incomplete utf-8 byte sequence from index 2"},
		{name: "truncated four byte sequence", payload: []byte("\xf0\x9f"), want: "incomplete utf-8 byte sequence from index 0"},
		{name: "after valid multibyte text", payload: []byte("é \x80"), want: "invalid utf-8 sequence of 1 bytes from index 3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.payload)
			var parsing *ParsingError
			require.ErrorAs(t, err, &parsing)
			require.Equal(t, tc.want, parsing.Description)
		})
	}
}

func TestDecodeSurfacesGameErrors(t *testing.T) {
	_, err := Decode([]byte("3 1"))
	require.Equal(t, &game.InvalidOptionError{Option: 3}, err)
	require.EqualError(t, err, "3 is not a valid option. The options are: 1 for Even and 2 for Odd")

	_, err = Decode([]byte("1 9"))
	require.Equal(t, &game.OutOfRangeError{Value: 9}, err)
	require.EqualError(t, err, "9 is out of range. The number must be from 1 to 5.")

	_, err = Decode([]byte("one 1"))
	require.EqualError(t, err, "Error parsing arguments. Cause: invalid syntax")
}

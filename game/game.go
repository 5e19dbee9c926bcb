// package game implements the core logic of odd or even
package game

// Player stores the address a play came from and the play itself
type Player[A comparable] struct {
	addr A
	hand HandPlayed
}

// NewPlayer pairs an address with its play
func NewPlayer[A comparable](play HandPlayed, address A) *Player[A] {
	return &Player[A]{addr: address, hand: play}
}

// Address returns where the play came from
func (p Player[A]) Address() A {
	return p.addr
}

// Play returns the hand the player submitted
func (p Player[A]) Play() HandPlayed {
	return p.hand
}

// Value returns the number the player showed
func (p Player[A]) Value() uint8 {
	return p.hand.value
}

// Game holds the current round: at most one Even and one Odd player
type Game[A comparable] struct {
	even *Player[A]
	odd  *Player[A]
}

// RoundResult points at the players of the current round.
// It is only valid until the next Reset.
type RoundResult[A comparable] struct {
	Winner *Player[A]
	Loser  *Player[A]
}

// Sum adds both players' values
func (r RoundResult[A]) Sum() int {
	return int(r.Winner.Value()) + int(r.Loser.Value())
}

// NewGame returns an empty round
func NewGame[A comparable]() *Game[A] {
	return &Game[A]{}
}

// AddPlay puts the play in the slot matching its parity.
// An address that already played this round is rejected first, whichever slot it holds.
func (g *Game[A]) AddPlay(play HandPlayed, address A) error {
	if g.ContainAddress(address) {
		return ErrAlreadyContainAddress
	}

	switch play.parity {
	case Even:
		if g.even == nil {
			g.even = NewPlayer(play, address)
			return nil
		}
	case Odd:
		if g.odd == nil {
			g.odd = NewPlayer(play, address)
			return nil
		}
	}

	return &PlayOptionTakenError{Play: play}
}

// ContainAddress reports whether either filled slot belongs to address
func (g *Game[A]) ContainAddress(address A) bool {
	if g.even != nil && g.even.addr == address {
		return true
	}
	return g.odd != nil && g.odd.addr == address
}

// CanGuess is true once both slots are filled
func (g *Game[A]) CanGuess() bool {
	return g.even != nil && g.odd != nil
}

// GuessWinner sums both values. An even sum makes the Even player the winner,
// an odd sum the Odd player. It does not reset the round.
func (g *Game[A]) GuessWinner() (RoundResult[A], error) {
	if g.even == nil {
		return RoundResult[A]{}, &MissingPlayError{Play: HandPlayed{parity: Even}}
	}
	if g.odd == nil {
		return RoundResult[A]{}, &MissingPlayError{Play: HandPlayed{parity: Odd}}
	}

	if valueIsEven(int(g.even.hand.value) + int(g.odd.hand.value)) {
		return RoundResult[A]{Winner: g.even, Loser: g.odd}, nil
	}
	return RoundResult[A]{Winner: g.odd, Loser: g.even}, nil
}

// Reset clears both slots
func (g *Game[A]) Reset() {
	g.even = nil
	g.odd = nil
}

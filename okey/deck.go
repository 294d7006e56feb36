package okey

import (
	rand "math/rand/v2"
)

// NumPlayers is the number of seats in a round.
const NumPlayers = 4

const (
	// HandSize is the tiles every seat holds.
	HandSize = 14
	// FirstHandSize is the tiles the first seat holds before its opening
	// discard.
	FirstHandSize = 15
)

// TilesPerPlayer is the opening deal for each seat.
var TilesPerPlayer = [NumPlayers]int{FirstHandSize, HandSize, HandSize, HandSize}

// Deck is the full 106-tile set. Tiles are consumed front to back after
// shuffling; the undealt remainder forms the draw pile.
type Deck struct {
	tiles [DeckSize]Tile
	next  int
	rng   *rand.Rand
}

// NewDeck returns the full tile set, shuffled with the given rng. If rng
// is nil the global rand source is used.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for c := 0; c < TileCopies; c++ {
		for id := Tile(0); id <= FakeOkey; id++ {
			d.tiles[i] = id
			i++
		}
	}
	d.Shuffle()
	return d
}

// Shuffle reshuffles the complete set and rewinds the deal position.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.tiles) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.tiles[i], d.tiles[j] = d.tiles[j], d.tiles[i]
	}
}

// Reset is an alias for Shuffle, returning every dealt tile to the deck.
func (d *Deck) Reset() {
	d.Shuffle()
}

// Deal removes and returns the next n tiles.
func (d *Deck) Deal(n int) (Hand, error) {
	if n < 0 || d.next+n > len(d.tiles) {
		return nil, &InsufficientTilesError{Need: n, Have: d.Remaining()}
	}
	hand := make(Hand, n)
	copy(hand, d.tiles[d.next:d.next+n])
	d.next += n
	return hand, nil
}

// Draw removes and returns the next single tile.
func (d *Deck) Draw() (Tile, error) {
	if d.next >= len(d.tiles) {
		return 0, &InsufficientTilesError{Need: 1, Have: 0}
	}
	t := d.tiles[d.next]
	d.next++
	return t, nil
}

// Remaining returns the number of undealt tiles.
func (d *Deck) Remaining() int {
	return len(d.tiles) - d.next
}

// Rest returns a copy of the undealt tiles in deal order.
func (d *Deck) Rest() Hand {
	rest := make(Hand, d.Remaining())
	copy(rest, d.tiles[d.next:])
	return rest
}

// DealHands deals the four opening hands, 15 tiles to the first seat and
// 14 to each of the others.
func (d *Deck) DealHands() ([NumPlayers]Hand, error) {
	var hands [NumPlayers]Hand
	for seat, n := range TilesPerPlayer {
		hand, err := d.Deal(n)
		if err != nil {
			return hands, err
		}
		hands[seat] = hand
	}
	return hands, nil
}

// DrawIndicator removes and returns the indicator (gösterge) tile: the
// first undealt tile that is not a fake okey. Skipped fakes stay in the
// draw pile.
func (d *Deck) DrawIndicator() (Tile, error) {
	for i := d.next; i < len(d.tiles); i++ {
		if d.tiles[i].IsFake() {
			continue
		}
		t := d.tiles[i]
		d.tiles[i] = d.tiles[d.next]
		d.tiles[d.next] = t
		d.next++
		return t, nil
	}
	return 0, &InsufficientTilesError{Need: 1, Have: 0}
}

// OkeyFor derives the round's okey from the indicator tile: same color,
// one number higher, with 13 wrapping back to 1.
func OkeyFor(indicator Tile) (Tile, error) {
	c, err := indicator.Color()
	if err != nil {
		return 0, err
	}
	n, _ := indicator.Number()
	if n == NumbersPerColor {
		n = 1
	} else {
		n++
	}
	return NewTile(c, n)
}

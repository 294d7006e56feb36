// Package okey implements the tile set, dealing and hand evaluation rules
// for a single round of okey. A round uses 106 tiles: two copies of every
// color/number face plus two fake okeys. The indicator tile decides which
// face plays as the okey (the round's wild tile).
package okey

import (
	"fmt"
	"sort"
	"strings"
)

// Color identifies one of the four tile colors.
type Color uint8

const (
	Yellow Color = iota
	Blue
	Black
	Red
)

// NumColors is the number of tile colors.
const NumColors = 4

func (c Color) String() string {
	switch c {
	case Yellow:
		return "Yellow"
	case Blue:
		return "Blue"
	case Black:
		return "Black"
	case Red:
		return "Red"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Letter returns the single-letter color code used in compact tile
// notation. Black is K so that Blue keeps B.
func (c Color) Letter() string {
	switch c {
	case Yellow:
		return "Y"
	case Blue:
		return "B"
	case Black:
		return "K"
	case Red:
		return "R"
	}
	return "?"
}

const (
	// NumbersPerColor is the highest tile number in each color.
	NumbersPerColor = 13

	// NumFaces is the number of distinct color/number faces.
	NumFaces = NumColors * NumbersPerColor

	// TileCopies is how many copies of each tile the full set holds.
	TileCopies = 2

	// DeckSize is the size of the full tile set, fake okeys included.
	DeckSize = (NumFaces + 1) * TileCopies
)

// Tile is a single okey tile, encoded as an id in [0, 52]. Ids 0-51 encode
// color and number as color*13 + number - 1, so Yellow runs 0-12, Blue
// 13-25, Black 26-38 and Red 39-51. Id 52 is the fake okey (sahte okey),
// which has no color or number of its own.
type Tile uint8

// FakeOkey is the id of the fake okey tile.
const FakeOkey Tile = NumFaces

// NewTile builds a tile from a color and a number in [1, 13].
func NewTile(c Color, number int) (Tile, error) {
	if c >= NumColors {
		return 0, fmt.Errorf("invalid tile color %d", c)
	}
	if number < 1 || number > NumbersPerColor {
		return 0, fmt.Errorf("invalid tile number %d", number)
	}
	return Tile(int(c)*NumbersPerColor + number - 1), nil
}

// Valid reports whether the id is one of the 53 legal tile ids.
func (t Tile) Valid() bool {
	return t <= FakeOkey
}

// IsFake reports whether the tile is the fake okey.
func (t Tile) IsFake() bool {
	return t == FakeOkey
}

// Color returns the tile's color. The fake okey has none.
func (t Tile) Color() (Color, error) {
	if !t.Valid() || t.IsFake() {
		return 0, &InvalidTileError{ID: int(t)}
	}
	return Color(t / NumbersPerColor), nil
}

// Number returns the tile's number in [1, 13]. The fake okey has none.
func (t Tile) Number() (int, error) {
	if !t.Valid() || t.IsFake() {
		return 0, &InvalidTileError{ID: int(t)}
	}
	return int(t%NumbersPerColor) + 1, nil
}

// String renders the tile in compact notation, such as "Y4" or "K13". The
// fake okey renders as "F".
func (t Tile) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tile(%d)", uint8(t))
	}
	if t.IsFake() {
		return "F"
	}
	c, _ := t.Color()
	n, _ := t.Number()
	return fmt.Sprintf("%s%d", c.Letter(), n)
}

// Hand is a player's tiles. Order carries no meaning; evaluation treats a
// hand as a multiset.
type Hand []Tile

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, t := range h {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Sorted returns a copy of the hand ordered by id, fake okeys last.
func (h Hand) Sorted() Hand {
	out := h.Clone()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

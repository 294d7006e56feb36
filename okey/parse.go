package okey

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTile parses compact tile notation: a color letter (Y, B, K or R)
// followed by a number in [1, 13], or "F" for the fake okey. Parsing is
// case-insensitive.
func ParseTile(s string) (Tile, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid tile %q", s)
	}
	upper := strings.ToUpper(s)
	if upper == "F" {
		return FakeOkey, nil
	}
	var color Color
	switch upper[0] {
	case 'Y':
		color = Yellow
	case 'B':
		color = Blue
	case 'K':
		color = Black
	case 'R':
		color = Red
	default:
		return 0, fmt.Errorf("invalid tile color in %q", s)
	}
	number, err := strconv.Atoi(upper[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid tile number in %q", s)
	}
	if number < 1 || number > NumbersPerColor {
		return 0, fmt.Errorf("tile number %d out of range in %q", number, s)
	}
	t, err := NewTile(color, number)
	if err != nil {
		return 0, fmt.Errorf("invalid tile %q: %w", s, err)
	}
	return t, nil
}

// ParseTiles parses a whitespace or comma separated list of tiles, such as
// "Y4 Y5 Y6" or "B13,F,R1".
func ParseTiles(s string) (Hand, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no tiles in %q", s)
	}
	hand := make(Hand, 0, len(fields))
	for _, f := range fields {
		t, err := ParseTile(f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, t)
	}
	return hand, nil
}

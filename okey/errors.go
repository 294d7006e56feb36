package okey

import "fmt"

// InvalidTileError reports a tile id outside the legal range, or a color
// or number request on the fake okey.
type InvalidTileError struct {
	ID int
}

func (e *InvalidTileError) Error() string {
	return fmt.Sprintf("invalid tile id %d", e.ID)
}

// InvalidHandSizeError reports a hand that is not 14 or 15 tiles.
type InvalidHandSizeError struct {
	Size int
}

func (e *InvalidHandSizeError) Error() string {
	return fmt.Sprintf("invalid hand size %d, want 14 or 15 tiles", e.Size)
}

// InsufficientTilesError reports a draw that asked for more tiles than the
// deck has left.
type InsufficientTilesError struct {
	Need int
	Have int
}

func (e *InsufficientTilesError) Error() string {
	return fmt.Sprintf("insufficient tiles: need %d, have %d", e.Need, e.Have)
}

package okey

import "fmt"

// RunLength is the fixed size of a run group.
const RunLength = 3

// GroupKind distinguishes the two legal group shapes.
type GroupKind uint8

const (
	// RunGroup is three consecutive numbers in one color, with at most
	// one tile substituted by a wild. Runs never wrap: 12-13-1 is not a
	// run.
	RunGroup GroupKind = iota
	// PairGroup is two tiles of the same face, one tile plus a wild, or
	// two wilds.
	PairGroup
)

func (k GroupKind) String() string {
	switch k {
	case RunGroup:
		return "run"
	case PairGroup:
		return "pair"
	}
	return fmt.Sprintf("GroupKind(%d)", uint8(k))
}

// Group is one scored group of tiles from a hand.
type Group struct {
	Kind  GroupKind
	Tiles Hand
}

func (g Group) String() string {
	return fmt.Sprintf("%s[%s]", g.Kind, g.Tiles)
}

// Result is a best grouping of a hand. The groups and the ungrouped tiles
// together hold exactly the tiles that were evaluated.
type Result struct {
	Groups    []Group
	Ungrouped Hand
}

// UngroupedCount is the hand's score for the round: lower is better, and
// zero means the hand goes out.
func (r *Result) UngroupedCount() int {
	return len(r.Ungrouped)
}

// Runs counts the run groups in the result.
func (r *Result) Runs() int {
	runs := 0
	for _, g := range r.Groups {
		if g.Kind == RunGroup {
			runs++
		}
	}
	return runs
}

// Pairs counts the pair groups in the result.
func (r *Result) Pairs() int {
	return len(r.Groups) - r.Runs()
}

// Evaluator scores hands for one round, fixed by the round's okey and by
// the face the fake okey plays.
type Evaluator struct {
	okey     Tile
	fakeFace Tile
}

// NewEvaluator returns an evaluator for a round played under the standard
// rule: the fake okey stands in for the okey tile and is therefore wild.
func NewEvaluator(okey Tile) (*Evaluator, error) {
	return NewEvaluatorFakeFace(okey, okey)
}

// NewEvaluatorFakeFace pins the fake okey to a specific face. The fake is
// wild only when that face is the okey itself; otherwise it plays as an
// ordinary tile of the pinned face and groups only by exact face match.
func NewEvaluatorFakeFace(okey, fakeFace Tile) (*Evaluator, error) {
	if !okey.Valid() || okey.IsFake() {
		return nil, &InvalidTileError{ID: int(okey)}
	}
	if !fakeFace.Valid() || fakeFace.IsFake() {
		return nil, &InvalidTileError{ID: int(fakeFace)}
	}
	return &Evaluator{okey: okey, fakeFace: fakeFace}, nil
}

// Okey returns the round's okey tile.
func (e *Evaluator) Okey() Tile {
	return e.okey
}

// FakeFace returns the face the fake okey plays this round.
func (e *Evaluator) FakeFace() Tile {
	return e.fakeFace
}

// IsWild reports whether the tile plays as a wild this round.
func (e *Evaluator) IsWild(t Tile) bool {
	if t.IsFake() {
		return e.fakeFace == e.okey
	}
	return t == e.okey
}

// face maps a tile to the face it plays: fakes play their pinned face,
// every other tile plays itself.
func (e *Evaluator) face(t Tile) Tile {
	if t.IsFake() {
		return e.fakeFace
	}
	return t
}

// Evaluate finds a grouping of the hand that leaves the fewest tiles
// ungrouped. Among minimal groupings it prefers the one with the most
// runs. Hands must hold 14 or 15 tiles.
func (e *Evaluator) Evaluate(hand Hand) (*Result, error) {
	if len(hand) != HandSize && len(hand) != FirstHandSize {
		return nil, &InvalidHandSizeError{Size: len(hand)}
	}

	// Bucket tiles by the face they play. Wilds join a shared pool that
	// any color may draw from.
	var cells [NumFaces][]Tile
	var wilds []Tile
	for _, t := range hand {
		if !t.Valid() {
			return nil, &InvalidTileError{ID: int(t)}
		}
		if e.IsWild(t) {
			wilds = append(wilds, t)
			continue
		}
		cells[e.face(t)] = append(cells[e.face(t)], t)
	}

	var searchers [NumColors]*colorSearcher
	for c := range searchers {
		var counts [NumbersPerColor + 3]int
		for n := 1; n <= NumbersPerColor; n++ {
			counts[n] = len(cells[c*NumbersPerColor+n-1])
		}
		searchers[c] = newColorSearcher(counts)
	}

	// Try every split of the wild pool across the four colors. Budgets
	// are upper bounds, so a color is free to leave its share unspent;
	// wilds held back from every color pair among themselves.
	budget := len(wilds)
	var (
		bestScore score
		bestSplit [NumColors]int
		first     = true
	)
	for y := 0; y <= budget; y++ {
		for b := 0; y+b <= budget; b++ {
			for k := 0; y+b+k <= budget; k++ {
				for r := 0; y+b+k+r <= budget; r++ {
					split := [NumColors]int{y, b, k, r}
					var total score
					for c, cs := range searchers {
						total = total.plus(cs.best(split[c]))
					}
					wildPairs := (budget - y - b - k - r) / 2
					total.grouped += 2 * wildPairs
					if first || total.beats(bestScore) {
						first = false
						bestScore = total
						bestSplit = split
					}
				}
			}
		}
	}

	return reconstruct(cells, wilds, searchers, bestSplit), nil
}

// reconstruct turns the winning per-color plans back into groups of the
// physical tiles that were dealt, consuming each face bucket front to
// back.
func reconstruct(cells [NumFaces][]Tile, wilds []Tile, searchers [NumColors]*colorSearcher, split [NumColors]int) *Result {
	takeFace := func(c Color, n int) Tile {
		f := int(c)*NumbersPerColor + n - 1
		t := cells[f][0]
		cells[f] = cells[f][1:]
		return t
	}
	takeWild := func() Tile {
		t := wilds[0]
		wilds = wilds[1:]
		return t
	}

	res := &Result{}
	for c := range searchers {
		color := Color(c)
		for _, step := range searchers[c].plan(split[c]) {
			emitRun := func(wildPos int) {
				tiles := make(Hand, 0, RunLength)
				for pos := 0; pos < RunLength; pos++ {
					if pos == wildPos {
						tiles = append(tiles, takeWild())
					} else {
						tiles = append(tiles, takeFace(color, step.number+pos))
					}
				}
				res.Groups = append(res.Groups, Group{Kind: RunGroup, Tiles: tiles})
			}
			for i := 0; i < step.choice.plain; i++ {
				emitRun(-1)
			}
			for i := 0; i < step.choice.wildLow; i++ {
				emitRun(0)
			}
			for i := 0; i < step.choice.wildMid; i++ {
				emitRun(1)
			}
			for i := 0; i < step.choice.wildHigh; i++ {
				emitRun(2)
			}
			for i := 0; i < step.pairs; i++ {
				pair := Hand{takeFace(color, step.number), takeFace(color, step.number)}
				res.Groups = append(res.Groups, Group{Kind: PairGroup, Tiles: pair})
			}
			if step.choice.pairWild {
				pair := Hand{takeFace(color, step.number), takeWild()}
				res.Groups = append(res.Groups, Group{Kind: PairGroup, Tiles: pair})
			}
		}
	}
	for len(wilds) >= 2 {
		res.Groups = append(res.Groups, Group{Kind: PairGroup, Tiles: Hand{takeWild(), takeWild()}})
	}
	for f := 0; f < NumFaces; f++ {
		res.Ungrouped = append(res.Ungrouped, cells[f]...)
	}
	res.Ungrouped = append(res.Ungrouped, wilds...)
	return res
}

package okey

import (
	"errors"
	"testing"
)

func mustParseTiles(t testing.TB, s string) Hand {
	t.Helper()
	hand, err := ParseTiles(s)
	if err != nil {
		t.Fatalf("ParseTiles(%q): %v", s, err)
	}
	return hand
}

func mustParseTile(t testing.TB, s string) Tile {
	t.Helper()
	tile, err := ParseTile(s)
	if err != nil {
		t.Fatalf("ParseTile(%q): %v", s, err)
	}
	return tile
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		hand          string
		okey          string
		fakeFace      string // empty pins the fake to the okey's face
		wantUngrouped int
	}{
		{
			name:          "single run",
			hand:          "Y4 Y5 Y6 B1 B3 B5 B7 K2 K4 K6 K8 R1 R3 R5",
			okey:          "R13",
			wantUngrouped: 11,
		},
		{
			name:          "single pair",
			hand:          "B8 B8 Y1 Y3 Y5 Y7 K1 K3 K5 K7 R2 R4 R6 R8",
			okey:          "K13",
			wantUngrouped: 12,
		},
		{
			name:          "winning fourteen",
			hand:          "Y1 Y2 Y3 B5 B6 B7 K9 K10 K11 R1 R2 R3 K13 K13",
			okey:          "R13",
			wantUngrouped: 0,
		},
		{
			name:          "fifteen tiles one spare",
			hand:          "Y1 Y2 Y3 B5 B6 B7 K9 K10 K11 R1 R2 R3 K13 K13 Y9",
			okey:          "R13",
			wantUngrouped: 1,
		},
		{
			name:          "okey completes a run",
			hand:          "Y11 Y12 Y13 B1 B3 B5 B7 K2 K4 K6 K8 R1 R3 R5",
			okey:          "Y13",
			wantUngrouped: 11,
		},
		{
			name:          "okey fills the middle",
			hand:          "Y4 Y6 K13 B1 B3 B5 B7 R1 R3 R5 R7 K2 K4 K6",
			okey:          "K13",
			wantUngrouped: 11,
		},
		{
			name:          "wilds pair with unmatched tiles",
			hand:          "Y11 Y13 Y13 B1 B3 B5 B7 K2 K4 K6 K8 R1 R3 R5",
			okey:          "Y13",
			wantUngrouped: 10,
		},
		{
			name:          "runs never wrap",
			hand:          "Y12 Y13 Y1 B2 B4 B6 B8 K2 K4 K6 K8 R2 R4 R6",
			okey:          "K13",
			wantUngrouped: 14,
		},
		{
			name:          "unpinned fake plays the okey",
			hand:          "F B8 Y4 Y5 K1 K3 K5 K7 R1 R3 R5 R7 B1 B3",
			okey:          "Y6",
			wantUngrouped: 11,
		},
		{
			name:          "pinned fake groups by face only",
			hand:          "F B8 Y4 Y5 K1 K3 K5 K7 R1 R3 R5 R7 B1 B3",
			okey:          "Y6",
			fakeFace:      "B8",
			wantUngrouped: 12,
		},
		{
			name:          "four copies make two pairs",
			hand:          "B8 B8 F F Y1 Y3 K1 K3 K5 K7 R1 R3 R5 R7",
			okey:          "Y6",
			fakeFace:      "B8",
			wantUngrouped: 10,
		},
		{
			name:          "two wild fakes pair together",
			hand:          "Y1 Y2 Y3 B1 B2 B3 K1 K2 K3 R1 R2 R3 F F",
			okey:          "Y6",
			wantUngrouped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand := mustParseTiles(t, tt.hand)
			before := hand.String()
			ev := newTestEvaluator(t, tt.okey, tt.fakeFace)
			res, err := ev.Evaluate(hand)
			if err != nil {
				t.Fatalf("Evaluate(): %v", err)
			}
			if res.UngroupedCount() != tt.wantUngrouped {
				t.Errorf("UngroupedCount() = %d, want %d\ngroups: %v\nungrouped: %v",
					res.UngroupedCount(), tt.wantUngrouped, res.Groups, res.Ungrouped)
			}
			if hand.String() != before {
				t.Errorf("Evaluate() mutated the hand: %s became %s", before, hand)
			}
			assertResultCoversHand(t, ev, hand, res)
		})
	}
}

func newTestEvaluator(t testing.TB, okey, fakeFace string) *Evaluator {
	t.Helper()
	okeyTile := mustParseTile(t, okey)
	if fakeFace == "" {
		ev, err := NewEvaluator(okeyTile)
		if err != nil {
			t.Fatalf("NewEvaluator(%s): %v", okeyTile, err)
		}
		return ev
	}
	ev, err := NewEvaluatorFakeFace(okeyTile, mustParseTile(t, fakeFace))
	if err != nil {
		t.Fatalf("NewEvaluatorFakeFace(%s, %s): %v", okey, fakeFace, err)
	}
	return ev
}

func TestEvaluatePrefersRuns(t *testing.T) {
	t.Parallel()

	// Three identical pairs group six tiles, but so do two parallel runs;
	// the evaluator must report the runs.
	hand := mustParseTiles(t, "Y1 Y1 Y2 Y2 Y3 Y3 B1 B3 B5 B7 K2 K4 R1 R3")
	ev := newTestEvaluator(t, "K13", "")
	res, err := ev.Evaluate(hand)
	if err != nil {
		t.Fatalf("Evaluate(): %v", err)
	}
	if res.UngroupedCount() != 8 {
		t.Fatalf("UngroupedCount() = %d, want 8", res.UngroupedCount())
	}
	if res.Runs() != 2 {
		t.Errorf("Runs() = %d, want 2 (groups: %v)", res.Runs(), res.Groups)
	}
	if res.Pairs() != 0 {
		t.Errorf("Pairs() = %d, want 0 (groups: %v)", res.Pairs(), res.Groups)
	}
}

func TestEvaluateWinnerHandShape(t *testing.T) {
	t.Parallel()

	hand := mustParseTiles(t, "Y1 Y2 Y3 B5 B6 B7 K9 K10 K11 R1 R2 R3 K13 K13")
	ev := newTestEvaluator(t, "R13", "")
	res, err := ev.Evaluate(hand)
	if err != nil {
		t.Fatalf("Evaluate(): %v", err)
	}
	if res.Runs() != 4 || res.Pairs() != 1 {
		t.Errorf("got %d runs and %d pairs, want 4 and 1", res.Runs(), res.Pairs())
	}
}

func TestEvaluateHandSize(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t, "R13", "")
	for _, size := range []int{0, 1, 13, 16, 30} {
		hand := make(Hand, size)
		for i := range hand {
			hand[i] = Tile(i % NumFaces)
		}
		_, err := ev.Evaluate(hand)
		var sizeErr *InvalidHandSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("Evaluate() with %d tiles returned %v, want *InvalidHandSizeError", size, err)
		}
		if sizeErr.Size != size {
			t.Errorf("InvalidHandSizeError.Size = %d, want %d", sizeErr.Size, size)
		}
	}
}

func TestEvaluateInvalidTile(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator(t, "R13", "")
	hand := make(Hand, HandSize)
	for i := range hand {
		hand[i] = Tile(i)
	}
	hand[5] = Tile(53)
	_, err := ev.Evaluate(hand)
	var tileErr *InvalidTileError
	if !errors.As(err, &tileErr) {
		t.Fatalf("Evaluate() returned %v, want *InvalidTileError", err)
	}
	if tileErr.ID != 53 {
		t.Errorf("InvalidTileError.ID = %d, want 53", tileErr.ID)
	}
}

func TestNewEvaluatorRejectsBadTiles(t *testing.T) {
	t.Parallel()

	if _, err := NewEvaluator(FakeOkey); err == nil {
		t.Error("NewEvaluator(FakeOkey) should fail")
	}
	if _, err := NewEvaluator(Tile(53)); err == nil {
		t.Error("NewEvaluator(53) should fail")
	}
	if _, err := NewEvaluatorFakeFace(Tile(5), FakeOkey); err == nil {
		t.Error("a fake face of FakeOkey should fail")
	}
	if _, err := NewEvaluatorFakeFace(Tile(5), Tile(200)); err == nil {
		t.Error("an out of range fake face should fail")
	}
}

func TestIsWild(t *testing.T) {
	t.Parallel()

	okeyTile := mustParseTile(t, "B8")
	ev, err := NewEvaluator(okeyTile)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.IsWild(okeyTile) {
		t.Error("the okey tile must be wild")
	}
	if !ev.IsWild(FakeOkey) {
		t.Error("an unpinned fake must be wild")
	}
	if ev.IsWild(mustParseTile(t, "B7")) {
		t.Error("an ordinary tile must not be wild")
	}

	pinned, err := NewEvaluatorFakeFace(okeyTile, mustParseTile(t, "R4"))
	if err != nil {
		t.Fatal(err)
	}
	if pinned.IsWild(FakeOkey) {
		t.Error("a fake pinned away from the okey must not be wild")
	}
	if !pinned.IsWild(okeyTile) {
		t.Error("the okey tile stays wild regardless of the fake's face")
	}
}

// TestEvaluateReconstruction deals full rounds and checks that every
// result is a legal partition of the evaluated hand.
func TestEvaluateReconstruction(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 25; seed++ {
		deck := NewDeck(testRng(seed))
		hands, err := deck.DealHands()
		if err != nil {
			t.Fatal(err)
		}
		indicator, err := deck.DrawIndicator()
		if err != nil {
			t.Fatal(err)
		}
		okeyTile, err := OkeyFor(indicator)
		if err != nil {
			t.Fatal(err)
		}
		ev, err := NewEvaluator(okeyTile)
		if err != nil {
			t.Fatal(err)
		}
		for seat, hand := range hands {
			res, err := ev.Evaluate(hand)
			if err != nil {
				t.Fatalf("seed %d seat %d: %v", seed, seat, err)
			}
			assertResultCoversHand(t, ev, hand, res)
		}
	}
}

// assertResultCoversHand checks the partition invariant and the shape of
// every group.
func assertResultCoversHand(t *testing.T, ev *Evaluator, hand Hand, res *Result) {
	t.Helper()

	want := make(map[Tile]int)
	countTiles(want, hand)
	got := make(map[Tile]int)
	countTiles(got, res.Ungrouped)
	grouped := 0
	for _, g := range res.Groups {
		countTiles(got, g.Tiles)
		grouped += len(g.Tiles)
		assertGroupShape(t, ev, g)
	}
	if grouped+len(res.Ungrouped) != len(hand) {
		t.Errorf("groups and ungrouped cover %d tiles, hand holds %d", grouped+len(res.Ungrouped), len(hand))
	}
	for id, n := range want {
		if got[id] != n {
			t.Errorf("result holds %d copies of %s, hand holds %d", got[id], id, n)
		}
	}
	for id, n := range got {
		if want[id] != n {
			t.Errorf("result holds %d copies of %s, hand holds %d", n, id, want[id])
		}
	}
}

func assertGroupShape(t *testing.T, ev *Evaluator, g Group) {
	t.Helper()

	switch g.Kind {
	case PairGroup:
		if len(g.Tiles) != 2 {
			t.Fatalf("pair %v holds %d tiles", g, len(g.Tiles))
		}
		a, b := g.Tiles[0], g.Tiles[1]
		if ev.IsWild(a) || ev.IsWild(b) {
			return
		}
		if ev.face(a) != ev.face(b) {
			t.Errorf("pair %v joins different faces", g)
		}
	case RunGroup:
		if len(g.Tiles) != RunLength {
			t.Fatalf("run %v holds %d tiles", g, len(g.Tiles))
		}
		wilds := 0
		base := -1
		for i, tile := range g.Tiles {
			if ev.IsWild(tile) {
				wilds++
				continue
			}
			face := int(ev.face(tile))
			if base == -1 {
				base = face - i
			} else if face != base+i {
				t.Fatalf("run %v is not consecutive", g)
			}
		}
		if wilds > 1 {
			t.Fatalf("run %v uses %d wilds", g, wilds)
		}
		if base == -1 {
			t.Fatalf("run %v has no natural tile", g)
		}
		// The whole span must sit inside one color.
		low, high := Tile(base), Tile(base+RunLength-1)
		lowColor, err := low.Color()
		if err != nil {
			t.Fatalf("run %v starts outside the tile range", g)
		}
		highColor, err := high.Color()
		if err != nil || lowColor != highColor {
			t.Fatalf("run %v crosses a color boundary", g)
		}
	default:
		t.Fatalf("unknown group kind %d", g.Kind)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	hand := Hand{3, 4, 5, 13, 15, 17, 20, 20, 28, 30, 32, 45, 46, 52}
	ev, err := NewEvaluator(Tile(47))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Evaluate(hand); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateDealtHands(b *testing.B) {
	rng := testRng(99)
	for i := 0; i < b.N; i++ {
		deck := NewDeck(rng)
		hands, err := deck.DealHands()
		if err != nil {
			b.Fatal(err)
		}
		indicator, err := deck.DrawIndicator()
		if err != nil {
			b.Fatal(err)
		}
		okeyTile, err := OkeyFor(indicator)
		if err != nil {
			b.Fatal(err)
		}
		ev, err := NewEvaluator(okeyTile)
		if err != nil {
			b.Fatal(err)
		}
		for _, hand := range hands {
			if _, err := ev.Evaluate(hand); err != nil {
				b.Fatal(err)
			}
		}
	}
}

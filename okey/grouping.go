package okey

// score orders candidate groupings: most tiles grouped first, then most
// runs.
type score struct {
	grouped int
	runs    int
}

func (s score) plus(o score) score {
	return score{s.grouped + o.grouped, s.runs + o.runs}
}

func (s score) beats(o score) bool {
	if s.grouped != o.grouped {
		return s.grouped > o.grouped
	}
	return s.runs > o.runs
}

// colorSearcher finds, for the tiles of one color, the grouping that
// absorbs the most tiles within a wild budget. Numbers are settled in
// ascending order: once every run that could reach a number has been
// decided, its leftover tiles can only pair.
type colorSearcher struct {
	// counts[n] holds the tiles with face number n, 1-indexed, with two
	// zero pad slots so counts[n+2] is safe at the top edge.
	counts [NumbersPerColor + 3]int
	memo   map[searchKey]searchNode
}

type searchKey struct {
	number int
	at     int // tiles left at number
	above  int // tiles left at number+1
	wilds  int
}

// runChoice is the set of runs started at one number, split by the slot a
// wild fills, plus whether a leftover single pairs with a wild.
type runChoice struct {
	plain    int // no wild
	wildLow  int // wild plays the starting number
	wildMid  int // wild plays the middle number
	wildHigh int // wild plays the top number
	pairWild bool
}

type searchNode struct {
	value  score
	choice runChoice
}

func newColorSearcher(counts [NumbersPerColor + 3]int) *colorSearcher {
	return &colorSearcher{counts: counts, memo: make(map[searchKey]searchNode)}
}

// best returns the strongest score reachable with at most wilds wilds.
func (cs *colorSearcher) best(wilds int) score {
	return cs.solve(1, cs.counts[1], cs.counts[2], wilds).value
}

func (cs *colorSearcher) solve(number, at, above, wilds int) searchNode {
	if number > NumbersPerColor {
		return searchNode{}
	}
	key := searchKey{number, at, above, wilds}
	if node, ok := cs.memo[key]; ok {
		return node
	}

	twoUp := cs.counts[number+2]
	var maxPlain, maxLow, maxMid, maxHigh int
	if number <= NumbersPerColor-RunLength+1 {
		maxPlain = min(at, above, twoUp)
		maxLow = min(above, twoUp, wilds)
		maxMid = min(at, twoUp, wilds)
		maxHigh = min(at, above, wilds)
	}

	var best searchNode
	first := true
	for plain := 0; plain <= maxPlain; plain++ {
		for low := 0; low <= maxLow; low++ {
			for mid := 0; mid <= maxMid; mid++ {
				for high := 0; high <= maxHigh; high++ {
					useAt := plain + mid + high
					useAbove := plain + low + high
					useTwoUp := plain + low + mid
					wildUse := low + mid + high
					if useAt > at || useAbove > above || useTwoUp > twoUp || wildUse > wilds {
						continue
					}
					runs := plain + wildUse
					leftover := at - useAt
					pairs := leftover / 2
					single := leftover%2 == 1
					for _, pairWild := range pairWildOptions(single, wilds-wildUse) {
						spent := wildUse
						extra := 0
						if pairWild {
							spent++
							extra = 2
						}
						sub := cs.solve(number+1, above-useAbove, twoUp-useTwoUp, wilds-spent)
						cand := searchNode{
							value: score{
								grouped: sub.value.grouped + RunLength*runs + 2*pairs + extra,
								runs:    sub.value.runs + runs,
							},
							choice: runChoice{plain, low, mid, high, pairWild},
						}
						if first || cand.value.beats(best.value) {
							first = false
							best = cand
						}
					}
				}
			}
		}
	}
	cs.memo[key] = best
	return best
}

var (
	pairWildNever  = []bool{false}
	pairWildEither = []bool{false, true}
)

func pairWildOptions(single bool, wildsLeft int) []bool {
	if single && wildsLeft > 0 {
		return pairWildEither
	}
	return pairWildNever
}

// planStep is the settled decision at one number: the runs started there
// and the pairs taken from its leftover tiles.
type planStep struct {
	number int
	pairs  int // identical-face pairs
	choice runChoice
}

// plan replays the memoized choices for the given budget into the steps
// reconstruction follows.
func (cs *colorSearcher) plan(wilds int) []planStep {
	var steps []planStep
	number, at, above := 1, cs.counts[1], cs.counts[2]
	for number <= NumbersPerColor {
		node := cs.solve(number, at, above, wilds)
		ch := node.choice
		twoUp := cs.counts[number+2]
		useAt := ch.plain + ch.wildMid + ch.wildHigh
		useAbove := ch.plain + ch.wildLow + ch.wildHigh
		useTwoUp := ch.plain + ch.wildLow + ch.wildMid
		spent := ch.wildLow + ch.wildMid + ch.wildHigh
		if ch.pairWild {
			spent++
		}
		pairs := (at - useAt) / 2
		if ch != (runChoice{}) || pairs > 0 {
			steps = append(steps, planStep{number: number, pairs: pairs, choice: ch})
		}
		number, at, above, wilds = number+1, above-useAbove, twoUp-useTwoUp, wilds-spent
	}
	return steps
}

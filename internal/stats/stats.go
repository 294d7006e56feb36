// Package stats aggregates results across batches of simulated rounds.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/okeysim/okey"
)

// RoundSample is the outcome of a single simulated round.
type RoundSample struct {
	Seed   int64                // RNG seed for this round (for replay)
	Winner int                  // winning seat (0-3)
	Counts [okey.NumPlayers]int // ungrouped tiles per seat
}

// SeatStats tracks per-seat results across a batch.
type SeatStats struct {
	Rounds int
	Wins   int
	Sum    float64 // ungrouped counts
	Sum2   float64
}

// Statistics tracks batch-wide results. The headline series is the
// winner's ungrouped count per round: how close the best hand at the
// table came to going out.
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // All winning counts, for median/percentile calculation

	// Per-seat analytics
	Seats [okey.NumPlayers]SeatStats

	// Extremes
	ZeroRounds int   // rounds whose winner had no tiles left over
	BestCount  int   // lowest winning count observed
	BestSeed   int64 // seed that produced it
}

// Add incorporates one round's outcome into the statistics.
func (s *Statistics) Add(sample RoundSample) {
	count := sample.Counts[0]
	if sample.Winner >= 0 && sample.Winner < okey.NumPlayers {
		count = sample.Counts[sample.Winner]
	}
	value := float64(count)

	s.Rounds++
	s.Sum += value
	s.Sum2 += value * value
	s.Values = append(s.Values, value)

	for seat := range sample.Counts {
		c := float64(sample.Counts[seat])
		s.Seats[seat].Rounds++
		s.Seats[seat].Sum += c
		s.Seats[seat].Sum2 += c * c
	}
	if sample.Winner >= 0 && sample.Winner < okey.NumPlayers {
		s.Seats[sample.Winner].Wins++
	}

	if count == 0 {
		s.ZeroRounds++
	}
	if s.Rounds == 1 || count < s.BestCount {
		s.BestCount = count
		s.BestSeed = sample.Seed
	}
}

// Mean returns the arithmetic mean of the winning counts.
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of the winning counts.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of the winning counts.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median winning count.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the winning count at the given percentile (0.0 to
// 1.0), interpolating between neighbours.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean ungrouped count for one seat.
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= okey.NumPlayers {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Rounds == 0 {
		return 0
	}
	return ss.Sum / float64(ss.Rounds)
}

// SeatWinRate returns the share of rounds one seat won.
func (s *Statistics) SeatWinRate(seat int) float64 {
	if seat < 0 || seat >= okey.NumPlayers || s.Rounds == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Rounds)
}

// IsLedgerBalanced checks that every round has exactly one winner.
func (s *Statistics) IsLedgerBalanced() bool {
	wins := 0
	for seat := range s.Seats {
		wins += s.Seats[seat].Wins
	}
	return wins == s.Rounds
}

// Validate performs comprehensive validation of the aggregated data.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		wins := 0
		for seat := range s.Seats {
			wins += s.Seats[seat].Wins
		}
		return fmt.Errorf("ledger mismatch: %d wins across %d rounds", wins, s.Rounds)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	for seat := range s.Seats {
		if s.Seats[seat].Rounds != s.Rounds {
			return fmt.Errorf("seat %d saw %d rounds, batch holds %d",
				seat, s.Seats[seat].Rounds, s.Rounds)
		}
		if s.Seats[seat].Wins > s.Rounds {
			return fmt.Errorf("seat %d wins (%d) exceed total rounds (%d)",
				seat, s.Seats[seat].Wins, s.Rounds)
		}
	}

	if s.ZeroRounds > s.Rounds {
		return fmt.Errorf("zero rounds (%d) exceed total rounds (%d)", s.ZeroRounds, s.Rounds)
	}

	return nil
}

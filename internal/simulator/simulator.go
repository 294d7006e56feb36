// Package simulator deals and scores complete okey rounds.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/okeysim/internal/randutil"
	"github.com/lox/okeysim/internal/roundid"
	"github.com/lox/okeysim/internal/stats"
	"github.com/lox/okeysim/okey"
)

// Config holds configuration for running rounds
type Config struct {
	Seed     int64
	FakeFace int // tile id the fake okey plays; negative keeps it on the okey's face
	Players  [okey.NumPlayers]string
	Logger   *log.Logger
	Clock    quartz.Clock
}

// SeatResult is one seat's final state in a scored round.
type SeatResult struct {
	Name      string
	Hand      okey.Hand
	Groups    []okey.Group
	Ungrouped okey.Hand
}

// UngroupedCount is the seat's score: lower is better.
func (s *SeatResult) UngroupedCount() int {
	return len(s.Ungrouped)
}

// RoundResult is the outcome of one fully dealt and scored round.
type RoundResult struct {
	ID        string
	Seed      int64
	Indicator okey.Tile
	Okey      okey.Tile
	FakeWild  bool
	Seats     [okey.NumPlayers]SeatResult
	Winner    int
	Elapsed   time.Duration
}

// Sample reduces the round to the figures the batch statistics track.
func (r *RoundResult) Sample() stats.RoundSample {
	sample := stats.RoundSample{Seed: r.Seed, Winner: r.Winner}
	for seat := range r.Seats {
		sample.Counts[seat] = r.Seats[seat].UngroupedCount()
	}
	return sample
}

// Simulator deals and scores okey rounds.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	for seat, name := range config.Players {
		if name == "" {
			config.Players[seat] = fmt.Sprintf("Seat %d", seat+1)
		}
	}
	return &Simulator{config: config}
}

// Run deals and scores a single round from the configured seed.
func (s *Simulator) Run() (*RoundResult, error) {
	return s.RunSeed(s.config.Seed)
}

// RunSeed deals and scores a single round from an explicit seed.
func (s *Simulator) RunSeed(seed int64) (*RoundResult, error) {
	result, err := s.runRound(seed)
	if err != nil {
		return nil, err
	}
	s.config.Logger.Info("round scored",
		"indicator", result.Indicator.String(),
		"okey", result.Okey.String(),
		"counts", result.Sample().Counts,
		"winner", result.Seats[result.Winner].Name,
	)
	for seat := range result.Seats {
		s.config.Logger.Debug("seat hand",
			"seat", seat+1,
			"name", result.Seats[seat].Name,
			"hand", result.Seats[seat].Hand.String(),
			"ungrouped", result.Seats[seat].Ungrouped.String(),
		)
	}
	return result, nil
}

func (s *Simulator) runRound(seed int64) (*RoundResult, error) {
	start := s.config.Clock.Now()
	rng := randutil.New(seed)

	deck := okey.NewDeck(rng)
	hands, err := deck.DealHands()
	if err != nil {
		return nil, fmt.Errorf("dealing hands: %w", err)
	}
	indicator, err := deck.DrawIndicator()
	if err != nil {
		return nil, fmt.Errorf("drawing indicator: %w", err)
	}
	okeyTile, err := okey.OkeyFor(indicator)
	if err != nil {
		return nil, fmt.Errorf("deriving okey from indicator %s: %w", indicator, err)
	}

	ev, err := s.newEvaluator(okeyTile)
	if err != nil {
		return nil, err
	}

	result := &RoundResult{
		ID:        roundid.GenerateWithRandSource(rng),
		Seed:      seed,
		Indicator: indicator,
		Okey:      okeyTile,
		FakeWild:  ev.IsWild(okey.FakeOkey),
	}

	best := -1
	for seat := range hands {
		scored, err := ev.Evaluate(hands[seat])
		if err != nil {
			return nil, fmt.Errorf("evaluating seat %d: %w", seat, err)
		}
		result.Seats[seat] = SeatResult{
			Name:      s.config.Players[seat],
			Hand:      hands[seat],
			Groups:    scored.Groups,
			Ungrouped: scored.Ungrouped,
		}
		// Ties go to the earliest seat.
		if best == -1 || scored.UngroupedCount() < best {
			best = scored.UngroupedCount()
			result.Winner = seat
		}
	}
	result.Elapsed = s.config.Clock.Now().Sub(start)

	s.config.Logger.Debug("round complete",
		"id", result.ID,
		"seed", seed,
		"indicator", indicator.String(),
		"okey", okeyTile.String(),
		"winner", result.Winner,
		"count", best,
	)

	return result, nil
}

func (s *Simulator) newEvaluator(okeyTile okey.Tile) (*okey.Evaluator, error) {
	if s.config.FakeFace < 0 {
		return okey.NewEvaluator(okeyTile)
	}
	return okey.NewEvaluatorFakeFace(okeyTile, okey.Tile(s.config.FakeFace))
}

// RunBatch plays a batch of independent rounds across workers and
// aggregates the outcomes. Every round's seed derives from the configured
// seed, so a batch produces identical statistics regardless of worker
// count.
func (s *Simulator) RunBatch(ctx context.Context, rounds, workers int) (*stats.Statistics, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("rounds must be at least 1, got %d", rounds)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > rounds {
		workers = rounds
	}

	s.config.Logger.Info("starting batch",
		"rounds", rounds,
		"workers", workers,
		"seed", s.config.Seed,
	)

	seeds := randutil.Seeds(s.config.Seed, rounds)
	samples := make([]stats.RoundSample, rounds)

	// Divide rounds among workers; each writes a disjoint range.
	g, ctx := errgroup.WithContext(ctx)
	perWorker := rounds / workers
	remainder := rounds % workers

	next := 0
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		lo, hi := next, next+n
		next = hi

		g.Go(func() error {
			for i := lo; i < hi; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				round, err := s.runRound(seeds[i])
				if err != nil {
					return fmt.Errorf("round %d (seed %d): %w", i, seeds[i], err)
				}
				samples[i] = round.Sample()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Aggregate in round order so batch output is stable.
	batch := &stats.Statistics{}
	for _, sample := range samples {
		batch.Add(sample)
	}
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	return batch, nil
}

// PrintSummary prints batch statistics to stdout.
func PrintSummary(batch *stats.Statistics, players [okey.NumPlayers]string) {
	mean := batch.Mean()
	median := batch.Median()
	stdDev := batch.StdDev()
	stdErr := batch.StdError()
	low, high := batch.ConfidenceInterval95()
	p05 := batch.Percentile(0.05)
	p25 := batch.Percentile(0.25)
	p75 := batch.Percentile(0.75)
	p95 := batch.Percentile(0.95)

	fmt.Printf("\n=== FINAL RESULTS ===\n")
	fmt.Printf("Rounds played: %d\n", batch.Rounds)

	fmt.Printf("\n=== WINNING COUNT ===\n")
	fmt.Printf("Mean: %.4f tiles\n", mean)
	fmt.Printf("Median: %.4f tiles\n", median)
	fmt.Printf("Std Dev: %.4f\n", stdDev)
	fmt.Printf("Std Error: %.4f\n", stdErr)
	fmt.Printf("95%% CI: [%.4f, %.4f] tiles\n", low, high)
	fmt.Printf("Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n", p05, p25, p75, p95)

	fmt.Printf("\n=== WINNING HANDS ===\n")
	zeroPct := float64(batch.ZeroRounds) / float64(batch.Rounds) * 100
	fmt.Printf("Fully grouped winners: %d rounds (%.2f%%)\n", batch.ZeroRounds, zeroPct)
	fmt.Printf("Best round: %d ungrouped (seed %d)\n", batch.BestCount, batch.BestSeed)

	fmt.Printf("\n=== SEAT ANALYSIS ===\n")
	for seat := 0; seat < okey.NumPlayers; seat++ {
		fmt.Printf("%s: %d wins (%.1f%%), %.3f tiles avg\n",
			players[seat], batch.Seats[seat].Wins, batch.SeatWinRate(seat)*100, batch.SeatMean(seat))
	}
}

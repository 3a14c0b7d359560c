package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Candidate is one pool entry: a board together with its score.
type Candidate struct {
	Board *Board
	Score Score
	Value float64
}

// Optimizer runs a time-boxed randomized hill climb over cog placements.
type Optimizer struct {
	original *Board
	weights  Weights
	cfg      Config
	rng      *rand.Rand

	// working state
	work     *Board
	occupied []int // occupied keys of work, kept in sync with swaps
	bestVal  float64

	pool []Candidate
	cur  int // pool entry tracking the current run
}

// NewOptimizer creates an optimizer for the given board. The input board is never mutated.
func NewOptimizer(b *Board, w Weights, cfg Config) *Optimizer {
	if len(b.Flagged) == 0 {
		w.Flaggy = 0
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Optimizer{
		original: b.Clone(),
		weights:  w,
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// ── Run management ──────────────────────────────────────────────────

// startRun adopts b as the working copy and records it as a new pool entry.
func (o *Optimizer) startRun(b *Board, s Score) {
	o.work = b
	o.occupied = b.Occupied()
	o.bestVal = Weighted(s, o.weights)
	o.pool = append(o.pool, Candidate{Board: b.Clone(), Score: s, Value: o.bestVal})
	o.cur = len(o.pool) - 1
}

// record snapshots the working copy into the current run's pool entry.
func (o *Optimizer) record(s Score) {
	o.pool[o.cur] = Candidate{Board: o.work.Clone(), Score: s, Value: o.bestVal}
}

// pick draws a random (slot, cog) pair; idx is the cog's index in o.occupied.
func (o *Optimizer) pick(b *Board, occupied []int) (slot, cog, idx int, ok bool) {
	if len(b.Available) == 0 || len(occupied) == 0 {
		return 0, 0, 0, false
	}
	slot = b.Available[o.rng.IntN(len(b.Available))]
	idx = o.rng.IntN(len(occupied))
	cog = occupied[idx]
	if !b.swappable(slot, cog) {
		return 0, 0, 0, false
	}
	return slot, cog, idx, true
}

// swapTracked swaps on b and keeps occupied consistent.
func swapTracked(b *Board, occupied []int, slot, cog, idx int) {
	_, slotTaken := b.Cogs[slot]
	b.Swap(slot, cog)
	if !slotTaken {
		occupied[idx] = slot
	}
}

// undoTracked reverts a swapTracked call.
func undoTracked(b *Board, occupied []int, slot, cog, idx int) {
	_, cogTaken := b.Cogs[cog]
	b.Swap(slot, cog)
	if !cogTaken {
		occupied[idx] = cog
	}
}

// shuffled returns a copy of the original scrambled by random eligible swaps.
func (o *Optimizer) shuffled() *Board {
	b := o.original.Clone()
	occupied := b.Occupied()
	for i := 0; i < o.cfg.ShuffleSwaps; i++ {
		slot, cog, idx, ok := o.pick(b, occupied)
		if !ok {
			continue
		}
		swapTracked(b, occupied, slot, cog, idx)
	}
	return b
}

// ── Climbing ────────────────────────────────────────────────────────

// step tries one random swap on the working copy and keeps it only on strict improvement.
func (o *Optimizer) step() bool {
	slot, cog, idx, ok := o.pick(o.work, o.occupied)
	if !ok {
		return false
	}
	swapTracked(o.work, o.occupied, slot, cog, idx)
	s, ok := o.work.Score()
	if ok {
		if v := Weighted(s, o.weights); v > o.bestVal {
			o.bestVal = v
			o.record(s)
			return true
		}
	}
	undoTracked(o.work, o.occupied, slot, cog, idx)
	return false
}

func (o *Optimizer) restart() {
	b := o.shuffled()
	s, ok := b.Score()
	if !ok {
		return
	}
	o.startRun(b, s)
	if Verbose {
		fmt.Fprintf(logw(), "[verbose/restart] pool=%d baseline=%.2f\n", len(o.pool), o.bestVal)
	}
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize searches until the budget expires or ctx is cancelled and returns the best
// pool entry. It reports false when no board ever produced a computable score.
func (o *Optimizer) Optimize(ctx context.Context) (Candidate, bool) {
	start := time.Now()
	deadline := start.Add(o.cfg.Budget)

	seed := o.original.Clone()
	s, ok := seed.Score()
	if !ok {
		fmt.Fprintf(logw(), "[init] input board not computable\n")
		return Candidate{}, false
	}
	o.pool = o.pool[:0]
	o.startRun(seed, s)
	fmt.Fprintf(logw(), "[init] cogs=%d slots=%d budget=%v start=%.2f\n",
		len(seed.Cogs), len(seed.Available), o.cfg.Budget, o.bestVal)

	lastYield := start
	iter, improvements := 0, 0
	for {
		now := time.Now()
		if !now.Before(deadline) {
			break
		}
		if now.Sub(lastYield) >= o.cfg.YieldEvery {
			runtime.Gosched()
			if ctx.Err() != nil {
				fmt.Fprintf(logw(), "[search] cancelled after %d iterations\n", iter)
				break
			}
			lastYield = time.Now()
		}
		iter++
		if o.cfg.RestartEvery > 0 && iter%o.cfg.RestartEvery == 0 {
			o.restart()
			continue
		}
		if o.step() {
			improvements++
		}
	}

	best, ok := o.bestCandidate()
	if !ok {
		return Candidate{}, false
	}
	fmt.Fprintf(logw(), "[done] best=%.2f iterations=%d improvements=%d pool=%d elapsed=%v\n",
		best.Value, iter, improvements, len(o.pool), time.Since(start))
	return best, true
}

// bestCandidate rescans the pool and returns the entry with the highest weighted scalar.
func (o *Optimizer) bestCandidate() (Candidate, bool) {
	var best Candidate
	found := false
	for i := range o.pool {
		c := o.pool[i]
		s, ok := c.Board.Score()
		if !ok {
			continue
		}
		v := Weighted(s, o.weights)
		if !found || v > best.Value {
			best = Candidate{Board: c.Board, Score: s, Value: v}
			found = true
		}
	}
	return best, found
}

// Pool returns the scores of every recorded pool entry, in recording order.
func (o *Optimizer) Pool() []float64 {
	out := make([]float64, len(o.pool))
	for i, c := range o.pool {
		out[i] = c.Value
	}
	return out
}

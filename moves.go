package main

import (
	"fmt"
	"slices"
)

// Reduction is the outcome of turning an initial/target pair into executable steps.
type Reduction struct {
	Board      *Board
	Score      Score
	Steps      []Step
	Mismatches int
}

// ── Move inference ──────────────────────────────────────────────────

// inferMoves pairs every piece that changed position between from and to with the first
// position in to holding the same piece. Pieces without a stable ID are matched by
// attributes, so interchangeable pieces may be paired arbitrarily.
func inferMoves(from, to *Board) []Move {
	targetKeys := to.Occupied()
	var moves []Move
	for _, p := range from.Occupied() {
		c := from.Cogs[p]
		if t, ok := to.Cogs[p]; ok && sameCog(c, t) {
			continue
		}
		for _, q := range targetKeys {
			if q != p && sameCog(to.Cogs[q], c) {
				moves = append(moves, Move{From: p, To: q})
				break
			}
		}
	}
	return moves
}

// improvingMoves keeps the moves that strictly raise the weighted scalar on their own.
func improvingMoves(initial *Board, moves []Move, w Weights) []Move {
	base, ok := initial.Score()
	if !ok {
		return nil
	}
	baseVal := Weighted(base, w)
	var kept []Move
	for _, m := range moves {
		b := initial.Clone()
		b.Swap(m.From, m.To)
		s, ok := b.Score()
		if !ok {
			continue
		}
		if v := Weighted(s, w); v > baseVal {
			kept = append(kept, m)
		} else if Verbose {
			fmt.Fprintf(logw(), "[verbose/reduce] drop %d->%d value=%.2f base=%.2f\n", m.From, m.To, v, baseVal)
		}
	}
	return kept
}

// applyMoves takes each piece from wherever it currently sits to its destination,
// one swap per move.
func applyMoves(initial *Board, moves []Move) *Board {
	b := initial.Clone()
	where := make(map[int]int, len(b.Cogs)) // initial position -> current position
	at := make(map[int]int, len(b.Cogs))    // current position -> initial position
	for k := range b.Cogs {
		where[k] = k
		at[k] = k
	}
	for _, m := range moves {
		cur, ok := where[m.From]
		if !ok || cur == m.To {
			continue
		}
		other, displaced := at[m.To]
		b.Swap(cur, m.To)
		where[m.From] = m.To
		at[m.To] = m.From
		if displaced {
			where[other] = cur
			at[cur] = other
		} else {
			delete(at, cur)
		}
	}
	return b
}

// ── Step compilation ────────────────────────────────────────────────

// compileSteps turns a from->to mapping into pairwise swaps. Each chain is walked from
// its head and its links are emitted tail first, so executing the swaps in order
// lands every piece on its destination.
func compileSteps(moves []Move) []Move {
	dest := make(map[int]int, len(moves))
	isDest := make(map[int]bool, len(moves))
	for _, m := range moves {
		dest[m.From] = m.To
		isDest[m.To] = true
	}

	var heads, rest []int
	for from := range dest {
		if isDest[from] {
			rest = append(rest, from)
		} else {
			heads = append(heads, from)
		}
	}
	slices.Sort(heads)
	slices.Sort(rest)

	var steps []Move
	for _, start := range append(heads, rest...) {
		if _, ok := dest[start]; !ok {
			continue
		}
		path := []int{start}
		for cur := start; ; {
			next, ok := dest[cur]
			if !ok {
				break
			}
			delete(dest, cur)
			if next == start {
				break
			}
			path = append(path, next)
			cur = next
		}
		for i := len(path) - 2; i >= 0; i-- {
			steps = append(steps, Move{From: path[i], To: path[i+1]})
		}
	}
	return steps
}

// pruneReversible drops the later step of every X->Y / Y->X pair.
func pruneReversible(steps []Move) []Move {
	paired := make([]bool, len(steps))
	out := make([]Move, 0, len(steps))
	for i, s := range steps {
		drop := false
		for j := 0; j < i; j++ {
			if paired[j] {
				continue
			}
			if steps[j].From == s.To && steps[j].To == s.From {
				paired[j], paired[i] = true, true
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, s)
		}
	}
	return out
}

// verifySteps replays steps on a copy of initial and counts touched positions whose
// occupant differs from want.
func verifySteps(initial, want *Board, steps []Move) int {
	b := initial.Clone()
	touched := make(map[int]bool)
	for _, s := range steps {
		b.Swap(s.From, s.To)
		touched[s.From], touched[s.To] = true, true
	}
	keys := make([]int, 0, len(touched))
	for k := range touched {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	mismatches := 0
	for _, k := range keys {
		got, okGot := b.Cogs[k]
		exp, okExp := want.Cogs[k]
		if okGot == okExp && (!okGot || sameCog(got, exp)) {
			continue
		}
		mismatches++
		fmt.Fprintf(logw(), "[reduce] mismatch at %d: replay occupied=%v, target occupied=%v\n", k, okGot, okExp)
	}
	return mismatches
}

// ── Main entry point ────────────────────────────────────────────────

// ReduceMoves keeps the improving part of the transformation from initial to target and
// compiles it into an ordered list of swaps.
func ReduceMoves(initial, target *Board, w Weights) Reduction {
	kept := improvingMoves(initial, inferMoves(initial, target), w)
	optimized := applyMoves(initial, kept)
	s, _ := optimized.Score()

	moves := pruneReversible(compileSteps(inferMoves(initial, optimized)))
	mismatches := verifySteps(initial, optimized, moves)

	steps := make([]Step, 0, len(moves))
	for _, m := range moves {
		if st, ok := stepOf(m); ok {
			steps = append(steps, st)
		}
	}
	fmt.Fprintf(logw(), "[reduce] kept=%d steps=%d mismatches=%d\n", len(kept), len(steps), mismatches)
	return Reduction{Board: optimized, Score: s, Steps: steps, Mismatches: mismatches}
}

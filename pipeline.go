package main

import (
	"context"
	"errors"
	"time"
)

var errNotFound = errors.New("no computable arrangement found")

// Request is one optimization call.
type Request struct {
	Snapshot string
	Weights  Weights
	TimeMs   int
	Seed     uint64
}

// Result is what the actuator consumes: the achieved totals and the swaps to perform,
// in order.
type Result struct {
	Score  Score   `json:"score" jsonschema:"description=Totals of the arrangement reached by the steps"`
	Value  float64 `json:"value" jsonschema:"description=Weighted scalar of score"`
	Steps  []Step  `json:"steps" jsonschema:"description=Pairwise swaps to execute in list order"`
	TimeMs int64   `json:"timeMs"`
}

// effectiveWeights drops the flaggy objective on boards without flags.
func effectiveWeights(b *Board, w Weights) Weights {
	if len(b.Flagged) == 0 {
		w.Flaggy = 0
	}
	return w
}

// Run parses the snapshot, searches for a better arrangement and reduces the difference
// to executable steps.
func Run(ctx context.Context, req Request, cfg Config) (Result, error) {
	start := time.Now()
	if req.TimeMs > 0 {
		cfg.Budget = time.Duration(req.TimeMs) * time.Millisecond
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}

	initial := ParseSnapshot(req.Snapshot)
	return runBoard(ctx, initial, req.Weights, cfg, start)
}

func runBoard(ctx context.Context, initial *Board, w Weights, cfg Config, start time.Time) (Result, error) {
	w = effectiveWeights(initial, w)
	best, ok := NewOptimizer(initial, w, cfg).Optimize(ctx)
	if !ok {
		return Result{}, errNotFound
	}
	red := ReduceMoves(initial, best.Board, w)
	steps := red.Steps
	if steps == nil {
		steps = []Step{}
	}
	return Result{
		Score:  red.Score,
		Value:  Weighted(red.Score, w),
		Steps:  steps,
		TimeMs: time.Since(start).Milliseconds(),
	}, nil
}

package main

import (
	"io"
	"os"
	"time"
)

// Config holds search tuning parameters. Adjust these to trade speed for solution quality.
type Config struct {
	// Budget bounds the wall-clock time of one search.
	Budget time.Duration
	// RestartEvery is the number of iterations between random restarts.
	RestartEvery int
	// ShuffleSwaps is how many random swaps scramble the original board on restart.
	ShuffleSwaps int
	// YieldEvery is the longest stretch of search before handing the scheduler back.
	YieldEvery time.Duration
	// Seed fixes the random source; 0 seeds from the clock.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Budget:       time.Second,
		RestartEvery: 10000,
		ShuffleSwaps: 500,
		YieldEvery:   100 * time.Millisecond,
	}
}

// Verbose controls whether detailed search progress is printed to stderr.
var Verbose bool

var logOut io.Writer = os.Stderr

func logw() io.Writer { return logOut }

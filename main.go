//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/invopop/jsonschema"
)

const usage = `Usage: cog-optimizer [flags] <snapshot.json>

Positional arguments:
  snapshot.json   Raw board snapshot (CogM, ShopUpg, FlagP, FlagU)

Flags:
`

func resultSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(Result))
	schema.Title = "Cog Optimizer Result"
	schema.Description = "Achieved totals and the ordered swaps an actuator executes."
	return schema
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	jsonOut := flag.Bool("json", false, "Output results as JSON")
	verbose := flag.Bool("verbose", false, "Print detailed search progress to stderr")
	schemaOut := flag.Bool("schema", false, "Print the JSON Schema of the result document and exit")
	budgetMs := flag.Int("ms", 1000, "Search time budget in milliseconds")
	seed := flag.Uint64("seed", 0, "Random seed (0 = time based)")
	wBuild := flag.Float64("build", 1, "Build rate weight")
	wExp := flag.Float64("exp", 1, "Exp weight")
	wFlaggy := flag.Float64("flaggy", 1, "Flaggy weight")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *schemaOut {
		if err := writeJSON(resultSchema()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if *wBuild < 0 || *wExp < 0 || *wFlaggy < 0 {
		fmt.Fprintln(os.Stderr, "error: weights must be non-negative")
		os.Exit(1)
	}

	Verbose = *verbose

	start := time.Now()
	board, err := LoadSnapshot(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d cogs, %d open slots, %d flags, %d flaggy upgrades\n",
		len(board.Cogs), len(board.Available), len(board.Flagged), board.FlaggyUpgrades)
	if Verbose {
		fmt.Fprint(os.Stderr, FormatBoard(board))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := DefaultConfig()
	cfg.Budget = time.Duration(*budgetMs) * time.Millisecond
	cfg.Seed = *seed
	w := Weights{BuildRate: *wBuild, Exp: *wExp, Flaggy: *wFlaggy}

	r, err := runBoard(ctx, board, w, cfg, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		if err := writeJSON(r); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(FormatResult(r))
	fmt.Fprintf(os.Stderr, "Done in %.1fs\n", float64(r.TimeMs)/1000)
}

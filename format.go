package main

import (
	"fmt"
	"strings"
)

// FormatResult produces a human-readable summary of a pipeline result.
func FormatResult(r Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Build rate: %.0f\n", r.Score.BuildRate)
	fmt.Fprintf(&b, "Exp bonus:  %.0f (boost %.0f%%)\n", r.Score.ExpBonus, r.Score.ExpBoost)
	fmt.Fprintf(&b, "Flaggy:     %.0f (flag boost %.0f%%)\n", r.Score.Flaggy, r.Score.FlagBoost)
	fmt.Fprintf(&b, "Value:      %.2f\n", r.Value)

	if len(r.Steps) == 0 {
		b.WriteString("No moves needed\n")
		return b.String()
	}
	b.WriteString("===================\n")
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "%3d. %-16s <-> %s\n", i+1, s.From, s.To)
	}
	return b.String()
}

// FormatBoard renders the board zone as a grid of build rates, "." for empty cells and
// "#" for blocked ones.
func FormatBoard(bd *Board) string {
	var b strings.Builder
	for row := 0; row < boardRows; row++ {
		for col := 0; col < boardCols; col++ {
			key := row*boardCols + col
			if col > 0 {
				b.WriteByte(' ')
			}
			cell := "."
			if c, ok := bd.Cogs[key]; ok {
				cell = fmt.Sprintf("%.0f", c.BuildRate)
				if c.IsPlayer {
					cell = "P"
				}
			} else if bd.Slots[key].Blocked {
				cell = "#"
			}
			fmt.Fprintf(&b, "%4s", cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

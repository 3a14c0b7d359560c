package main

import "math"

// ── toFixed(2) equivalent ──

func toFixed2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentOf returns ceil(base * pct / 100) with float noise rounded away first.
func percentOf(base, pct float64) float64 {
	return math.Ceil(toFixed2(base * pct / 100))
}

// ── Radius offsets ──

type offset struct{ dr, dc int }

var radiusOffsets [numRadius][]offset

func init() {
	for r := RadiusNone; r < numRadius; r++ {
		radiusOffsets[r] = buildOffsets(r)
	}
}

func buildOffsets(r BoostRadius) []offset {
	switch r {
	case RadiusNone:
		return nil
	case RadiusAdjacent:
		return []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	case RadiusDiagonal:
		return []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	case RadiusUp:
		return []offset{{-2, -1}, {-2, 0}, {-2, 1}, {-1, -1}, {-1, 0}, {-1, 1}}
	case RadiusDown:
		return []offset{{1, -1}, {1, 0}, {1, 1}, {2, -1}, {2, 0}, {2, 1}}
	case RadiusLeft:
		return []offset{{-1, -2}, {0, -2}, {1, -2}, {-1, -1}, {0, -1}, {1, -1}}
	case RadiusRight:
		return []offset{{-1, 1}, {0, 1}, {1, 1}, {-1, 2}, {0, 2}, {1, 2}}
	case RadiusCorner:
		return []offset{{-2, -2}, {-2, 2}, {2, -2}, {2, 2}}
	case RadiusAround:
		return []offset{
			{-2, 0},
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -2}, {0, -1}, {0, 1}, {0, 2},
			{1, -1}, {1, 0}, {1, 1},
			{2, 0},
		}
	case RadiusRow:
		var out []offset
		for dc := -(boardCols - 1); dc < boardCols; dc++ {
			if dc != 0 {
				out = append(out, offset{0, dc})
			}
		}
		return out
	case RadiusColumn:
		var out []offset
		for dr := -(boardRows - 1); dr < boardRows; dr++ {
			if dr != 0 {
				out = append(out, offset{dr, 0})
			}
		}
		return out
	case RadiusEverything:
		var out []offset
		for dr := -(boardRows - 1); dr < boardRows; dr++ {
			for dc := -(boardCols - 1); dc < boardCols; dc++ {
				if dr != 0 || dc != 0 {
					out = append(out, offset{dr, dc})
				}
			}
		}
		return out
	case numRadius:
	}
	return nil
}

// ── Evaluate ──

// cellBoost accumulates the radius bonuses landing on one board cell.
type cellBoost struct {
	buildRate float64
	flaggy    float64
	expBoost  float64
	flagBoost float64
}

type boostGrid [boardRows][boardCols]cellBoost

// Evaluate scores a board. It reports false when the occupant map is inconsistent;
// callers drop the candidate.
func Evaluate(b *Board) (Score, bool) {
	var grid boostGrid
	var s Score

	// fixed order keeps float sums identical across calls
	keys := b.Occupied()
	for _, key := range keys {
		cog := b.Cogs[key]
		if key < 0 || cog.Key != key {
			return Score{}, false
		}
		if cog.Blocked || !onBoard(key) || cog.Radius == RadiusNone {
			continue
		}
		row, col := key/boardCols, key%boardCols
		for _, o := range radiusOffsets[cog.Radius] {
			r, c := row+o.dr, col+o.dc
			if r < 0 || r >= boardRows || c < 0 || c >= boardCols {
				continue
			}
			cell := &grid[r][c]
			cell.buildRate += cog.BuildRadiusBoost
			cell.flaggy += cog.FlaggyRadiusBoost
			cell.expBoost += cog.ExpRadiusBoost
			cell.flagBoost += cog.FlagBoost
		}
	}

	for _, key := range keys {
		cog := b.Cogs[key]
		if cog.Blocked {
			continue
		}
		s.BuildRate += cog.BuildRate
		s.ExpBonus += cog.ExpBonus
		s.Flaggy += cog.Flaggy
		if !onBoard(key) {
			continue
		}
		cell := &grid[key/boardCols][key%boardCols]
		s.BuildRate += percentOf(cog.BuildRate, cell.buildRate)
		if cog.IsPlayer {
			s.ExpBoost += cell.expBoost
		}
		s.Flaggy += percentOf(cog.Flaggy, cell.flaggy)
	}

	for _, key := range b.Flagged {
		if !onBoard(key) {
			continue
		}
		s.FlagBoost += grid[key/boardCols][key%boardCols].flagBoost
	}

	s.Flaggy = math.Floor(toFixed2(s.Flaggy * (1 + 0.5*float64(b.FlaggyUpgrades))))
	return s, true
}

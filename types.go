package main

import (
	"fmt"
	"slices"
)

// ── Zones and positions ─────────────────────────────────────────────

type Zone int

const (
	ZoneBoard Zone = iota
	ZoneBuild
	ZoneSpare
)

const (
	boardCols  = 12
	boardRows  = 8
	boardSize  = boardCols * boardRows // 96
	buildStart = boardSize             // 96
	buildCols  = 3
	buildRows  = 4
	spareStart = buildStart + buildCols*buildRows // 108
	spareCols  = 3
)

func (z Zone) String() string {
	switch z {
	case ZoneBoard:
		return "board"
	case ZoneBuild:
		return "build"
	case ZoneSpare:
		return "spare"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

func (z Zone) MarshalText() ([]byte, error) {
	switch z {
	case ZoneBoard, ZoneBuild, ZoneSpare:
		return []byte(z.String()), nil
	}
	return nil, fmt.Errorf("unknown zone %d", int(z))
}

func (z *Zone) UnmarshalText(b []byte) error {
	switch string(b) {
	case "board":
		*z = ZoneBoard
	case "build":
		*z = ZoneBuild
	case "spare":
		*z = ZoneSpare
	default:
		return fmt.Errorf("unknown zone %q", b)
	}
	return nil
}

// Location is the external (zone, row, col) form of a position key.
type Location struct {
	Zone Zone `json:"zone"`
	Row  int  `json:"row"`
	Col  int  `json:"col"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s r%d c%d", l.Zone, l.Row, l.Col)
}

// zoneOf classifies a position key. Negative keys are invalid.
func zoneOf(key int) (Zone, bool) {
	switch {
	case key < 0:
		return 0, false
	case key < buildStart:
		return ZoneBoard, true
	case key < spareStart:
		return ZoneBuild, true
	}
	return ZoneSpare, true
}

func onBoard(key int) bool {
	z, ok := zoneOf(key)
	return ok && z == ZoneBoard
}

func inBuild(key int) bool {
	z, ok := zoneOf(key)
	return ok && z == ZoneBuild
}

// LocationOf converts a position key into its zone, row and column.
func LocationOf(key int) (Location, bool) {
	z, ok := zoneOf(key)
	if !ok {
		return Location{}, false
	}
	switch z {
	case ZoneBoard:
		return Location{Zone: z, Row: key / boardCols, Col: key % boardCols}, true
	case ZoneBuild:
		k := key - buildStart
		return Location{Zone: z, Row: k / buildCols, Col: k % buildCols}, true
	default:
		k := key - spareStart
		return Location{Zone: z, Row: k / spareCols, Col: k % spareCols}, true
	}
}

// Key converts a location back into a position key.
func (l Location) Key() (int, bool) {
	if l.Row < 0 || l.Col < 0 {
		return 0, false
	}
	switch l.Zone {
	case ZoneBoard:
		if l.Row >= boardRows || l.Col >= boardCols {
			return 0, false
		}
		return l.Row*boardCols + l.Col, true
	case ZoneBuild:
		if l.Row >= buildRows || l.Col >= buildCols {
			return 0, false
		}
		return buildStart + l.Row*buildCols + l.Col, true
	case ZoneSpare:
		if l.Col >= spareCols {
			return 0, false
		}
		return spareStart + l.Row*spareCols + l.Col, true
	}
	return 0, false
}

// ── Boost radius patterns ───────────────────────────────────────────

type BoostRadius int

const (
	RadiusNone BoostRadius = iota
	RadiusDiagonal
	RadiusAdjacent
	RadiusUp
	RadiusRight
	RadiusDown
	RadiusLeft
	RadiusRow
	RadiusColumn
	RadiusCorner
	RadiusAround
	RadiusEverything
	numRadius
)

func parseBoostRadius(s string) BoostRadius {
	switch s {
	case "diagonal":
		return RadiusDiagonal
	case "adjacent":
		return RadiusAdjacent
	case "up":
		return RadiusUp
	case "right":
		return RadiusRight
	case "down":
		return RadiusDown
	case "left":
		return RadiusLeft
	case "row":
		return RadiusRow
	case "column":
		return RadiusColumn
	case "corner", "corners":
		return RadiusCorner
	case "around":
		return RadiusAround
	case "everything":
		return RadiusEverything
	}
	return RadiusNone
}

func (r BoostRadius) String() string {
	switch r {
	case RadiusNone:
		return "none"
	case RadiusDiagonal:
		return "diagonal"
	case RadiusAdjacent:
		return "adjacent"
	case RadiusUp:
		return "up"
	case RadiusRight:
		return "right"
	case RadiusDown:
		return "down"
	case RadiusLeft:
		return "left"
	case RadiusRow:
		return "row"
	case RadiusColumn:
		return "column"
	case RadiusCorner:
		return "corner"
	case RadiusAround:
		return "around"
	case RadiusEverything:
		return "everything"
	}
	return fmt.Sprintf("radius(%d)", int(r))
}

// ── Cogs ────────────────────────────────────────────────────────────

// Cog is a piece occupying one position. Slot markers share the shape.
type Cog struct {
	Key int
	ID  int // 1-based stable identifier from the snapshot, 0 when unknown

	BuildRate float64
	ExpBonus  float64
	Flaggy    float64
	IsPlayer  bool

	BuildRadiusBoost  float64
	ExpRadiusBoost    float64
	FlaggyRadiusBoost float64
	FlagBoost         float64
	Radius            BoostRadius

	Fixed   bool
	Blocked bool
}

// sameCog compares everything but the position.
func sameCog(a, b Cog) bool {
	a.Key, b.Key = 0, 0
	return a == b
}

// ── Score / weights ─────────────────────────────────────────────────

type Score struct {
	BuildRate float64 `json:"buildRate"`
	ExpBonus  float64 `json:"expBonus"`
	Flaggy    float64 `json:"flaggy"`
	ExpBoost  float64 `json:"expBoost"`
	FlagBoost float64 `json:"flagBoost"`
}

type Weights struct {
	BuildRate float64 `json:"buildRate"`
	Exp       float64 `json:"exp"`
	Flaggy    float64 `json:"flaggy"`
}

// Normalizing baselines of the weighted scalar.
const (
	expBoostBase  = 10
	flagBoostBase = 4
)

// Weighted folds a Score into the single fitness value used for comparisons.
func Weighted(s Score, w Weights) float64 {
	return s.BuildRate*w.BuildRate +
		s.ExpBonus*w.Exp*(s.ExpBoost+expBoostBase)/expBoostBase +
		s.Flaggy*w.Flaggy*(s.FlagBoost+flagBoostBase)/flagBoostBase
}

// ── Moves / steps ───────────────────────────────────────────────────

type Move struct {
	From int
	To   int
}

type Step struct {
	From Location `json:"from"`
	To   Location `json:"to"`
}

func stepOf(m Move) (Step, bool) {
	from, ok := LocationOf(m.From)
	if !ok {
		return Step{}, false
	}
	to, ok := LocationOf(m.To)
	if !ok {
		return Step{}, false
	}
	return Step{From: from, To: to}, true
}

// ── Board ───────────────────────────────────────────────────────────

// Board is one snapshot of the arrangement. An empty position is absent from Cogs.
type Board struct {
	Cogs           map[int]Cog
	Slots          map[int]Cog
	Flagged        []int
	FlaggyUpgrades int
	Available      []int

	score    Score
	scoreOK  bool
	hasScore bool
}

func newBoard() *Board {
	return &Board{
		Cogs:  make(map[int]Cog),
		Slots: make(map[int]Cog),
	}
}

// Clone returns a deep copy sharing nothing with b.
func (b *Board) Clone() *Board {
	c := &Board{
		Cogs:           make(map[int]Cog, len(b.Cogs)),
		Slots:          make(map[int]Cog, len(b.Slots)),
		Flagged:        slices.Clone(b.Flagged),
		FlaggyUpgrades: b.FlaggyUpgrades,
		Available:      slices.Clone(b.Available),
		score:          b.score,
		scoreOK:        b.scoreOK,
		hasScore:       b.hasScore,
	}
	for k, v := range b.Cogs {
		c.Cogs[k] = v
	}
	for k, v := range b.Slots {
		c.Slots[k] = v
	}
	return c
}

// Swap exchanges the occupants of a and b. Either side may be empty.
func (b *Board) Swap(a, c int) {
	if a == c {
		return
	}
	ca, okA := b.Cogs[a]
	cc, okC := b.Cogs[c]
	if !okA && !okC {
		return
	}
	delete(b.Cogs, a)
	delete(b.Cogs, c)
	if okA {
		ca.Key = c
		b.Cogs[c] = ca
	}
	if okC {
		cc.Key = a
		b.Cogs[a] = cc
	}
	b.hasScore = false
}

// Score returns the cached score, evaluating the board when the cache is stale.
func (b *Board) Score() (Score, bool) {
	if !b.hasScore {
		b.score, b.scoreOK = Evaluate(b)
		b.hasScore = true
	}
	return b.score, b.scoreOK
}

// Occupied returns the occupied position keys in ascending order.
func (b *Board) Occupied() []int {
	keys := make([]int, 0, len(b.Cogs))
	for k := range b.Cogs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// swappable reports whether a random swap may exchange slot and cog.
func (b *Board) swappable(slot, cog int) bool {
	if slot == cog || inBuild(slot) || inBuild(cog) {
		return false
	}
	marker, ok := b.Slots[slot]
	if !ok || marker.Fixed {
		return false
	}
	if occ, ok := b.Cogs[slot]; ok && occ.Fixed {
		return false
	}
	c, ok := b.Cogs[cog]
	if !ok || c.Fixed {
		return false
	}
	// a cog sitting on a blocked cell stays put
	if m, ok := b.Slots[cog]; ok && m.Fixed {
		return false
	}
	return true
}

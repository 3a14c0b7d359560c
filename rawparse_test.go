package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const sampleCogMap = `{
	"0": {"a": 10, "e": 50, "h": "adjacent"},
	"1": {"a": 5},
	"5": {"a": 4, "j": "fixed"},
	"110": {"a": 3, "b": 2, "d": 1},
	"x": {"a": 1},
	"-3": {"a": 1},
	"7": 12
}`

func sampleSnapshot(embedded bool) string {
	cogs := sampleCogMap
	if embedded {
		cogs = `"` + strings.NewReplacer(`"`, `\"`, "\n", "", "\t", "").Replace(sampleCogMap) + `"`
	}
	return `{
		"CogM": ` + cogs + `,
		"ShopUpg": [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2],
		"FlagP": [2, 1],
		"FlagU": [0, 0, 0, -11, 0, 0]
	}`
}

func TestParseSnapshot(t *testing.T) {
	for _, embedded := range []bool{false, true} {
		name := "object"
		if embedded {
			name = "embedded string"
		}
		t.Run(name, func(t *testing.T) {
			b := ParseSnapshot(sampleSnapshot(embedded))

			if got := b.Occupied(); !slices.Equal(got, []int{0, 1, 5, 110}) {
				t.Fatalf("occupied = %v, want [0 1 5 110]", got)
			}
			c0 := b.Cogs[0]
			if c0.BuildRate != 10 || c0.BuildRadiusBoost != 50 || c0.Radius != RadiusAdjacent || c0.ID != 1 {
				t.Errorf("cog 0 = %+v", c0)
			}
			if !b.Cogs[5].Fixed {
				t.Error("cog 5 should be fixed")
			}
			p := b.Cogs[110]
			if !p.IsPlayer || p.ExpBonus != 2 {
				t.Errorf("cog 110 = %+v, want player with exp bonus 2", p)
			}
			if b.FlaggyUpgrades != 2 {
				t.Errorf("flaggy upgrades = %d, want 2", b.FlaggyUpgrades)
			}
			if !slices.Equal(b.Flagged, []int{2, 1}) {
				t.Errorf("flagged = %v", b.Flagged)
			}
			if !slices.Equal(b.Available, []int{0, 2, 4, 5}) {
				t.Errorf("available = %v, want [0 2 4 5]", b.Available)
			}
			for _, k := range []int{1, 3} {
				if m := b.Slots[k]; !m.Fixed || !m.Blocked {
					t.Errorf("slot %d = %+v, want fixed and blocked", k, m)
				}
			}
			if len(b.Slots) != 6 {
				t.Errorf("got %d slots, want 6", len(b.Slots))
			}

			if !b.hasScore {
				t.Fatal("score not computed at parse time")
			}
			s, ok := b.Score()
			if !ok {
				t.Fatal("not computable")
			}
			// 10 + (5 + ceil(2.5)) + 4 + 3
			if s.BuildRate != 25 || s.ExpBonus != 2 || s.ExpBoost != 0 {
				t.Errorf("score = %+v", s)
			}
		})
	}
}

func TestParseSnapshotDefaults(t *testing.T) {
	inputs := map[string]string{
		"empty":     ``,
		"not json":  `not json at all`,
		"no fields": `{}`,
		"wrong types": `{
			"CogM": 42,
			"ShopUpg": "lots",
			"FlagP": {"a": 1},
			"FlagU": "open"
		}`,
		"bad embedded": `{"CogM": "{not valid"}`,
		"short shop":   `{"ShopUpg": [1, 2, 3]}`,
		"negative":     `{"ShopUpg": [0,0,0,0,0,0,0,0,0,0,0,-4]}`,
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			b := ParseSnapshot(raw)
			if len(b.Cogs) != 0 || len(b.Slots) != 0 || len(b.Available) != 0 || len(b.Flagged) != 0 {
				t.Errorf("board = %+v, want empty", b)
			}
			if b.FlaggyUpgrades != 0 {
				t.Errorf("flaggy upgrades = %d, want 0", b.FlaggyUpgrades)
			}
			if s, ok := b.Score(); !ok || s != (Score{}) {
				t.Errorf("score = %+v, %v; want zero, true", s, ok)
			}
		})
	}
}

func TestParseUnlocksBuildZone(t *testing.T) {
	codes := make([]string, spareStart+2)
	for i := range codes {
		codes[i] = "0"
	}
	b := ParseSnapshot(`{"FlagU": [` + strings.Join(codes, ",") + `]}`)
	for _, k := range b.Available {
		if inBuild(k) {
			t.Errorf("build position %d listed as available", k)
		}
	}
	if m := b.Slots[buildStart]; !m.Fixed {
		t.Errorf("build slot = %+v, want fixed", m)
	}
	if want := boardSize + 2; len(b.Available) != want {
		t.Errorf("got %d available, want %d", len(b.Available), want)
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := os.WriteFile(path, []byte(sampleSnapshot(true)), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(b.Cogs) != 4 {
		t.Errorf("got %d cogs, want 4", len(b.Cogs))
	}

	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

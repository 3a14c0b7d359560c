package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// Raw snapshot field names.
const (
	fieldCogMap   = "CogM"
	fieldShopUpg  = "ShopUpg"
	fieldFlagged  = "FlagP"
	fieldUnlocks  = "FlagU"
	flaggyShopIdx = 11 // ShopUpg entry counting flaggy upgrades

	unlockAvailable = 0       // FlagU code for an open slot
	cogFixedMarker  = "fixed" // CogM "j" value pinning a cog in place
)

// LoadSnapshot reads and parses a snapshot file.
func LoadSnapshot(path string) (*Board, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSnapshot(string(raw)), nil
}

// ParseSnapshot builds a board from a raw snapshot document. Missing or malformed
// fields fall back to empty defaults, so it never fails.
func ParseSnapshot(raw string) *Board {
	b := newBoard()
	if !gjson.Valid(raw) {
		b.Score()
		return b
	}
	parseCogMap(b, gjson.Get(raw, fieldCogMap))
	b.FlaggyUpgrades = parseFlaggyUpgrades(gjson.Get(raw, fieldShopUpg))
	b.Flagged = readIntSlice(gjson.Get(raw, fieldFlagged))
	parseUnlocks(b, gjson.Get(raw, fieldUnlocks))
	b.Score()
	return b
}

// parseCogMap decodes the sparse catalogue. It may arrive embedded as a JSON string.
func parseCogMap(b *Board, v gjson.Result) {
	if v.Type == gjson.String {
		doc := v.String()
		if !gjson.Valid(doc) {
			return
		}
		v = gjson.Parse(doc)
	}
	if !v.IsObject() {
		return
	}
	v.ForEach(func(k, e gjson.Result) bool {
		key, err := strconv.Atoi(k.String())
		if err != nil || key < 0 || !e.IsObject() {
			return true
		}
		b.Cogs[key] = parseCog(key, e)
		return true
	})
}

func parseCog(key int, e gjson.Result) Cog {
	return Cog{
		Key:               key,
		ID:                key + 1,
		BuildRate:         e.Get("a").Float(),
		ExpBonus:          e.Get("b").Float(),
		Flaggy:            e.Get("c").Float(),
		IsPlayer:          e.Get("d").Float() > 0,
		BuildRadiusBoost:  e.Get("e").Float(),
		ExpRadiusBoost:    e.Get("f").Float(),
		FlaggyRadiusBoost: e.Get("g").Float(),
		Radius:            parseBoostRadius(e.Get("h").String()),
		FlagBoost:         e.Get("i").Float(),
		Fixed:             e.Get("j").String() == cogFixedMarker,
	}
}

func parseFlaggyUpgrades(v gjson.Result) int {
	if !v.IsArray() {
		return 0
	}
	arr := v.Array()
	if flaggyShopIdx >= len(arr) {
		return 0
	}
	n := int(arr[flaggyShopIdx].Int())
	if n < 0 {
		return 0
	}
	return n
}

// parseUnlocks synthesizes a slot marker for every position in the unlock table.
func parseUnlocks(b *Board, v gjson.Result) {
	if !v.IsArray() {
		return
	}
	flagged := make(map[int]bool, len(b.Flagged))
	for _, k := range b.Flagged {
		flagged[k] = true
	}
	for key, code := range v.Array() {
		_, occupied := b.Cogs[key]
		marker := Cog{Key: key}
		switch {
		case inBuild(key),
			flagged[key] && occupied,
			code.Type != gjson.Number || code.Int() != unlockAvailable:
			marker.Fixed = true
			marker.Blocked = true
		default:
			b.Available = append(b.Available, key)
		}
		b.Slots[key] = marker
	}
}

func readIntSlice(v gjson.Result) []int {
	if !v.Exists() || !v.IsArray() {
		return nil
	}
	arr := v.Array()
	out := make([]int, len(arr))
	for i, item := range arr {
		out[i] = int(item.Int())
	}
	return out
}

// Package loader loads Lua game content into Go structs at load time.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList converts an array-style Lua table to a string slice.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// intMap converts a map-style Lua table to map[string]int.
func intMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if n, ok := v.(lua.LNumber); ok {
			m[string(ks)] = int(n)
		}
	})
	return m
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Species:   map[string]types.Species{},
		Moves:     map[string]types.Move{},
		Items:     map[string]types.ItemDef{},
		Locations: map[string]types.LocationDef{},
		Trainers:  map[string]types.TrainerDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game {} definition found")
	}
	defs.Game = compileGame(coll.game)

	for _, raw := range coll.species {
		if _, dup := defs.Species[raw.id]; dup {
			return nil, fmt.Errorf("duplicate species %q", raw.id)
		}
		defs.Species[raw.id] = compileSpecies(raw)
	}
	for _, raw := range coll.moves {
		if _, dup := defs.Moves[raw.id]; dup {
			return nil, fmt.Errorf("duplicate move %q", raw.id)
		}
		defs.Moves[raw.id] = compileMove(raw)
	}
	for _, raw := range coll.items {
		if _, dup := defs.Items[raw.id]; dup {
			return nil, fmt.Errorf("duplicate item %q", raw.id)
		}
		defs.Items[raw.id] = compileItem(raw)
	}
	for _, raw := range coll.locations {
		if _, dup := defs.Locations[raw.id]; dup {
			return nil, fmt.Errorf("duplicate location %q", raw.id)
		}
		defs.Locations[raw.id] = compileLocation(raw)
	}
	for _, raw := range coll.trainers {
		if _, dup := defs.Trainers[raw.id]; dup {
			return nil, fmt.Errorf("duplicate trainer %q", raw.id)
		}
		defs.Trainers[raw.id] = compileTrainer(raw)
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	g := types.GameDef{
		Title:      getString(tbl, "title"),
		Author:     getString(tbl, "author"),
		Version:    getString(tbl, "version"),
		Intro:      getString(tbl, "intro"),
		Start:      getString(tbl, "start"),
		StartMoney: getInt(tbl, "start_money"),
		StartItems: intMap(getTable(tbl, "start_items")),
	}
	if starters := getTable(tbl, "starters"); starters != nil {
		for i := 1; i <= starters.MaxN(); i++ {
			if st, ok := starters.RawGetInt(i).(*lua.LTable); ok {
				g.Starters = append(g.Starters, compileTrainerPokemon(st))
			}
		}
	}
	return g
}

func compileSpecies(raw rawDef) types.Species {
	tbl := raw.table
	sp := types.Species{
		ID:        raw.id,
		Name:      getString(tbl, "name"),
		Moves:     stringList(getTable(tbl, "moves")),
		CatchRate: getInt(tbl, "catch_rate"),
	}
	for _, t := range stringList(getTable(tbl, "types")) {
		sp.Types = append(sp.Types, types.Type(t))
	}
	if bs := getTable(tbl, "base_stats"); bs != nil {
		sp.BaseStats = types.BaseStats{
			HP:        getInt(bs, "hp"),
			Attack:    getInt(bs, "attack"),
			Defense:   getInt(bs, "defense"),
			SpAttack:  getInt(bs, "sp_attack"),
			SpDefense: getInt(bs, "sp_defense"),
			Speed:     getInt(bs, "speed"),
		}
	}
	if evo := getTable(tbl, "evolution"); evo != nil {
		sp.Evolution = &types.Evolution{
			Level: getInt(evo, "level"),
			Item:  getString(evo, "item"),
			Into:  getString(evo, "into"),
		}
	}
	return sp
}

func compileMove(raw rawDef) types.Move {
	tbl := raw.table
	mv := types.Move{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Type:        types.Type(getString(tbl, "type")),
		Category:    types.Category(getString(tbl, "category")),
		Power:       getInt(tbl, "power"),
		Accuracy:    getInt(tbl, "accuracy"),
		Priority:    getInt(tbl, "priority"),
		PP:          getInt(tbl, "pp"),
		Description: getString(tbl, "description"),
	}
	if eff := getTable(tbl, "effect"); eff != nil {
		mv.Effect = &types.Effect{
			Condition: types.Condition(getString(eff, "condition")),
			Stat:      types.Stat(getString(eff, "stat")),
			Stages:    getInt(eff, "stages"),
			Self:      getBool(eff, "self", false),
			Chance:    getInt(eff, "chance"),
		}
	}
	return mv
}

func compileItem(raw rawDef) types.ItemDef {
	tbl := raw.table
	return types.ItemDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Kind:        getString(tbl, "kind"),
		Price:       getInt(tbl, "price"),
		Heal:        getInt(tbl, "heal"),
		Cures:       types.Condition(getString(tbl, "cures")),
		CatchBonus:  getNumber(tbl, "catch_bonus"),
		EvolvesWith: stringList(getTable(tbl, "evolves")),
	}
}

func compileLocation(raw rawDef) types.LocationDef {
	tbl := raw.table
	loc := types.LocationDef{
		ID:            raw.id,
		Name:          getString(tbl, "name"),
		Description:   getString(tbl, "description"),
		Wild:          stringList(getTable(tbl, "wild")),
		LevelMin:      getInt(tbl, "level_min"),
		LevelMax:      getInt(tbl, "level_max"),
		EncounterRate: getInt(tbl, "encounter_rate"),
		Center:        getBool(tbl, "center", false),
		Shop:          stringList(getTable(tbl, "shop")),
		Connections:   stringList(getTable(tbl, "connections")),
	}
	if gym := getTable(tbl, "gym"); gym != nil {
		loc.Gym = &types.GymDef{
			Leader:     getString(gym, "leader"),
			Badge:      getString(gym, "badge"),
			PrizeMoney: getInt(gym, "prize"),
		}
	}
	return loc
}

func compileTrainer(raw rawDef) types.TrainerDef {
	tbl := raw.table
	tr := types.TrainerDef{
		ID:    raw.id,
		Name:  getString(tbl, "name"),
		Intro: getString(tbl, "intro"),
	}
	if team := getTable(tbl, "team"); team != nil {
		for i := 1; i <= team.MaxN(); i++ {
			if member, ok := team.RawGetInt(i).(*lua.LTable); ok {
				tr.Team = append(tr.Team, compileTrainerPokemon(member))
			}
		}
	}
	return tr
}

func compileTrainerPokemon(tbl *lua.LTable) types.TrainerPokemon {
	return types.TrainerPokemon{
		Species: getString(tbl, "species"),
		Level:   getInt(tbl, "level"),
		Moves:   stringList(getTable(tbl, "moves")),
	}
}

package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals. Every
// constructor except Game is curried: Species "id" { ... } desugars to
// Species("id")({ ... }).
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	L.SetGlobal("Species", curried(L, &coll.species))
	L.SetGlobal("Move", curried(L, &coll.moves))
	L.SetGlobal("Item", curried(L, &coll.items))
	L.SetGlobal("Location", curried(L, &coll.locations))
	L.SetGlobal("Trainer", curried(L, &coll.trainers))
}

// curried builds a two-stage constructor that appends (id, table) pairs
// to the given collector slice.
func curried(L *lua.LState, dst *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}

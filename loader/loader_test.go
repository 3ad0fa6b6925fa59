package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mr-Neutr0n/pokemon-game/types"
)

func TestLoad_MinimalGame(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Game metadata.
	if defs.Game.Title != "Loader Test" {
		t.Errorf("Title = %q, want %q", defs.Game.Title, "Loader Test")
	}
	if defs.Game.Start != "town" {
		t.Errorf("Start = %q, want town", defs.Game.Start)
	}
	if defs.Game.StartMoney != 500 {
		t.Errorf("StartMoney = %d, want 500", defs.Game.StartMoney)
	}
	if defs.Game.StartItems["potion"] != 1 {
		t.Errorf("StartItems[potion] = %d, want 1", defs.Game.StartItems["potion"])
	}
	if len(defs.Game.Starters) != 1 || defs.Game.Starters[0].Species != "bulbasaur" {
		t.Errorf("Starters = %+v", defs.Game.Starters)
	}

	// Species.
	bulba, ok := defs.Species["bulbasaur"]
	if !ok {
		t.Fatal("species 'bulbasaur' not found")
	}
	if bulba.Name != "Bulbasaur" {
		t.Errorf("Name = %q", bulba.Name)
	}
	if len(bulba.Types) != 2 || bulba.Types[0] != types.Grass || bulba.Types[1] != types.Poison {
		t.Errorf("Types = %v", bulba.Types)
	}
	if bulba.BaseStats.SpAttack != 65 {
		t.Errorf("SpAttack = %d, want 65", bulba.BaseStats.SpAttack)
	}
	if bulba.CatchRate != 45 {
		t.Errorf("CatchRate = %d, want 45", bulba.CatchRate)
	}
	if bulba.Evolution == nil || bulba.Evolution.Level != 16 || bulba.Evolution.Into != "ivysaur" {
		t.Errorf("Evolution = %+v", bulba.Evolution)
	}

	// Moves.
	growl, ok := defs.Moves["growl"]
	if !ok {
		t.Fatal("move 'growl' not found")
	}
	if growl.Category != types.Status {
		t.Errorf("Category = %q", growl.Category)
	}
	if growl.Effect == nil || growl.Effect.Stat != types.Attack || growl.Effect.Stages != -1 {
		t.Errorf("Effect = %+v", growl.Effect)
	}

	// Items.
	ball, ok := defs.Items["poke-ball"]
	if !ok {
		t.Fatal("item 'poke-ball' not found")
	}
	if ball.Kind != "pokeball" || ball.CatchBonus != 1.0 {
		t.Errorf("poke-ball = %+v", ball)
	}

	// Locations.
	route, ok := defs.Locations["route"]
	if !ok {
		t.Fatal("location 'route' not found")
	}
	if len(route.Wild) != 1 || route.Wild[0] != "pidgey" {
		t.Errorf("Wild = %v", route.Wild)
	}
	if route.LevelMin != 2 || route.LevelMax != 4 || route.EncounterRate != 60 {
		t.Errorf("wild params = %d..%d @%d", route.LevelMin, route.LevelMax, route.EncounterRate)
	}
	gymTown := defs.Locations["gym_town"]
	if gymTown.Gym == nil || gymTown.Gym.Leader != "leader" || gymTown.Gym.PrizeMoney != 1000 {
		t.Errorf("Gym = %+v", gymTown.Gym)
	}

	// Trainers.
	leader, ok := defs.Trainers["leader"]
	if !ok {
		t.Fatal("trainer 'leader' not found")
	}
	if len(leader.Team) != 2 {
		t.Fatalf("team size = %d, want 2", len(leader.Team))
	}
	if leader.Team[0].Species != "pidgey" || leader.Team[0].Level != 9 {
		t.Errorf("team[0] = %+v", leader.Team[0])
	}
	if len(leader.Team[0].Moves) != 2 {
		t.Errorf("team[0] moves = %v", leader.Team[0].Moves)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for directory without .lua files")
	}
}

// writeGame writes a game dir with one data file next to a valid
// game.lua stub.
func writeGame(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	game := `Game { title = "T", start = "spot" }
Location "spot" { name = "Spot" }
`
	if err := os.WriteFile(filepath.Join(dir, "game.lua"), []byte(game), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data.lua"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad_UndefinedMoveReference(t *testing.T) {
	dir := writeGame(t, `
Species "glitch" {
  name = "Glitch",
  types = { "normal" },
  base_stats = { hp = 10, attack = 10, defense = 10, sp_attack = 10, sp_defense = 10, speed = 10 },
  moves = { "nonexistent" },
  catch_rate = 100,
}
`)
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "undefined move") {
		t.Errorf("error = %v, want mention of undefined move", err)
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	dir := writeGame(t, `
Move "tackle" { name = "Tackle", type = "normal", category = "physical", power = 40, accuracy = 100, pp = 35 }
Move "tackle" { name = "Tackle Again", type = "normal", category = "physical", power = 40, accuracy = 100, pp = 35 }
`)
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !strings.Contains(err.Error(), "duplicate move") {
		t.Errorf("error = %v, want duplicate move", err)
	}
}

func TestLoad_LuaSyntaxError(t *testing.T) {
	dir := writeGame(t, `Move "broken" {`)
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for broken Lua")
	}
}

func TestLoad_SandboxBlocksIO(t *testing.T) {
	dir := writeGame(t, `
if os ~= nil or io ~= nil then
  error("os/io should not be available")
end
if dofile ~= nil then
  error("dofile should not be available")
end
`)
	if _, err := Load(dir); err != nil {
		t.Fatalf("sandboxed environment leaked globals: %v", err)
	}
}

package save

import (
	"encoding/json"
	"testing"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

func testDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title:      "Test Adventure",
			Version:    "1.0",
			Start:      "pallet_town",
			StartMoney: 3000,
		},
		Species: map[string]types.Species{
			"pikachu": {
				ID: "pikachu", Name: "Pikachu",
				Types:     []types.Type{types.Electric},
				BaseStats: types.BaseStats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90},
				Moves:     []string{"thunder-shock"},
			},
		},
		Moves: map[string]types.Move{
			"thunder-shock": {ID: "thunder-shock", Name: "Thunder Shock", PP: 30},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	// Modify state.
	s.Player.Name = "Red"
	s.Player.Location = "viridian_city"
	s.Player.Money = 1250
	p, _ := state.NewPokemon(defs, "pikachu", 12)
	p.Nickname = "Sparky"
	p.HP = 7
	p.Status = types.PoisonCnd
	state.AddToTeam(s, p)
	state.AddItem(s, "potion", 3)
	state.AwardBadge(s, "Boulder Badge")
	state.RecordCaught(s, "pikachu")
	s.Flags["rival_beaten"] = true
	s.Counters["steps"] = 42
	s.TurnCount = 7
	s.RNGSeed = 42
	s.RNGPosition = 19

	// Save.
	data, err := Save(s, defs)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load.
	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Apply to fresh state.
	s2 := state.NewState(defs)
	ApplySave(s2, sd)

	// Verify.
	if s2.Player.Name != "Red" {
		t.Errorf("expected name 'Red', got %q", s2.Player.Name)
	}
	if s2.Player.Location != "viridian_city" {
		t.Errorf("expected location 'viridian_city', got %q", s2.Player.Location)
	}
	if s2.Player.Money != 1250 {
		t.Errorf("expected money 1250, got %d", s2.Player.Money)
	}
	if len(s2.Player.Team) != 1 {
		t.Fatalf("expected 1 team member, got %d", len(s2.Player.Team))
	}
	got := s2.Player.Team[0]
	if got.Nickname != "Sparky" || got.HP != 7 || got.Status != types.PoisonCnd {
		t.Errorf("team member mismatch: %+v", got)
	}
	if s2.Player.Bag["potion"] != 3 {
		t.Errorf("expected 3 potions, got %d", s2.Player.Bag["potion"])
	}
	if !state.HasBadge(s2, "Boulder Badge") {
		t.Error("expected Boulder Badge")
	}
	if !s2.Player.Caught["pikachu"] {
		t.Error("expected pikachu caught in pokedex")
	}
	if !s2.Flags["rival_beaten"] {
		t.Error("expected rival_beaten flag true")
	}
	if s2.Counters["steps"] != 42 {
		t.Errorf("expected steps 42, got %d", s2.Counters["steps"])
	}
	if s2.TurnCount != 7 {
		t.Errorf("expected turn 7, got %d", s2.TurnCount)
	}
	if s2.RNGSeed != 42 || s2.RNGPosition != 19 {
		t.Errorf("expected RNG 42/19, got %d/%d", s2.RNGSeed, s2.RNGPosition)
	}
}

func TestSave_ProducesValidJSON(t *testing.T) {
	defs := testDefs()
	s := state.NewState(defs)

	data, err := Save(s, defs)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !json.Valid(data) {
		t.Fatal("Save output is not valid JSON")
	}

	// Verify game metadata.
	var raw map[string]any
	json.Unmarshal(data, &raw)
	if raw["version"] != "1.0" {
		t.Errorf("expected version '1.0', got %v", raw["version"])
	}
	if raw["game"] != "Test Adventure" {
		t.Errorf("expected game 'Test Adventure', got %v", raw["game"])
	}
}

func TestLoad_MissingOptionalFields(t *testing.T) {
	// Minimal JSON, only required fields.
	data := []byte(`{"version":"1.0","game":"Test","turn":0,"player":{"name":"Red","location":"pallet_town"}}`)

	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if sd.Flags == nil {
		t.Error("expected non-nil flags")
	}
	if sd.Counters == nil {
		t.Error("expected non-nil counters")
	}
	if sd.Player.Bag == nil {
		t.Error("expected non-nil bag")
	}
	if sd.Player.Seen == nil || sd.Player.Caught == nil {
		t.Error("expected non-nil pokedex maps")
	}
	if sd.Player.Visited == nil {
		t.Error("expected non-nil visited map")
	}
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{"version":`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

package battle

import (
	"testing"

	"github.com/Mr-Neutr0n/pokemon-game/types"
)

func TestEffectiveness_SingleType(t *testing.T) {
	tests := []struct {
		name     string
		attack   types.Type
		defender []types.Type
		want     float64
	}{
		{"super effective", types.Fire, []types.Type{types.Grass}, 2},
		{"not very effective", types.Fire, []types.Type{types.Water}, 0.5},
		{"neutral", types.Normal, []types.Type{types.Fire}, 1},
		{"immune", types.Normal, []types.Type{types.Ghost}, 0},
		{"electric vs ground", types.Electric, []types.Type{types.Ground}, 0},
		{"self matchup", types.Dragon, []types.Type{types.Dragon}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effectiveness(tt.attack, tt.defender)
			if got != tt.want {
				t.Errorf("Effectiveness(%s, %v) = %v, want %v", tt.attack, tt.defender, got, tt.want)
			}
		})
	}
}

func TestEffectiveness_DualType_Product(t *testing.T) {
	// Grass/Poison: fire hits grass for 2x and poison for 1x.
	if got := Effectiveness(types.Fire, []types.Type{types.Grass, types.Poison}); got != 2 {
		t.Errorf("fire vs grass/poison = %v, want 2", got)
	}

	// Rock/Ground doubles up against water: 2 * 2 = 4.
	if got := Effectiveness(types.Water, []types.Type{types.Rock, types.Ground}); got != 4 {
		t.Errorf("water vs rock/ground = %v, want 4", got)
	}

	// Grass/Dragon resists water twice: 0.5 * 0.5 = 0.25.
	if got := Effectiveness(types.Water, []types.Type{types.Grass, types.Dragon}); got != 0.25 {
		t.Errorf("water vs grass/dragon = %v, want 0.25", got)
	}

	// Immunity on either defending type zeroes the whole thing.
	if got := Effectiveness(types.Ground, []types.Type{types.Electric, types.Flying}); got != 0 {
		t.Errorf("ground vs electric/flying = %v, want 0", got)
	}
}

func TestEffectiveness_UnknownPairsAreNeutral(t *testing.T) {
	// Every pair not listed in the chart is 1.0.
	if got := Effectiveness(types.Normal, []types.Type{types.Normal}); got != 1 {
		t.Errorf("normal vs normal = %v, want 1", got)
	}
	if got := Effectiveness(types.Water, []types.Type{types.Psychic}); got != 1 {
		t.Errorf("water vs psychic = %v, want 1", got)
	}
}

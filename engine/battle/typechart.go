package battle

import "github.com/Mr-Neutr0n/pokemon-game/types"

// typeChart lists every non-neutral matchup of the fixed 18-type matrix.
// Pairs absent from the chart are neutral (1.0).
var typeChart = map[types.Type]map[types.Type]float64{
	types.Normal: {
		types.Rock: 0.5, types.Ghost: 0, types.Steel: 0.5,
	},
	types.Fire: {
		types.Fire: 0.5, types.Water: 0.5, types.Grass: 2, types.Ice: 2,
		types.Bug: 2, types.Rock: 0.5, types.Dragon: 0.5, types.Steel: 2,
	},
	types.Water: {
		types.Fire: 2, types.Water: 0.5, types.Grass: 0.5,
		types.Ground: 2, types.Rock: 2, types.Dragon: 0.5,
	},
	types.Electric: {
		types.Water: 2, types.Electric: 0.5, types.Grass: 0.5,
		types.Ground: 0, types.Flying: 2, types.Dragon: 0.5,
	},
	types.Grass: {
		types.Fire: 0.5, types.Water: 2, types.Grass: 0.5, types.Poison: 0.5,
		types.Ground: 2, types.Flying: 0.5, types.Bug: 0.5, types.Rock: 2,
		types.Dragon: 0.5, types.Steel: 0.5,
	},
	types.Ice: {
		types.Fire: 0.5, types.Water: 0.5, types.Grass: 2, types.Ice: 0.5,
		types.Ground: 2, types.Flying: 2, types.Dragon: 2, types.Steel: 0.5,
	},
	types.Fighting: {
		types.Normal: 2, types.Ice: 2, types.Poison: 0.5, types.Flying: 0.5,
		types.Psychic: 0.5, types.Bug: 0.5, types.Rock: 2, types.Ghost: 0,
		types.Dark: 2, types.Steel: 2, types.Fairy: 0.5,
	},
	types.Poison: {
		types.Grass: 2, types.Poison: 0.5, types.Ground: 0.5,
		types.Rock: 0.5, types.Ghost: 0.5, types.Steel: 0, types.Fairy: 2,
	},
	types.Ground: {
		types.Fire: 2, types.Electric: 2, types.Grass: 0.5, types.Poison: 2,
		types.Flying: 0, types.Bug: 0.5, types.Rock: 2, types.Steel: 2,
	},
	types.Flying: {
		types.Electric: 0.5, types.Grass: 2, types.Fighting: 2,
		types.Bug: 2, types.Rock: 0.5, types.Steel: 0.5,
	},
	types.Psychic: {
		types.Fighting: 2, types.Poison: 2, types.Psychic: 0.5,
		types.Dark: 0, types.Steel: 0.5,
	},
	types.Bug: {
		types.Fire: 0.5, types.Grass: 2, types.Fighting: 0.5, types.Poison: 0.5,
		types.Flying: 0.5, types.Psychic: 2, types.Ghost: 0.5, types.Dark: 2,
		types.Steel: 0.5, types.Fairy: 0.5,
	},
	types.Rock: {
		types.Fire: 2, types.Ice: 2, types.Fighting: 0.5, types.Ground: 0.5,
		types.Flying: 2, types.Bug: 2, types.Steel: 0.5,
	},
	types.Ghost: {
		types.Normal: 0, types.Psychic: 2, types.Ghost: 2, types.Dark: 0.5,
	},
	types.Dragon: {
		types.Dragon: 2, types.Steel: 0.5, types.Fairy: 0,
	},
	types.Dark: {
		types.Fighting: 0.5, types.Psychic: 2, types.Ghost: 2,
		types.Dark: 0.5, types.Fairy: 0.5,
	},
	types.Steel: {
		types.Fire: 0.5, types.Water: 0.5, types.Electric: 0.5,
		types.Ice: 2, types.Rock: 2, types.Steel: 0.5, types.Fairy: 2,
	},
	types.Fairy: {
		types.Fire: 0.5, types.Fighting: 2, types.Poison: 0.5,
		types.Dragon: 2, types.Dark: 2, types.Steel: 0.5,
	},
}

// Effectiveness returns the damage multiplier for an attack type against
// a defender's full type set: the product of each single-type multiplier.
// A dual-type defender can therefore yield 4x, 0.25x, or 0x.
func Effectiveness(attack types.Type, defender []types.Type) float64 {
	mult := 1.0
	for _, t := range defender {
		if row, ok := typeChart[attack]; ok {
			if m, ok := row[t]; ok {
				mult *= m
			}
		}
	}
	return mult
}

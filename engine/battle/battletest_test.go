package battle

import "github.com/Mr-Neutr0n/pokemon-game/types"

// testCatalog builds a small species/move table shared by the battle
// tests. Stats and movepools are simplified but shaped like real data.
func testCatalog() *Catalog {
	species := map[string]types.Species{
		"bulbasaur": {
			ID: "bulbasaur", Name: "Bulbasaur",
			Types:     []types.Type{types.Grass, types.Poison},
			BaseStats: types.BaseStats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45},
			CatchRate: 45,
		},
		"charmander": {
			ID: "charmander", Name: "Charmander",
			Types:     []types.Type{types.Fire},
			BaseStats: types.BaseStats{HP: 39, Attack: 52, Defense: 43, SpAttack: 60, SpDefense: 50, Speed: 65},
			CatchRate: 45,
		},
		"squirtle": {
			ID: "squirtle", Name: "Squirtle",
			Types:     []types.Type{types.Water},
			BaseStats: types.BaseStats{HP: 44, Attack: 48, Defense: 65, SpAttack: 50, SpDefense: 64, Speed: 43},
			CatchRate: 45,
		},
		"pidgey": {
			ID: "pidgey", Name: "Pidgey",
			Types:     []types.Type{types.Normal, types.Flying},
			BaseStats: types.BaseStats{HP: 40, Attack: 45, Defense: 40, SpAttack: 35, SpDefense: 35, Speed: 56},
			CatchRate: 255,
		},
		"gastly": {
			ID: "gastly", Name: "Gastly",
			Types:     []types.Type{types.Ghost, types.Poison},
			BaseStats: types.BaseStats{HP: 30, Attack: 35, Defense: 30, SpAttack: 100, SpDefense: 35, Speed: 80},
			CatchRate: 190,
		},
	}

	moves := map[string]types.Move{
		"tackle": {
			ID: "tackle", Name: "Tackle", Type: types.Normal,
			Category: types.Physical, Power: 40, Accuracy: 100, PP: 35,
		},
		"vine-whip": {
			ID: "vine-whip", Name: "Vine Whip", Type: types.Grass,
			Category: types.Physical, Power: 45, Accuracy: 100, PP: 25,
		},
		"ember": {
			ID: "ember", Name: "Ember", Type: types.Fire,
			Category: types.Special, Power: 40, Accuracy: 100, PP: 25,
			Effect: &types.Effect{Condition: types.Burn, Chance: 10},
		},
		"water-gun": {
			ID: "water-gun", Name: "Water Gun", Type: types.Water,
			Category: types.Special, Power: 40, Accuracy: 100, PP: 25,
		},
		"quick-attack": {
			ID: "quick-attack", Name: "Quick Attack", Type: types.Normal,
			Category: types.Physical, Power: 40, Accuracy: 100, Priority: 1, PP: 30,
		},
		"growl": {
			ID: "growl", Name: "Growl", Type: types.Normal,
			Category: types.Status, Accuracy: 100, PP: 40,
			Effect: &types.Effect{Stat: types.Attack, Stages: -1},
		},
		"swords-dance": {
			ID: "swords-dance", Name: "Swords Dance", Type: types.Normal,
			Category: types.Status, PP: 20,
			Effect: &types.Effect{Stat: types.Attack, Stages: 2, Self: true},
		},
		"thunder-wave": {
			ID: "thunder-wave", Name: "Thunder Wave", Type: types.Electric,
			Category: types.Status, Accuracy: 90, PP: 20,
			Effect: &types.Effect{Condition: types.Paralysis},
		},
		"sing": {
			ID: "sing", Name: "Sing", Type: types.Normal,
			Category: types.Status, Accuracy: 55, PP: 15,
			Effect: &types.Effect{Condition: types.Sleep},
		},
		"poison-sting": {
			ID: "poison-sting", Name: "Poison Sting", Type: types.Poison,
			Category: types.Physical, Power: 15, Accuracy: 100, PP: 35,
			Effect: &types.Effect{Condition: types.PoisonCnd, Chance: 30},
		},
	}

	return NewCatalog(species, moves)
}

// testPokemon builds an owned record at full HP with full PP.
func testPokemon(cat *Catalog, species string, level int, moveIDs ...string) types.Pokemon {
	sp, err := cat.Species(species)
	if err != nil {
		panic(err)
	}
	p := types.Pokemon{
		Species: species,
		Level:   level,
		HP:      StatValue(sp.BaseStats.HP, level),
	}
	for _, id := range moveIDs {
		mv, err := cat.Move(id)
		if err != nil {
			panic(err)
		}
		p.Moves = append(p.Moves, types.MoveSlot{ID: id, PP: mv.PP})
	}
	return p
}

package loader

import (
	"fmt"
	"strings"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// ValidationError collects all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

var validTypes = map[types.Type]bool{
	types.Normal: true, types.Fire: true, types.Water: true,
	types.Electric: true, types.Grass: true, types.Ice: true,
	types.Fighting: true, types.Poison: true, types.Ground: true,
	types.Flying: true, types.Psychic: true, types.Bug: true,
	types.Rock: true, types.Ghost: true, types.Dragon: true,
	types.Dark: true, types.Steel: true, types.Fairy: true,
}

var validCategories = map[types.Category]bool{
	types.Physical: true, types.Special: true, types.Status: true,
}

var validConditions = map[types.Condition]bool{
	types.None: true, types.Burn: true, types.Freeze: true,
	types.Paralysis: true, types.PoisonCnd: true, types.Sleep: true,
}

// validate checks the compiled defs for referential integrity and
// consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.addf("Game.title is required")
	}
	if defs.Game.Start == "" {
		ve.addf("Game.start is required")
	} else if _, ok := defs.Locations[defs.Game.Start]; !ok {
		ve.addf("start location %q not found in defined locations", defs.Game.Start)
	}
	for i, st := range defs.Game.Starters {
		validateTeamEntry(defs, fmt.Sprintf("starter %d", i+1), st, ve)
	}
	for itemID := range defs.Game.StartItems {
		if _, ok := defs.Items[itemID]; !ok {
			ve.addf("start item %q is not a defined item", itemID)
		}
	}

	validateSpecies(defs, ve)
	validateMoves(defs, ve)
	validateItems(defs, ve)
	validateLocations(defs, ve)
	validateTrainers(defs, ve)

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateSpecies(defs *state.Defs, ve *ValidationError) {
	for id, sp := range defs.Species {
		if sp.Name == "" {
			ve.addf("species %q has no name", id)
		}
		if len(sp.Types) < 1 || len(sp.Types) > 2 {
			ve.addf("species %q must have one or two types, has %d", id, len(sp.Types))
		}
		for _, t := range sp.Types {
			if !validTypes[t] {
				ve.addf("species %q has unknown type %q", id, t)
			}
		}
		if sp.BaseStats.HP <= 0 {
			ve.addf("species %q has no base HP", id)
		}
		if len(sp.Moves) == 0 {
			ve.addf("species %q has an empty learnset", id)
		}
		for _, mv := range sp.Moves {
			if _, ok := defs.Moves[mv]; !ok {
				ve.addf("species %q learns undefined move %q", id, mv)
			}
		}
		if sp.CatchRate < 0 || sp.CatchRate > 255 {
			ve.addf("species %q catch rate %d out of range 0..255", id, sp.CatchRate)
		}
		if evo := sp.Evolution; evo != nil {
			if _, ok := defs.Species[evo.Into]; !ok {
				ve.addf("species %q evolves into undefined species %q", id, evo.Into)
			}
			if evo.Level == 0 && evo.Item == "" {
				ve.addf("species %q evolution has neither level nor item trigger", id)
			}
		}
	}
}

func validateMoves(defs *state.Defs, ve *ValidationError) {
	for id, mv := range defs.Moves {
		if mv.Name == "" {
			ve.addf("move %q has no name", id)
		}
		if !validTypes[mv.Type] {
			ve.addf("move %q has unknown type %q", id, mv.Type)
		}
		if !validCategories[mv.Category] {
			ve.addf("move %q has unknown category %q", id, mv.Category)
		}
		if mv.Category != types.Status && mv.Power <= 0 {
			ve.addf("move %q is %s but has no power", id, mv.Category)
		}
		if mv.Accuracy < 0 || mv.Accuracy > 100 {
			ve.addf("move %q accuracy %d out of range 0..100", id, mv.Accuracy)
		}
		if mv.PP <= 0 {
			ve.addf("move %q has no PP", id)
		}
		if eff := mv.Effect; eff != nil {
			if !validConditions[eff.Condition] {
				ve.addf("move %q effect has unknown condition %q", id, eff.Condition)
			}
			if eff.Condition == types.None && eff.Stages == 0 {
				ve.addf("move %q effect does nothing", id)
			}
			if eff.Chance < 0 || eff.Chance > 100 {
				ve.addf("move %q effect chance %d out of range 0..100", id, eff.Chance)
			}
		}
	}
}

func validateItems(defs *state.Defs, ve *ValidationError) {
	for id, it := range defs.Items {
		if it.Name == "" {
			ve.addf("item %q has no name", id)
		}
		if it.Kind == "pokeball" && it.CatchBonus <= 0 {
			ve.addf("item %q is a pokeball with no catch bonus", id)
		}
		if !validConditions[it.Cures] {
			ve.addf("item %q cures unknown condition %q", id, it.Cures)
		}
		for _, sp := range it.EvolvesWith {
			if _, ok := defs.Species[sp]; !ok {
				ve.addf("item %q evolves undefined species %q", id, sp)
			}
		}
	}
}

func validateLocations(defs *state.Defs, ve *ValidationError) {
	for id, loc := range defs.Locations {
		if loc.Name == "" {
			ve.addf("location %q has no name", id)
		}
		for _, sp := range loc.Wild {
			if _, ok := defs.Species[sp]; !ok {
				ve.addf("location %q hosts undefined species %q", id, sp)
			}
		}
		if len(loc.Wild) > 0 {
			if loc.LevelMin <= 0 || loc.LevelMax < loc.LevelMin {
				ve.addf("location %q has invalid wild level range %d..%d", id, loc.LevelMin, loc.LevelMax)
			}
			if loc.EncounterRate <= 0 || loc.EncounterRate > 100 {
				ve.addf("location %q encounter rate %d out of range 1..100", id, loc.EncounterRate)
			}
		}
		for _, item := range loc.Shop {
			it, ok := defs.Items[item]
			if !ok {
				ve.addf("location %q sells undefined item %q", id, item)
			} else if it.Price <= 0 {
				ve.addf("location %q sells %q which has no price", id, item)
			}
		}
		for _, conn := range loc.Connections {
			if _, ok := defs.Locations[conn]; !ok {
				ve.addf("location %q connects to undefined location %q", id, conn)
			}
		}
		if gym := loc.Gym; gym != nil {
			if _, ok := defs.Trainers[gym.Leader]; !ok {
				ve.addf("location %q gym has undefined leader %q", id, gym.Leader)
			}
			if gym.Badge == "" {
				ve.addf("location %q gym awards no badge", id)
			}
		}
	}
}

func validateTrainers(defs *state.Defs, ve *ValidationError) {
	for id, tr := range defs.Trainers {
		if tr.Name == "" {
			ve.addf("trainer %q has no name", id)
		}
		if len(tr.Team) == 0 {
			ve.addf("trainer %q has an empty team", id)
		}
		for i, member := range tr.Team {
			validateTeamEntry(defs, fmt.Sprintf("trainer %q team member %d", id, i+1), member, ve)
		}
	}
}

func validateTeamEntry(defs *state.Defs, who string, tp types.TrainerPokemon, ve *ValidationError) {
	if _, ok := defs.Species[tp.Species]; !ok {
		ve.addf("%s is undefined species %q", who, tp.Species)
		return
	}
	if tp.Level < 1 || tp.Level > state.MaxLevel {
		ve.addf("%s has level %d out of range 1..%d", who, tp.Level, state.MaxLevel)
	}
	for _, mv := range tp.Moves {
		if _, ok := defs.Moves[mv]; !ok {
			ve.addf("%s knows undefined move %q", who, mv)
		}
	}
}

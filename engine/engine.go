// Package engine provides the Step() orchestrator that turns player
// commands into world changes and battle turns.
package engine

import (
	"fmt"
	"strings"

	"github.com/Mr-Neutr0n/pokemon-game/engine/battle"
	"github.com/Mr-Neutr0n/pokemon-game/engine/rng"
	"github.com/Mr-Neutr0n/pokemon-game/engine/save"
	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// Engine holds the game definitions, mutable state, and the active
// battle session, if any. Battles are not saved mid-fight; a battle in
// progress belongs to the engine, not the persistent state.
type Engine struct {
	Defs  *state.Defs
	State *types.State
	RNG   *rng.RNG

	catalog *battle.Catalog
	cfg     battle.Config

	battleSession *battle.Session
	foeTrainer    *types.TrainerDef // nil for wild battles
	gym           *types.GymDef     // set when the trainer battle is a gym match
	wildSpecies   string
	wildShiny     bool
}

// New creates a new engine from definitions.
func New(defs *state.Defs) *Engine {
	s := state.NewState(defs)
	return &Engine{
		Defs:    defs,
		State:   s,
		RNG:     rng.New(s.RNGSeed),
		catalog: defs.Catalog(),
		cfg:     battle.DefaultConfig(),
	}
}

// Seed re-seeds the RNG. Call before the first Step for reproducible
// runs.
func (e *Engine) Seed(seed int64) {
	e.State.RNGSeed = seed
	e.RNG = rng.New(seed)
}

// RestoreRNG re-creates the RNG from seed and advances to the saved
// position.
func (e *Engine) RestoreRNG(seed, position int64) {
	e.RNG = rng.Restore(seed, position)
}

// InBattle reports whether a battle is being fought.
func (e *Engine) InBattle() bool {
	return e.battleSession != nil
}

// Save serializes the current state. Saving is blocked mid-battle.
func (e *Engine) Save() ([]byte, error) {
	if e.InBattle() {
		return nil, fmt.Errorf("can't save during a battle")
	}
	return save.Save(e.State, e.Defs)
}

// LoadSave replaces the current state with a saved one.
func (e *Engine) LoadSave(data []byte) error {
	if e.InBattle() {
		return fmt.Errorf("can't load during a battle")
	}
	sd, err := save.Load(data)
	if err != nil {
		return err
	}
	save.ApplySave(e.State, sd)
	e.RestoreRNG(sd.RNGSeed, sd.RNGPosition)
	return nil
}

// Intro returns the opening text for a fresh game.
func (e *Engine) Intro() []string {
	var out []string
	if e.Defs.Game.Intro != "" {
		out = append(out, e.Defs.Game.Intro)
	}
	if e.State.Player.Name == "" {
		out = append(out, "What is your name?")
	}
	return out
}

// Step processes one player command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// Character creation runs as a short conversation before the world
	// opens up.
	if e.State.Player.Name == "" {
		e.stepNaming(input, &result)
		e.finishStep()
		return result
	}
	if len(e.State.Player.Team) == 0 {
		e.stepStarter(input, &result)
		e.finishStep()
		return result
	}

	intent := parse(input)
	if intent.Verb == "" {
		result.Output = append(result.Output, "What do you want to do?")
		return result
	}

	if e.InBattle() {
		e.stepBattle(intent, &result)
		e.finishStep()
		return result
	}

	switch intent.Verb {
	case "look":
		e.cmdLook(&result)
	case "map":
		e.cmdMap(&result)
	case "go":
		e.cmdGo(intent.Arg, &result)
	case "explore":
		e.cmdExplore(&result)
	case "team":
		e.cmdTeam(&result)
	case "info":
		e.cmdInfo(intent.Arg, &result)
	case "bag":
		e.cmdBag(&result)
	case "use":
		e.cmdUse(intent.Arg, &result)
	case "shop":
		e.cmdShop(&result)
	case "buy":
		e.cmdBuy(intent.Arg, &result)
	case "heal":
		e.cmdHeal(&result)
	case "gym":
		e.cmdGym(&result)
	case "pokedex":
		e.cmdPokedex(&result)
	case "wait":
		result.Output = append(result.Output, "Time passes.")
	default:
		result.Output = append(result.Output, fmt.Sprintf("You can't %s here.", intent.Verb))
	}

	e.finishStep()
	return result
}

// finishStep records RNG position and advances the turn counter.
func (e *Engine) finishStep() {
	e.State.RNGPosition = e.RNG.Position()
	e.State.TurnCount++
}

// stepNaming consumes the trainer's name.
func (e *Engine) stepNaming(input string, result *types.Result) {
	name := strings.TrimSpace(input)
	if name == "" {
		result.Output = append(result.Output, "What is your name?")
		return
	}
	e.State.Player.Name = name
	result.Events = append(result.Events, types.Event{
		Type: "named", Data: map[string]any{"name": name},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("Welcome, %s!", name),
		"Now, choose your first partner:")
	result.Output = append(result.Output, e.starterMenu()...)
}

// stepStarter consumes the starter choice.
func (e *Engine) stepStarter(input string, result *types.Result) {
	choice := strings.ToLower(strings.TrimSpace(input))
	choice = strings.TrimPrefix(choice, "choose ")
	choice = strings.TrimPrefix(choice, "pick ")

	for _, st := range e.Defs.Game.Starters {
		sp := e.Defs.Species[st.Species]
		if choice != st.Species && choice != strings.ToLower(sp.Name) {
			continue
		}
		p, err := state.NewPokemon(e.Defs, st.Species, st.Level)
		if err != nil {
			result.Output = append(result.Output, err.Error())
			return
		}
		state.AddToTeam(e.State, p)
		state.RecordCaught(e.State, st.Species)
		for item, count := range e.Defs.Game.StartItems {
			state.AddItem(e.State, item, count)
		}
		result.Events = append(result.Events, types.Event{
			Type: "starter_chosen", Data: map[string]any{"species": st.Species},
		})
		result.Output = append(result.Output,
			fmt.Sprintf("%s chose %s!", e.State.Player.Name, sp.Name),
			"Your adventure begins.")
		e.cmdLook(result)
		return
	}

	result.Output = append(result.Output, "Pick one of these partners:")
	result.Output = append(result.Output, e.starterMenu()...)
}

func (e *Engine) starterMenu() []string {
	var out []string
	for _, st := range e.Defs.Game.Starters {
		sp := e.Defs.Species[st.Species]
		typeNames := make([]string, len(sp.Types))
		for i, t := range sp.Types {
			typeNames[i] = string(t)
		}
		out = append(out, fmt.Sprintf("  %s (%s), level %d",
			sp.Name, strings.Join(typeNames, "/"), st.Level))
	}
	return out
}

// location returns the player's current location definition.
func (e *Engine) location() types.LocationDef {
	return e.Defs.Locations[e.State.Player.Location]
}

// findLocation matches an argument against location IDs and names.
func (e *Engine) findLocation(arg string) (types.LocationDef, bool) {
	key := strings.ReplaceAll(strings.ToLower(arg), " ", "_")
	if loc, ok := e.Defs.Locations[key]; ok {
		return loc, true
	}
	for _, loc := range e.Defs.Locations {
		if strings.EqualFold(loc.Name, arg) {
			return loc, true
		}
	}
	return types.LocationDef{}, false
}

// findItem matches an argument against item IDs and names.
func (e *Engine) findItem(arg string) (types.ItemDef, bool) {
	key := strings.ReplaceAll(strings.ToLower(arg), " ", "-")
	if it, ok := e.Defs.Items[key]; ok {
		return it, true
	}
	for _, it := range e.Defs.Items {
		if strings.EqualFold(it.Name, arg) {
			return it, true
		}
	}
	return types.ItemDef{}, false
}

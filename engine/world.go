package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// shinyDenominator is the 1-in-N chance a wild encounter is shiny.
const shinyDenominator = 512

func (e *Engine) cmdLook(result *types.Result) {
	loc := e.location()
	result.Output = append(result.Output, loc.Name, loc.Description)

	var features []string
	if loc.Center {
		features = append(features, "a Pokemon Center")
	}
	if len(loc.Shop) > 0 {
		features = append(features, "a shop")
	}
	if loc.Gym != nil {
		features = append(features, "a gym")
	}
	if len(features) > 0 {
		result.Output = append(result.Output, "You see "+strings.Join(features, " and ")+" here.")
	}
	if len(loc.Wild) > 0 {
		result.Output = append(result.Output, "Tall grass rustles nearby. You could explore it.")
	}
	if len(loc.Connections) > 0 {
		names := make([]string, 0, len(loc.Connections))
		for _, id := range loc.Connections {
			names = append(names, e.Defs.Locations[id].Name)
		}
		result.Output = append(result.Output, "Paths lead to: "+strings.Join(names, ", ")+".")
	}
}

func (e *Engine) cmdMap(result *types.Result) {
	ids := make([]string, 0, len(e.Defs.Locations))
	for id := range e.Defs.Locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result.Output = append(result.Output, "Known world:")
	for _, id := range ids {
		loc := e.Defs.Locations[id]
		marker := "  "
		switch {
		case id == e.State.Player.Location:
			marker = "@ "
		case e.State.Player.Visited[id]:
			marker = "* "
		default:
			// Unvisited locations stay hidden.
			continue
		}
		result.Output = append(result.Output, marker+loc.Name)
	}
}

func (e *Engine) cmdGo(arg string, result *types.Result) {
	if arg == "" {
		result.Output = append(result.Output, "Go where?")
		return
	}
	dest, ok := e.findLocation(arg)
	if !ok {
		result.Output = append(result.Output, fmt.Sprintf("You don't know the way to %q.", arg))
		return
	}

	connected := false
	for _, id := range e.location().Connections {
		if id == dest.ID {
			connected = true
			break
		}
	}
	if !connected {
		result.Output = append(result.Output, fmt.Sprintf("There is no direct path to %s from here.", dest.Name))
		return
	}

	e.State.Player.Location = dest.ID
	e.State.Player.Visited[dest.ID] = true
	result.Events = append(result.Events, types.Event{
		Type: "moved", Data: map[string]any{"location": dest.ID},
	})
	result.Output = append(result.Output, fmt.Sprintf("You head to %s.", dest.Name))
	e.cmdLook(result)
}

func (e *Engine) cmdExplore(result *types.Result) {
	loc := e.location()
	if len(loc.Wild) == 0 {
		result.Output = append(result.Output, "There is nothing wild to find here.")
		return
	}
	if state.TeamWiped(e.State) {
		result.Output = append(result.Output, "Your team is in no shape to explore. Visit a Pokemon Center.")
		return
	}

	if !e.RNG.Chance(loc.EncounterRate) {
		result.Output = append(result.Output, "You comb through the grass but find nothing.")
		return
	}

	species := loc.Wild[e.RNG.Intn(len(loc.Wild))]
	level := e.RNG.Between(loc.LevelMin, loc.LevelMax)
	shiny := e.RNG.Intn(shinyDenominator) == 0
	e.startWildBattle(species, level, shiny, result)
}

func (e *Engine) cmdTeam(result *types.Result) {
	if len(e.State.Player.Team) == 0 {
		result.Output = append(result.Output, "You have no Pokemon.")
		return
	}
	result.Output = append(result.Output, "Your team:")
	for i, p := range e.State.Player.Team {
		result.Output = append(result.Output, fmt.Sprintf("  %d. %s", i+1, e.describePokemon(p)))
	}
	if n := len(e.State.Player.Box); n > 0 {
		result.Output = append(result.Output, fmt.Sprintf("(%d more in the box)", n))
	}
}

func (e *Engine) cmdInfo(arg string, result *types.Result) {
	idx, err := e.teamIndex(arg)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	p := e.State.Player.Team[idx]
	sp := e.Defs.Species[p.Species]

	typeNames := make([]string, len(sp.Types))
	for i, t := range sp.Types {
		typeNames[i] = string(t)
	}
	result.Output = append(result.Output,
		fmt.Sprintf("%s (%s), level %d", state.DisplayName(e.Defs, p), strings.Join(typeNames, "/"), p.Level),
		fmt.Sprintf("  HP %d/%d%s", p.HP, state.MaxHP(e.Defs, p), statusSuffix(p.Status)),
		fmt.Sprintf("  Exp %d/%d", p.Exp, state.ExpToNext(p.Level)),
	)
	for _, slot := range p.Moves {
		mv := e.Defs.Moves[slot.ID]
		result.Output = append(result.Output, fmt.Sprintf("  - %s (%s, PP %d/%d)", mv.Name, mv.Type, slot.PP, mv.PP))
	}
	if p.CaughtAt != "" {
		result.Output = append(result.Output, fmt.Sprintf("  Caught at %s, level %d", e.Defs.Locations[p.CaughtAt].Name, p.CaughtLvl))
	}
}

func (e *Engine) cmdBag(result *types.Result) {
	if len(e.State.Player.Bag) == 0 {
		result.Output = append(result.Output, "Your bag is empty.")
		return
	}
	ids := make([]string, 0, len(e.State.Player.Bag))
	for id := range e.State.Player.Bag {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result.Output = append(result.Output, fmt.Sprintf("Bag (%d Poke Dollars):", e.State.Player.Money))
	for _, id := range ids {
		it := e.Defs.Items[id]
		result.Output = append(result.Output, fmt.Sprintf("  %s x%d", it.Name, e.State.Player.Bag[id]))
	}
}

// cmdUse handles out-of-battle item use: "use potion 2" heals team
// slot 2, "use thunder-stone 1" evolves slot 1.
func (e *Engine) cmdUse(arg string, result *types.Result) {
	itemArg, slotArg := splitTrailingIndex(arg)
	if itemArg == "" {
		result.Output = append(result.Output, "Use what?")
		return
	}
	item, ok := e.findItem(itemArg)
	if !ok || !state.HasItem(e.State, item.ID) {
		result.Output = append(result.Output, "You don't have that.")
		return
	}

	idx := 0
	if slotArg != "" {
		var err error
		if idx, err = e.teamIndex(slotArg); err != nil {
			result.Output = append(result.Output, err.Error())
			return
		}
	}
	p := &e.State.Player.Team[idx]
	name := state.DisplayName(e.Defs, *p)

	switch item.Kind {
	case "healing":
		if p.HP <= 0 {
			result.Output = append(result.Output, fmt.Sprintf("%s has fainted; a potion won't help.", name))
			return
		}
		max := state.MaxHP(e.Defs, *p)
		if p.HP >= max {
			result.Output = append(result.Output, fmt.Sprintf("%s is already at full health.", name))
			return
		}
		before := p.HP
		p.HP += item.Heal
		if p.HP > max {
			p.HP = max
		}
		state.RemoveItem(e.State, item.ID)
		result.Output = append(result.Output, fmt.Sprintf("%s recovered %d HP.", name, p.HP-before))

	case "revive":
		if p.HP > 0 {
			result.Output = append(result.Output, fmt.Sprintf("%s hasn't fainted.", name))
			return
		}
		p.HP = state.MaxHP(e.Defs, *p) / 2
		if p.HP < 1 {
			p.HP = 1
		}
		p.Status = types.None
		state.RemoveItem(e.State, item.ID)
		result.Output = append(result.Output, fmt.Sprintf("%s came back to its senses!", name))

	case "cure":
		if p.Status == types.None || (item.Cures != types.None && item.Cures != p.Status) {
			result.Output = append(result.Output, "It won't have any effect.")
			return
		}
		p.Status = types.None
		state.RemoveItem(e.State, item.ID)
		result.Output = append(result.Output, fmt.Sprintf("%s's status returned to normal!", name))

	case "evolution":
		into := state.StoneEvolution(e.Defs, *p, item.ID)
		if into == "" {
			result.Output = append(result.Output, "Nothing happens.")
			return
		}
		e.evolvePokemon(p, into, result)
		state.RemoveItem(e.State, item.ID)

	case "pokeball":
		result.Output = append(result.Output, "There's nothing to throw it at out here.")

	default:
		result.Output = append(result.Output, "You can't use that right now.")
	}
}

func (e *Engine) cmdShop(result *types.Result) {
	loc := e.location()
	if len(loc.Shop) == 0 {
		result.Output = append(result.Output, "There is no shop here.")
		return
	}
	result.Output = append(result.Output, fmt.Sprintf("Shop stock (you have %d):", e.State.Player.Money))
	for _, id := range loc.Shop {
		it := e.Defs.Items[id]
		result.Output = append(result.Output, fmt.Sprintf("  %s, %d Poke Dollars: %s", it.Name, it.Price, it.Description))
	}
}

func (e *Engine) cmdBuy(arg string, result *types.Result) {
	loc := e.location()
	if len(loc.Shop) == 0 {
		result.Output = append(result.Output, "There is no shop here.")
		return
	}
	itemArg, qtyArg := splitTrailingIndex(arg)
	if itemArg == "" {
		result.Output = append(result.Output, "Buy what?")
		return
	}
	item, ok := e.findItem(itemArg)
	if !ok {
		result.Output = append(result.Output, "No such item.")
		return
	}

	stocked := false
	for _, id := range loc.Shop {
		if id == item.ID {
			stocked = true
			break
		}
	}
	if !stocked {
		result.Output = append(result.Output, fmt.Sprintf("This shop doesn't carry %s.", item.Name))
		return
	}

	qty := 1
	if qtyArg != "" {
		if n, err := strconv.Atoi(qtyArg); err == nil && n > 0 {
			qty = n
		}
	}
	total := item.Price * qty
	if !state.SpendMoney(e.State, total) {
		result.Output = append(result.Output, "You can't afford that.")
		return
	}
	state.AddItem(e.State, item.ID, qty)
	result.Events = append(result.Events, types.Event{
		Type: "bought", Data: map[string]any{"item": item.ID, "count": qty, "cost": total},
	})
	result.Output = append(result.Output, fmt.Sprintf("Bought %d %s for %d.", qty, item.Name, total))
}

func (e *Engine) cmdHeal(result *types.Result) {
	if !e.location().Center {
		result.Output = append(result.Output, "There is no Pokemon Center here.")
		return
	}
	state.HealTeam(e.State, e.Defs)
	result.Events = append(result.Events, types.Event{Type: "healed", Data: map[string]any{}})
	result.Output = append(result.Output,
		"The nurse takes your Pokemon for a moment.",
		"Your team is fully rested!")
}

func (e *Engine) cmdGym(result *types.Result) {
	loc := e.location()
	if loc.Gym == nil {
		result.Output = append(result.Output, "There is no gym here.")
		return
	}
	if state.HasBadge(e.State, loc.Gym.Badge) {
		result.Output = append(result.Output, fmt.Sprintf("You already hold the %s.", loc.Gym.Badge))
		return
	}
	if state.TeamWiped(e.State) {
		result.Output = append(result.Output, "Your team can't fight. Heal up first.")
		return
	}
	e.startGymBattle(loc.Gym, result)
}

func (e *Engine) cmdPokedex(result *types.Result) {
	seen, caught := len(e.State.Player.Seen), len(e.State.Player.Caught)
	result.Output = append(result.Output,
		fmt.Sprintf("Pokedex: %d seen, %d caught of %d species.", seen, caught, len(e.Defs.Species)))

	ids := make([]string, 0, len(e.State.Player.Seen))
	for id := range e.State.Player.Seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		mark := "seen"
		if e.State.Player.Caught[id] {
			mark = "caught"
		}
		result.Output = append(result.Output, fmt.Sprintf("  %s (%s)", e.Defs.Species[id].Name, mark))
	}
}

// teamIndex parses a 1-based team slot or nickname into an index.
func (e *Engine) teamIndex(arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("which team member?")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(e.State.Player.Team) {
			return 0, fmt.Errorf("you have no team member %d", n)
		}
		return n - 1, nil
	}
	for i, p := range e.State.Player.Team {
		if strings.EqualFold(state.DisplayName(e.Defs, p), arg) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no team member called %q", arg)
}

// evolvePokemon applies an evolution with fanfare.
func (e *Engine) evolvePokemon(p *types.Pokemon, into string, result *types.Result) {
	oldName := state.DisplayName(e.Defs, *p)
	if err := state.Evolve(e.Defs, p, into); err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	state.RecordCaught(e.State, into)
	result.Events = append(result.Events, types.Event{
		Type: "evolved", Data: map[string]any{"into": into},
	})
	result.Output = append(result.Output,
		fmt.Sprintf("What? %s is evolving!", oldName),
		fmt.Sprintf("%s evolved into %s!", oldName, e.Defs.Species[into].Name))
}

// describePokemon is the one-line team listing form.
func (e *Engine) describePokemon(p types.Pokemon) string {
	max := state.MaxHP(e.Defs, p)
	s := fmt.Sprintf("%s Lv.%d  HP %d/%d%s",
		state.DisplayName(e.Defs, p), p.Level, p.HP, max, statusSuffix(p.Status))
	if p.Shiny {
		s += " (shiny)"
	}
	return s
}

func statusSuffix(cond types.Condition) string {
	if cond == types.None {
		return ""
	}
	return " [" + string(cond) + "]"
}

// splitTrailingIndex splits "potion 2" into ("potion", "2"). Arguments
// without a trailing number come back whole.
func splitTrailingIndex(arg string) (string, string) {
	fields := strings.Fields(arg)
	if len(fields) < 2 {
		return arg, ""
	}
	last := fields[len(fields)-1]
	if _, err := strconv.Atoi(last); err != nil {
		return arg, ""
	}
	return strings.Join(fields[:len(fields)-1], " "), last
}

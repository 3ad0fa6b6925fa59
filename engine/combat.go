package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Mr-Neutr0n/pokemon-game/engine/battle"
	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// startWildBattle opens a session against one wild Pokemon.
func (e *Engine) startWildBattle(species string, level int, shiny bool, result *types.Result) {
	wild, err := state.NewPokemon(e.Defs, species, level)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	wild.Shiny = shiny
	wild.CaughtAt = e.State.Player.Location

	s, err := battle.NewSession(e.State.Player.Team, []types.Pokemon{wild}, battle.Wild, e.catalog, e.RNG, e.cfg)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	e.battleSession = s
	e.foeTrainer = nil
	e.gym = nil
	e.wildSpecies = species
	e.wildShiny = shiny
	state.RecordSeen(e.State, species)

	name := e.Defs.Species[species].Name
	result.Events = append(result.Events, types.Event{
		Type: "battle_started", Data: map[string]any{"mode": "wild", "species": species, "level": level},
	})
	if shiny {
		result.Output = append(result.Output, fmt.Sprintf("A shiny wild %s appeared!", name))
	} else {
		result.Output = append(result.Output, fmt.Sprintf("A wild %s appeared! (level %d)", name, level))
	}
	result.Output = append(result.Output, fmt.Sprintf("Go, %s!", s.Active(0).Name))
	e.battleStatus(result)
}

// startGymBattle opens a session against the gym leader's full team.
func (e *Engine) startGymBattle(gym *types.GymDef, result *types.Result) {
	trainer, ok := e.Defs.Trainers[gym.Leader]
	if !ok {
		result.Output = append(result.Output, "The gym is empty.")
		return
	}

	var foes []types.Pokemon
	for _, member := range trainer.Team {
		p, err := state.NewPokemon(e.Defs, member.Species, member.Level)
		if err != nil {
			result.Output = append(result.Output, err.Error())
			return
		}
		if len(member.Moves) > 0 {
			p.Moves = nil
			for _, id := range member.Moves {
				p.Moves = append(p.Moves, types.MoveSlot{ID: id, PP: e.Defs.Moves[id].PP})
			}
		}
		foes = append(foes, p)
		state.RecordSeen(e.State, member.Species)
	}

	s, err := battle.NewSession(e.State.Player.Team, foes, battle.Trainer, e.catalog, e.RNG, e.cfg)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	e.battleSession = s
	e.foeTrainer = &trainer
	e.gym = gym

	result.Events = append(result.Events, types.Event{
		Type: "battle_started", Data: map[string]any{"mode": "trainer", "trainer": trainer.ID},
	})
	result.Output = append(result.Output, fmt.Sprintf("%s wants to battle!", trainer.Name))
	if trainer.Intro != "" {
		result.Output = append(result.Output, fmt.Sprintf("%q", trainer.Intro))
	}
	result.Output = append(result.Output, fmt.Sprintf("%s sends out %s!", trainer.Name, s.Active(1).Name))
	result.Output = append(result.Output, fmt.Sprintf("Go, %s!", s.Active(0).Name))
	e.battleStatus(result)
}

// stepBattle routes commands while a battle is live.
func (e *Engine) stepBattle(intent Intent, result *types.Result) {
	switch intent.Verb {
	case "fight":
		e.battleFight(intent.Arg, result)
	case "switch":
		e.battleSwitch(intent.Arg, result)
	case "use":
		e.battleUse(intent.Arg, result)
	case "catch":
		e.battleCatch(intent.Arg, result)
	case "run":
		e.battleRun(result)
	case "team":
		e.cmdTeam(result)
	case "look", "status":
		e.battleStatus(result)
	case "moves":
		e.listMoves(result)
	default:
		result.Output = append(result.Output,
			"You're in a battle! (fight, switch, use <item>, catch, run)")
	}
}

// battleFight resolves a move choice and plays the turn.
func (e *Engine) battleFight(arg string, result *types.Result) {
	active := e.battleSession.Active(0)
	if arg == "" {
		e.listMoves(result)
		return
	}

	idx := -1
	if n, err := strconv.Atoi(arg); err == nil {
		idx = n - 1
	} else {
		for i, slot := range active.Moves {
			if strings.EqualFold(slot.Move.Name, arg) {
				idx = i
				break
			}
		}
	}
	if idx < 0 || idx >= len(active.Moves) {
		result.Output = append(result.Output, fmt.Sprintf("%s doesn't know that move.", active.Name))
		e.listMoves(result)
		return
	}

	e.playTurn(battle.UseMove(idx), result)
}

func (e *Engine) listMoves(result *types.Result) {
	active := e.battleSession.Active(0)
	result.Output = append(result.Output, fmt.Sprintf("%s's moves:", active.Name))
	for i, slot := range active.Moves {
		result.Output = append(result.Output, fmt.Sprintf("  %d. %s (%s, PP %d/%d)",
			i+1, slot.Move.Name, slot.Move.Type, slot.PP, slot.MaxPP))
	}
}

func (e *Engine) battleSwitch(arg string, result *types.Result) {
	idx, err := e.teamIndex(arg)
	if err != nil {
		result.Output = append(result.Output, err.Error())
		return
	}
	e.playTurn(battle.Switch(idx), result)
}

// battleUse spends an inventory item as the turn's action. The item is
// only consumed if the turn actually plays.
func (e *Engine) battleUse(arg string, result *types.Result) {
	item, ok := e.findItem(arg)
	if !ok || !state.HasItem(e.State, item.ID) {
		result.Output = append(result.Output, "You don't have that.")
		return
	}
	if item.Kind == "pokeball" {
		e.battleCatch(arg, result)
		return
	}

	eff, usable := e.battleItemEffect(item)
	if !usable {
		result.Output = append(result.Output, "That won't help right now.")
		return
	}
	if e.playTurn(battle.UseItem(eff), result) {
		state.RemoveItem(e.State, item.ID)
	}
}

// battleItemEffect maps an item definition onto its in-battle effect.
func (e *Engine) battleItemEffect(item types.ItemDef) (battle.ItemEffect, bool) {
	active := e.battleSession.Active(0)
	eff := battle.ItemEffect{Name: item.Name}

	switch item.Kind {
	case "healing":
		if active.Fainted() || active.HP >= active.MaxHP {
			return eff, false
		}
		eff.Heal = item.Heal
	case "cure":
		if active.Status == types.None {
			return eff, false
		}
		if item.Cures != types.None && item.Cures != active.Status {
			return eff, false
		}
		eff.CureAll = true
	case "revive":
		if !active.Fainted() {
			return eff, false
		}
		eff.Revive = true
	default:
		return eff, false
	}
	return eff, true
}

// battleCatch throws a ball. With no argument the plainest ball in the
// bag flies.
func (e *Engine) battleCatch(arg string, result *types.Result) {
	if e.battleSession.Mode() != battle.Wild {
		result.Output = append(result.Output, "You can't catch another trainer's Pokemon!")
		return
	}

	var ball types.ItemDef
	if arg != "" {
		item, ok := e.findItem(arg)
		if !ok || item.Kind != "pokeball" || !state.HasItem(e.State, item.ID) {
			result.Output = append(result.Output, "You don't have a ball like that.")
			return
		}
		ball = item
	} else {
		found := false
		ids := make([]string, 0, len(e.State.Player.Bag))
		for id := range e.State.Player.Bag {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			it := e.Defs.Items[id]
			if it.Kind == "pokeball" && (!found || it.CatchBonus < ball.CatchBonus) {
				ball = it
				found = true
			}
		}
		if !found {
			result.Output = append(result.Output, "You have no balls to throw!")
			return
		}
	}

	res, caught, err := e.battleSession.AttemptCatch(ball.Name, ball.CatchBonus)
	if err != nil {
		result.Output = append(result.Output, friendlyBattleError(err))
		return
	}
	state.RemoveItem(e.State, ball.ID)
	e.flushTurn(res, result)

	if caught {
		e.finishCatch(result)
		return
	}
	if e.battleSession.Terminal() {
		e.endBattle(result)
		return
	}
	e.battleStatus(result)
}

func (e *Engine) battleRun(result *types.Result) {
	if e.battleSession.Mode() != battle.Wild {
		result.Output = append(result.Output, "You can't run from a trainer battle!")
		return
	}
	e.playTurn(battle.Flee(), result)
}

// playTurn submits the player's action against the engine-chosen enemy
// action and reports the outcome. Returns true if the turn played.
func (e *Engine) playTurn(action battle.Action, result *types.Result) bool {
	enemy := e.battleSession.ChooseEnemyAction()
	res, err := e.battleSession.SubmitTurn(action, enemy)
	if err != nil {
		result.Output = append(result.Output, friendlyBattleError(err))
		return false
	}
	e.flushTurn(res, result)

	if e.battleSession.Terminal() {
		e.endBattle(result)
		return true
	}

	// A faint with backup left forces a switch next turn.
	if e.battleSession.Active(0).Fainted() {
		result.Output = append(result.Output,
			fmt.Sprintf("%s is down! Choose another Pokemon. (switch <n>)", e.battleSession.Active(0).Name))
	}
	e.battleStatus(result)
	return true
}

// flushTurn folds a battle turn's events and text into the step result.
func (e *Engine) flushTurn(res *battle.TurnResult, result *types.Result) {
	result.Events = append(result.Events, res.Events...)
	result.Output = append(result.Output, res.Output...)
}

// battleStatus prints the two active HP lines.
func (e *Engine) battleStatus(result *types.Result) {
	foe := e.battleSession.Active(1)
	mine := e.battleSession.Active(0)
	result.Output = append(result.Output,
		fmt.Sprintf("-- %s Lv.%d %s | %s Lv.%d %s",
			foe.Name, foe.Level, hpBar(foe.HP, foe.MaxHP),
			mine.Name, mine.Level, hpBar(mine.HP, mine.MaxHP)))
}

// hpBar renders a ten-segment HP gauge.
func hpBar(hp, max int) string {
	if max <= 0 {
		max = 1
	}
	filled := hp * 10 / max
	if hp > 0 && filled == 0 {
		filled = 1
	}
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("#", filled), strings.Repeat(".", 10-filled), hp, max)
}

// finishCatch adds the caught wild Pokemon to the team.
func (e *Engine) finishCatch(result *types.Result) {
	caught := e.battleSession.Active(1)
	record := types.Pokemon{
		Species:   e.wildSpecies,
		Level:     caught.Level,
		HP:        caught.HP,
		Status:    caught.Status,
		Shiny:     e.wildShiny,
		CaughtAt:  e.State.Player.Location,
		CaughtLvl: caught.Level,
	}
	for _, slot := range caught.Moves {
		record.Moves = append(record.Moves, types.MoveSlot{ID: slot.Move.ID, PP: slot.PP})
	}

	e.writeBackTeam()
	joined := state.AddToTeam(e.State, record)
	state.RecordCaught(e.State, e.wildSpecies)

	name := e.Defs.Species[e.wildSpecies].Name
	result.Events = append(result.Events, types.Event{
		Type: "pokemon_caught", Data: map[string]any{"species": e.wildSpecies, "team": joined},
	})
	if joined {
		result.Output = append(result.Output, fmt.Sprintf("%s joined your team!", name))
	} else {
		result.Output = append(result.Output, fmt.Sprintf("%s was sent to the box.", name))
	}
	e.clearBattle()
}

// endBattle settles a terminal session: write-backs, rewards, and the
// aftermath of defeat.
func (e *Engine) endBattle(result *types.Result) {
	s := e.battleSession
	e.writeBackTeam()

	switch s.Outcome() {
	case battle.WonBySideA:
		e.awardVictory(result)
	case battle.WonBySideB:
		e.blackout(result)
	case battle.Fled:
		// Battle text already covered the escape.
	}
	e.clearBattle()
}

// awardVictory pays out experience, money, and badges.
func (e *Engine) awardVictory(result *types.Result) {
	s := e.battleSession

	// The Pokemon standing at the end collects the experience.
	winnerIdx := s.ActiveIndex(0)
	winner := &e.State.Player.Team[winnerIdx]

	exp := 0
	for _, foe := range s.Team(1) {
		exp += state.ExpGain(winner.Level, foe.Level)
	}
	name := state.DisplayName(e.Defs, *winner)
	result.Output = append(result.Output, fmt.Sprintf("%s gained %d experience!", name, exp))

	levels, evolveInto := state.GainExp(e.Defs, winner, exp)
	if levels > 0 {
		result.Events = append(result.Events, types.Event{
			Type: "level_up", Data: map[string]any{"levels": levels, "level": winner.Level},
		})
		result.Output = append(result.Output, fmt.Sprintf("%s grew to level %d!", name, winner.Level))
	}
	if evolveInto != "" {
		e.evolvePokemon(winner, evolveInto, result)
	}

	if e.foeTrainer != nil {
		result.Output = append(result.Output, fmt.Sprintf("You defeated %s!", e.foeTrainer.Name))
		if e.gym != nil {
			if e.gym.PrizeMoney > 0 {
				state.AddMoney(e.State, e.gym.PrizeMoney)
				result.Output = append(result.Output, fmt.Sprintf("You won %d Poke Dollars!", e.gym.PrizeMoney))
			}
			if state.AwardBadge(e.State, e.gym.Badge) {
				result.Events = append(result.Events, types.Event{
					Type: "badge_earned", Data: map[string]any{"badge": e.gym.Badge},
				})
				result.Output = append(result.Output, fmt.Sprintf("You earned the %s!", e.gym.Badge))
			}
		}
	}
	result.Events = append(result.Events, types.Event{Type: "battle_won", Data: map[string]any{}})
}

// blackout handles a full team wipe: back to the start, patched up,
// half the money gone.
func (e *Engine) blackout(result *types.Result) {
	e.State.Player.Money /= 2
	e.State.Player.Location = e.Defs.Game.Start
	state.HealTeam(e.State, e.Defs)

	result.Events = append(result.Events, types.Event{Type: "blackout", Data: map[string]any{}})
	result.Output = append(result.Output,
		"You have no Pokemon left able to fight!",
		"You black out...",
		fmt.Sprintf("You come to at %s. Your Pokemon have been rested.", e.Defs.Locations[e.Defs.Game.Start].Name))
}

// writeBackTeam copies battle results onto the owned team records.
func (e *Engine) writeBackTeam() {
	for i, c := range e.battleSession.Team(0) {
		if i < len(e.State.Player.Team) {
			c.WriteBack(&e.State.Player.Team[i])
		}
	}
}

func (e *Engine) clearBattle() {
	e.battleSession = nil
	e.foeTrainer = nil
	e.gym = nil
	e.wildSpecies = ""
	e.wildShiny = false
}

// friendlyBattleError rewrites session errors as battle text.
func friendlyBattleError(err error) string {
	switch {
	case errors.Is(err, battle.ErrInvalidMoveIndex):
		return "It doesn't know that move."
	case errors.Is(err, battle.ErrNoPPRemaining):
		return "There's no PP left for that move!"
	case errors.Is(err, battle.ErrBattleOver):
		return "The battle is already over."
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

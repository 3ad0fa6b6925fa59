package battle

import (
	"fmt"
	"math"

	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// ActionKind enumerates what a side can do with its turn.
type ActionKind int

const (
	ActUseMove ActionKind = iota
	ActUseItem
	ActSwitch
	ActFlee
)

// ItemEffect is the battle-relevant payload of an inventory item. The
// session applies the effect; ownership and consumption stay with the
// caller.
type ItemEffect struct {
	Name    string
	Heal    int
	CureAll bool
	Revive  bool
}

// Action is one side's declared intent for a turn.
type Action struct {
	Kind      ActionKind
	MoveIndex int
	SwitchTo  int
	Item      ItemEffect
}

// UseMove declares an attack with the move at the given slot.
func UseMove(index int) Action {
	return Action{Kind: ActUseMove, MoveIndex: index}
}

// UseItem declares using an item on the side's active combatant.
func UseItem(effect ItemEffect) Action {
	return Action{Kind: ActUseItem, Item: effect}
}

// Switch declares swapping the active combatant for a teammate.
func Switch(to int) Action {
	return Action{Kind: ActSwitch, SwitchTo: to}
}

// Flee declares an escape attempt. Wild battles only.
func Flee() Action {
	return Action{Kind: ActFlee}
}

// resolveTurn plays out one validated turn. Order of operations:
// non-move actions resolve first (side A before side B), then moves in
// priority order, then end-of-turn residual damage for both sides.
func (s *Session) resolveTurn(acts [2]Action, res *TurnResult) {
	var fleeing bool

	for side := 0; side < 2; side++ {
		switch acts[side].Kind {
		case ActSwitch:
			s.executeSwitch(side, acts[side].SwitchTo, res)
		case ActUseItem:
			s.executeItem(side, acts[side].Item, res)
		case ActFlee:
			fleeing = true
		}
	}

	// Move order is decided after switches and items have landed, so a
	// fresh switch-in's speed is what counts.
	for _, side := range s.moveOrder(acts) {
		actor := s.Active(side)
		if actor.Fainted() {
			// Queued move is forfeited when the actor went down earlier
			// this turn.
			continue
		}
		s.executeMove(side, acts[side].MoveIndex, res)
	}

	if fleeing && !s.Active(0).Fainted() {
		s.outcome = Fled
		res.emit("fled", map[string]any{"side": 0}, "Got away safely!")
		return
	}

	s.applyResiduals(res)
	s.checkOutcome(res)
}

// moveOrder returns the sides that declared moves, sorted by move
// priority, then effective Speed, then a coin flip.
func (s *Session) moveOrder(acts [2]Action) []int {
	var movers []int
	for side := 0; side < 2; side++ {
		if acts[side].Kind == ActUseMove {
			movers = append(movers, side)
		}
	}
	if len(movers) < 2 {
		return movers
	}

	pa := s.Active(0).Moves[acts[0].MoveIndex].Move.Priority
	pb := s.Active(1).Moves[acts[1].MoveIndex].Move.Priority
	switch {
	case pa > pb:
		return []int{0, 1}
	case pb > pa:
		return []int{1, 0}
	}

	sa := s.Active(0).EffectiveStat(types.Speed)
	sb := s.Active(1).EffectiveStat(types.Speed)
	switch {
	case sa > sb:
		return []int{0, 1}
	case sb > sa:
		return []int{1, 0}
	}

	if s.rng.CoinFlip() {
		return []int{0, 1}
	}
	return []int{1, 0}
}

// executeSwitch swaps the active combatant. Stat stages do not survive
// leaving the field.
func (s *Session) executeSwitch(side, to int, res *TurnResult) {
	st := s.sides[side]
	old := st.activeCombatant()
	old.ClearStages()
	st.active = to
	res.emit("switch", map[string]any{
		"side": side,
		"out":  old.Name,
		"in":   st.activeCombatant().Name,
	}, fmt.Sprintf("%s was withdrawn! Go, %s!", old.Name, st.activeCombatant().Name))
}

// executeItem applies an item effect to the side's active combatant.
func (s *Session) executeItem(side int, item ItemEffect, res *TurnResult) {
	c := s.Active(side)

	if item.Revive && c.Fainted() {
		c.HP = c.MaxHP / 2
		if c.HP < 1 {
			c.HP = 1
		}
		c.CureStatus()
		res.emit("item_used", map[string]any{
			"side": side, "item": item.Name, "target": c.Name,
		}, fmt.Sprintf("%s came back to its senses!", c.Name))
		return
	}

	before := c.HP
	if item.Heal > 0 {
		c.RestoreHP(item.Heal)
	}
	cured := false
	if item.CureAll && c.Status != types.None {
		c.CureStatus()
		cured = true
	}

	res.emit("item_used", map[string]any{
		"side": side, "item": item.Name, "target": c.Name,
		"healed": c.HP - before, "cured": cured,
	}, fmt.Sprintf("Used the %s on %s.", item.Name, c.Name))
	if c.HP > before {
		res.say(fmt.Sprintf("%s recovered %d HP!", c.Name, c.HP-before))
	}
	if cured {
		res.say(fmt.Sprintf("%s's status returned to normal!", c.Name))
	}
}

// executeMove runs one move use end to end: status gate, PP, accuracy,
// damage, then any secondary effect.
func (s *Session) executeMove(side, idx int, res *TurnResult) {
	actor := s.Active(side)
	target := s.Active(1 - side)
	slot := &actor.Moves[idx]
	mv := slot.Move

	if !s.preActionCheck(side, actor, res) {
		return
	}

	slot.PP--
	res.emit("move_used", map[string]any{
		"side": side, "actor": actor.Name, "move": mv.Name, "pp": slot.PP,
	}, fmt.Sprintf("%s used %s!", actor.Name, mv.Name))

	if target.Fainted() {
		res.say("But it failed!")
		return
	}

	if !s.rollAccuracy(actor, target, mv) {
		res.emit("move_missed", map[string]any{
			"side": side, "actor": actor.Name, "move": mv.Name,
		}, fmt.Sprintf("%s's attack missed!", actor.Name))
		return
	}

	if mv.Category != types.Status && mv.Power > 0 {
		eff := Effectiveness(mv.Type, target.Species.Types)
		if eff == 0 {
			res.emit("no_effect", map[string]any{
				"side": side, "move": mv.Name, "target": target.Name,
			}, fmt.Sprintf("It doesn't affect %s...", target.Name))
			return
		}

		dmg := s.computeDamage(actor, target, mv, eff)
		target.ApplyDamage(dmg)
		res.emit("damage", map[string]any{
			"side": 1 - side, "target": target.Name,
			"amount": dmg, "hp": target.HP, "effectiveness": eff,
		}, fmt.Sprintf("%s took %d damage!", target.Name, dmg))

		switch {
		case eff > 1:
			res.say("It's super effective!")
		case eff < 1:
			res.say("It's not very effective...")
		}

		if target.Fainted() {
			res.emit("faint", map[string]any{"side": 1 - side, "target": target.Name},
				fmt.Sprintf("%s fainted!", target.Name))
		}
	}

	s.applyMoveEffect(side, actor, target, mv, res)
}

// preActionCheck runs the pre-move status gate. Sleep and freeze can
// clear on the spot; paralysis can cost the whole turn.
func (s *Session) preActionCheck(side int, actor *Combatant, res *TurnResult) bool {
	switch actor.Status {
	case types.Sleep:
		if s.rng.Chance(s.cfg.WakeChance) {
			actor.CureStatus()
			res.emit("status_cured", map[string]any{"side": side, "target": actor.Name, "status": string(types.Sleep)},
				fmt.Sprintf("%s woke up!", actor.Name))
			return true
		}
		res.say(fmt.Sprintf("%s is fast asleep.", actor.Name))
		return false
	case types.Freeze:
		if s.rng.Chance(s.cfg.ThawChance) {
			actor.CureStatus()
			res.emit("status_cured", map[string]any{"side": side, "target": actor.Name, "status": string(types.Freeze)},
				fmt.Sprintf("%s thawed out!", actor.Name))
			return true
		}
		res.say(fmt.Sprintf("%s is frozen solid!", actor.Name))
		return false
	case types.Paralysis:
		if s.rng.Chance(s.cfg.FullParaChance) {
			res.say(fmt.Sprintf("%s is paralyzed! It can't move!", actor.Name))
			return false
		}
	}
	return true
}

// rollAccuracy decides whether the move connects. A zero-accuracy move
// never misses. Stages shift the chance through the 3-based curve on
// the net accuracy-minus-evasion stage.
func (s *Session) rollAccuracy(actor, target *Combatant, mv types.Move) bool {
	if mv.Accuracy <= 0 {
		return true
	}
	stage := actor.Stage(types.Accuracy) - target.Stage(types.Evasion)
	if stage > 6 {
		stage = 6
	}
	if stage < -6 {
		stage = -6
	}
	chance := float64(mv.Accuracy) * accuracyMultiplier(stage)
	return float64(s.rng.Roll(100)) <= chance
}

// computeDamage applies the level-scaled damage formula with type
// effectiveness, same-type bonus, and the random 85-100% spread. A hit
// that isn't immune always deals at least 1.
func (s *Session) computeDamage(actor, target *Combatant, mv types.Move, eff float64) int {
	atkStat, defStat := types.Attack, types.Defense
	if mv.Category == types.Special {
		atkStat, defStat = types.SpAttack, types.SpDefense
	}
	atk := actor.EffectiveStat(atkStat)
	def := target.EffectiveStat(defStat)

	base := (2*float64(actor.Level)/5+2)*float64(mv.Power)*float64(atk)/float64(def)/50 + 2

	stab := 1.0
	for _, t := range actor.Species.Types {
		if t == mv.Type {
			stab = 1.5
			break
		}
	}

	dmg := int(math.Floor(base * eff * stab * s.rng.Uniform(0.85, 1.0)))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// applyMoveEffect resolves a move's secondary payload: a status
// condition, a stage change, or both, possibly gated on a chance roll
// and possibly aimed at the user.
func (s *Session) applyMoveEffect(side int, actor, target *Combatant, mv types.Move, res *TurnResult) {
	eff := mv.Effect
	if eff == nil {
		return
	}
	if eff.Chance > 0 && !s.rng.Chance(eff.Chance) {
		return
	}

	recv := target
	recvSide := 1 - side
	if eff.Self {
		recv = actor
		recvSide = side
	}
	if recv.Fainted() {
		return
	}
	if !eff.Self && Effectiveness(mv.Type, target.Species.Types) == 0 {
		return
	}

	applied := false

	if eff.Condition != types.None {
		if recv.SetStatus(eff.Condition) {
			applied = true
			res.emit("status_applied", map[string]any{
				"side": recvSide, "target": recv.Name, "status": string(eff.Condition),
			}, fmt.Sprintf("%s %s!", recv.Name, conditionVerb(eff.Condition)))
		}
	}

	if eff.Stages != 0 {
		before := recv.Stage(eff.Stat)
		clamped := recv.ModifyStage(eff.Stat, eff.Stages)
		after := recv.Stage(eff.Stat)
		if after != before {
			applied = true
		}
		res.emit("stage_change", map[string]any{
			"side": recvSide, "target": recv.Name, "stat": string(eff.Stat),
			"delta": after - before, "stage": after, "clamped": clamped,
		}, stageText(recv.Name, eff.Stat, eff.Stages, after != before))
	}

	// A pure status move that changed nothing announces the failure.
	if !applied && mv.Category == types.Status {
		res.say("But it failed!")
	}
}

// conditionVerb is the battle-text verb for gaining a condition.
func conditionVerb(cond types.Condition) string {
	switch cond {
	case types.Burn:
		return "was burned"
	case types.Freeze:
		return "was frozen solid"
	case types.Paralysis:
		return "is paralyzed! It may be unable to move"
	case types.PoisonCnd:
		return "was poisoned"
	case types.Sleep:
		return "fell asleep"
	}
	return "was afflicted"
}

// stageText is the battle-text line for a stage change or a clamp.
func stageText(name string, stat types.Stat, delta int, changed bool) string {
	statName := statDisplay(stat)
	if !changed {
		if delta > 0 {
			return fmt.Sprintf("%s's %s won't go any higher!", name, statName)
		}
		return fmt.Sprintf("%s's %s won't go any lower!", name, statName)
	}
	switch {
	case delta >= 2:
		return fmt.Sprintf("%s's %s rose sharply!", name, statName)
	case delta == 1:
		return fmt.Sprintf("%s's %s rose!", name, statName)
	case delta == -1:
		return fmt.Sprintf("%s's %s fell!", name, statName)
	default:
		return fmt.Sprintf("%s's %s fell harshly!", name, statName)
	}
}

// statDisplay maps a stat key to its battle-text name.
func statDisplay(stat types.Stat) string {
	switch stat {
	case types.Attack:
		return "Attack"
	case types.Defense:
		return "Defense"
	case types.SpAttack:
		return "Sp. Atk"
	case types.SpDefense:
		return "Sp. Def"
	case types.Speed:
		return "Speed"
	case types.Accuracy:
		return "accuracy"
	case types.Evasion:
		return "evasiveness"
	}
	return string(stat)
}

// applyResiduals ticks end-of-turn poison and burn damage, side A then
// side B, emitting faints as they happen.
func (s *Session) applyResiduals(res *TurnResult) {
	for side := 0; side < 2; side++ {
		c := s.Active(side)
		if c.Fainted() {
			continue
		}

		var dmg int
		var verb string
		switch c.Status {
		case types.PoisonCnd:
			dmg = c.MaxHP / s.cfg.PoisonDivisor
			verb = "is hurt by poison"
		case types.Burn:
			dmg = c.MaxHP / s.cfg.BurnDivisor
			verb = "is hurt by its burn"
		default:
			continue
		}
		if dmg < 1 {
			dmg = 1
		}

		c.ApplyDamage(dmg)
		res.emit("residual_damage", map[string]any{
			"side": side, "target": c.Name, "amount": dmg, "hp": c.HP,
			"status": string(c.Status),
		}, fmt.Sprintf("%s %s!", c.Name, verb))

		if c.Fainted() {
			res.emit("faint", map[string]any{"side": side, "target": c.Name},
				fmt.Sprintf("%s fainted!", c.Name))
		}
	}
}

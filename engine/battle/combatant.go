package battle

import (
	"fmt"

	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// defaultIV is the fixed individual value folded into stat calculation.
// Every Pokemon uses the same IV so stats are deterministic from
// species base stats and level alone.
const defaultIV = 15

// StatValue derives an actual stat value from a base stat and level.
func StatValue(base, level int) int {
	return (2*base+defaultIV)*level/100 + 5
}

// MoveSlot is a resolved move with its remaining PP.
type MoveSlot struct {
	Move  types.Move
	PP    int
	MaxPP int
}

// Combatant is the mutable battle state of one active Pokemon. It is
// built from an owned Pokemon record at battle start and written back
// when the battle ends; the record is never aliased during the fight.
type Combatant struct {
	Species types.Species
	Name    string // nickname shown in battle text
	Level   int
	MaxHP   int
	HP      int
	Moves   []MoveSlot
	Status  types.Condition
	stats  map[types.Stat]int // computed from base stats + level
	stages map[types.Stat]int // volatile, [-6,6], cleared on switch-out
}

// NewCombatant builds battle state for a Pokemon record. The record's
// current HP, status, and move PP carry into the battle.
func NewCombatant(p types.Pokemon, cat *Catalog) (*Combatant, error) {
	sp, err := cat.Species(p.Species)
	if err != nil {
		return nil, err
	}

	moves := make([]MoveSlot, 0, len(p.Moves))
	for _, slot := range p.Moves {
		mv, err := cat.Move(slot.ID)
		if err != nil {
			return nil, err
		}
		moves = append(moves, MoveSlot{Move: mv, PP: slot.PP, MaxPP: mv.PP})
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: %s knows no moves", ErrIllegalAction, p.Species)
	}

	c := &Combatant{
		Species: sp,
		Name:    p.Nickname,
		Level:   p.Level,
		MaxHP:   StatValue(sp.BaseStats.HP, p.Level),
		Moves:   moves,
		Status:  p.Status,
		stats: map[types.Stat]int{
			types.Attack:    StatValue(sp.BaseStats.Attack, p.Level),
			types.Defense:   StatValue(sp.BaseStats.Defense, p.Level),
			types.SpAttack:  StatValue(sp.BaseStats.SpAttack, p.Level),
			types.SpDefense: StatValue(sp.BaseStats.SpDefense, p.Level),
			types.Speed:     StatValue(sp.BaseStats.Speed, p.Level),
		},
		stages: map[types.Stat]int{},
	}
	if c.Name == "" {
		c.Name = sp.Name
	}

	c.HP = p.HP
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.HP < 0 {
		c.HP = 0
	}
	return c, nil
}

// Fainted reports whether the combatant is out of the fight.
func (c *Combatant) Fainted() bool {
	return c.HP <= 0
}

// ApplyDamage subtracts HP, clamping at zero. Stat stages are left
// as-is on faint; they are cleared only on switch-out.
func (c *Combatant) ApplyDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// RestoreHP adds HP, clamping at max.
func (c *Combatant) RestoreHP(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// SetStatus applies a non-volatile condition. Conditions are mutually
// exclusive: if one is already set, the new one is silently dropped and
// SetStatus returns false.
func (c *Combatant) SetStatus(cond types.Condition) bool {
	if cond == types.None {
		c.Status = types.None
		return true
	}
	if c.Status != types.None || c.Fainted() {
		return false
	}
	c.Status = cond
	return true
}

// CureStatus clears any non-volatile condition.
func (c *Combatant) CureStatus() {
	c.Status = types.None
}

// ModifyStage shifts a stat stage by delta, clamping to [-6, 6].
// Returns true if the clamp triggered (the stat can't go any further).
func (c *Combatant) ModifyStage(stat types.Stat, delta int) bool {
	next := c.stages[stat] + delta
	clamped := false
	if next > 6 {
		next = 6
		clamped = true
	}
	if next < -6 {
		next = -6
		clamped = true
	}
	// A no-op push past the limit also counts as clamped.
	if next == c.stages[stat] && delta != 0 {
		clamped = true
	}
	c.stages[stat] = next
	return clamped
}

// Stage returns the current stage for a stat.
func (c *Combatant) Stage(stat types.Stat) int {
	return c.stages[stat]
}

// ClearStages resets all volatile stage modifiers (on switch-out).
func (c *Combatant) ClearStages() {
	c.stages = map[types.Stat]int{}
}

// stageMultiplier is the standard six-stage geometric progression:
// -6 -> 2/8, 0 -> 1, +6 -> 8/2.
func stageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// accuracyMultiplier uses the 3-based progression for accuracy/evasion.
func accuracyMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

// EffectiveStat applies the stage multiplier to the computed base stat,
// then status multipliers: burn halves physical Attack, paralysis
// quarters Speed. Result is at least 1.
func (c *Combatant) EffectiveStat(stat types.Stat) int {
	base := c.stats[stat]
	v := float64(base) * stageMultiplier(c.stages[stat])

	switch {
	case stat == types.Attack && c.Status == types.Burn:
		v /= 2
	case stat == types.Speed && c.Status == types.Paralysis:
		v /= 4
	}

	if v < 1 {
		return 1
	}
	return int(v)
}

// HasUsableMove reports whether any move still has PP.
func (c *Combatant) HasUsableMove() bool {
	for _, m := range c.Moves {
		if m.PP > 0 {
			return true
		}
	}
	return false
}

// WriteBack copies the battle results (HP, status, PP) onto the owned
// Pokemon record. Volatile stages are discarded with the Combatant.
func (c *Combatant) WriteBack(p *types.Pokemon) {
	p.HP = c.HP
	p.Status = c.Status
	for i := range p.Moves {
		if i < len(c.Moves) {
			p.Moves[i].PP = c.Moves[i].PP
		}
	}
}

// CombatantState is the serializable snapshot of a Combatant. A battle
// resumed from a snapshot with the same RNG state plays out identically.
type CombatantState struct {
	Species  string           `json:"species"`
	Nickname string           `json:"nickname"`
	Level    int              `json:"level"`
	HP       int              `json:"hp"`
	Status   types.Condition  `json:"status,omitempty"`
	Moves    []types.MoveSlot `json:"moves"`
	Stages   map[string]int   `json:"stages,omitempty"`
}

// Snapshot captures the combatant's full mutable state.
func (c *Combatant) Snapshot() CombatantState {
	moves := make([]types.MoveSlot, len(c.Moves))
	for i, m := range c.Moves {
		moves[i] = types.MoveSlot{ID: m.Move.ID, PP: m.PP}
	}
	stages := map[string]int{}
	for stat, v := range c.stages {
		if v != 0 {
			stages[string(stat)] = v
		}
	}
	return CombatantState{
		Species:  c.Species.ID,
		Nickname: c.Name,
		Level:    c.Level,
		HP:       c.HP,
		Status:   c.Status,
		Moves:    moves,
		Stages:   stages,
	}
}

// RestoreCombatant rebuilds a Combatant from a snapshot.
func RestoreCombatant(st CombatantState, cat *Catalog) (*Combatant, error) {
	c, err := NewCombatant(types.Pokemon{
		Species:  st.Species,
		Nickname: st.Nickname,
		Level:    st.Level,
		HP:       st.HP,
		Status:   st.Status,
		Moves:    st.Moves,
	}, cat)
	if err != nil {
		return nil, err
	}
	for stat, v := range st.Stages {
		c.stages[types.Stat(stat)] = v
	}
	return c, nil
}

// Package state manages the mutable game state: the trainer, their
// team and box, inventory, badges, and pokedex progress.
package state

import (
	"fmt"

	"github.com/Mr-Neutr0n/pokemon-game/engine/battle"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// TeamSize is the maximum party size; further Pokemon go to the box.
const TeamSize = 6

// MaxLevel caps growth.
const MaxLevel = 100

// MaxMoves is how many moves one Pokemon can know at once.
const MaxMoves = 4

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game      types.GameDef
	Species   map[string]types.Species
	Moves     map[string]types.Move
	Items     map[string]types.ItemDef
	Locations map[string]types.LocationDef
	Trainers  map[string]types.TrainerDef
}

// Catalog builds the battle-facing species/move lookup.
func (d *Defs) Catalog() *battle.Catalog {
	return battle.NewCatalog(d.Species, d.Moves)
}

// NewState creates a fresh game state positioned at the game's start.
func NewState(defs *Defs) *types.State {
	return &types.State{
		Player: types.Player{
			Location: defs.Game.Start,
			Money:    defs.Game.StartMoney,
			Bag:      map[string]int{},
			Seen:     map[string]bool{},
			Caught:   map[string]bool{},
			Visited:  map[string]bool{defs.Game.Start: true},
		},
		Flags:    map[string]bool{},
		Counters: map[string]int{},
	}
}

// NewPokemon builds an owned Pokemon of a species at a level, at full
// HP, knowing the last moves of its learnset up to the move limit.
func NewPokemon(defs *Defs, speciesID string, level int) (types.Pokemon, error) {
	sp, ok := defs.Species[speciesID]
	if !ok {
		return types.Pokemon{}, fmt.Errorf("unknown species: %s", speciesID)
	}

	learnset := sp.Moves
	if len(learnset) > MaxMoves {
		learnset = learnset[len(learnset)-MaxMoves:]
	}
	var moves []types.MoveSlot
	for _, id := range learnset {
		mv, ok := defs.Moves[id]
		if !ok {
			return types.Pokemon{}, fmt.Errorf("species %s learns unknown move %s", speciesID, id)
		}
		moves = append(moves, types.MoveSlot{ID: id, PP: mv.PP})
	}

	return types.Pokemon{
		Species:   speciesID,
		Level:     level,
		HP:        battle.StatValue(sp.BaseStats.HP, level),
		Moves:     moves,
		CaughtLvl: level,
	}, nil
}

// MaxHP computes a Pokemon's full HP from its species and level.
func MaxHP(defs *Defs, p types.Pokemon) int {
	sp, ok := defs.Species[p.Species]
	if !ok {
		return 1
	}
	return battle.StatValue(sp.BaseStats.HP, p.Level)
}

// DisplayName is the nickname if set, else the species name.
func DisplayName(defs *Defs, p types.Pokemon) string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if sp, ok := defs.Species[p.Species]; ok {
		return sp.Name
	}
	return p.Species
}

// AddToTeam puts a Pokemon on the team, overflowing to the box when the
// party is full. Returns true if it joined the active team.
func AddToTeam(s *types.State, p types.Pokemon) bool {
	if len(s.Player.Team) < TeamSize {
		s.Player.Team = append(s.Player.Team, p)
		return true
	}
	s.Player.Box = append(s.Player.Box, p)
	return false
}

// FirstConscious returns the index of the first team member able to
// fight, or -1.
func FirstConscious(s *types.State) int {
	for i, p := range s.Player.Team {
		if p.HP > 0 {
			return i
		}
	}
	return -1
}

// TeamWiped reports whether every team member has fainted.
func TeamWiped(s *types.State) bool {
	return FirstConscious(s) < 0
}

// HealTeam restores every team member to full HP, clears status, and
// refills PP. What a Pokemon Center does.
func HealTeam(s *types.State, defs *Defs) {
	for i := range s.Player.Team {
		p := &s.Player.Team[i]
		p.HP = MaxHP(defs, *p)
		p.Status = types.None
		for j := range p.Moves {
			if mv, ok := defs.Moves[p.Moves[j].ID]; ok {
				p.Moves[j].PP = mv.PP
			}
		}
	}
}

// HasItem reports whether the bag holds at least one of an item.
func HasItem(s *types.State, itemID string) bool {
	return s.Player.Bag[itemID] > 0
}

// AddItem puts count copies of an item in the bag.
func AddItem(s *types.State, itemID string, count int) {
	if count <= 0 {
		return
	}
	s.Player.Bag[itemID] += count
}

// RemoveItem consumes one copy of an item. Returns false if none held.
func RemoveItem(s *types.State, itemID string) bool {
	if s.Player.Bag[itemID] <= 0 {
		return false
	}
	s.Player.Bag[itemID]--
	if s.Player.Bag[itemID] == 0 {
		delete(s.Player.Bag, itemID)
	}
	return true
}

// SpendMoney deducts a price if affordable. Returns false otherwise.
func SpendMoney(s *types.State, amount int) bool {
	if amount < 0 || s.Player.Money < amount {
		return false
	}
	s.Player.Money -= amount
	return true
}

// AddMoney credits winnings.
func AddMoney(s *types.State, amount int) {
	if amount > 0 {
		s.Player.Money += amount
	}
}

// HasBadge reports whether a badge was earned.
func HasBadge(s *types.State, badge string) bool {
	for _, b := range s.Player.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// AwardBadge records a badge once.
func AwardBadge(s *types.State, badge string) bool {
	if HasBadge(s, badge) {
		return false
	}
	s.Player.Badges = append(s.Player.Badges, badge)
	return true
}

// RecordSeen marks a species as seen in the pokedex.
func RecordSeen(s *types.State, speciesID string) {
	s.Player.Seen[speciesID] = true
}

// RecordCaught marks a species as caught (and seen).
func RecordCaught(s *types.State, speciesID string) {
	s.Player.Seen[speciesID] = true
	s.Player.Caught[speciesID] = true
}

// ExpToNext is the experience needed to go from the given level to the
// next one.
func ExpToNext(level int) int {
	return int(1.2 * float64(level*level))
}

// ExpGain computes battle experience for defeating a foe: base
// experience from the foe's level, scaled up when the foe outlevels
// the victor.
func ExpGain(victorLevel, foeLevel int) int {
	base := foeLevel * 10
	diff := foeLevel - victorLevel + 5
	if diff < 1 {
		diff = 1
	}
	return base * diff / 10
}

// GainExp adds experience to a Pokemon, applying as many level-ups as
// earned. Each level-up recalculates HP and heals the gained amount.
// Returns the number of levels gained and the species the Pokemon is
// now ready to evolve into ("" if none).
func GainExp(defs *Defs, p *types.Pokemon, amount int) (levels int, evolveInto string) {
	if amount <= 0 {
		return 0, ""
	}
	p.Exp += amount

	for p.Level < MaxLevel && p.Exp >= ExpToNext(p.Level) {
		p.Exp -= ExpToNext(p.Level)
		levels++
		oldMax := MaxHP(defs, *p)
		p.Level++
		newMax := MaxHP(defs, *p)
		if p.HP > 0 {
			p.HP += newMax - oldMax
		}
	}
	if p.Level >= MaxLevel {
		p.Exp = 0
	}

	if into := LevelEvolution(defs, *p); into != "" {
		evolveInto = into
	}
	return levels, evolveInto
}

// LevelEvolution returns the species a Pokemon evolves into by level,
// or "" if it has no pending level evolution.
func LevelEvolution(defs *Defs, p types.Pokemon) string {
	sp, ok := defs.Species[p.Species]
	if !ok || sp.Evolution == nil {
		return ""
	}
	if sp.Evolution.Level > 0 && p.Level >= sp.Evolution.Level {
		return sp.Evolution.Into
	}
	return ""
}

// StoneEvolution returns the species a Pokemon evolves into with the
// given item, or "".
func StoneEvolution(defs *Defs, p types.Pokemon, itemID string) string {
	sp, ok := defs.Species[p.Species]
	if !ok || sp.Evolution == nil {
		return ""
	}
	if sp.Evolution.Item != "" && sp.Evolution.Item == itemID {
		return sp.Evolution.Into
	}
	return ""
}

// Evolve transforms a Pokemon into the target species, keeping level,
// moves, and status, and carrying the HP difference from the new max.
func Evolve(defs *Defs, p *types.Pokemon, into string) error {
	if _, ok := defs.Species[into]; !ok {
		return fmt.Errorf("unknown species: %s", into)
	}
	oldMax := MaxHP(defs, *p)
	p.Species = into
	newMax := MaxHP(defs, *p)
	if p.HP > 0 {
		p.HP += newMax - oldMax
		if p.HP < 1 {
			p.HP = 1
		}
		if p.HP > newMax {
			p.HP = newMax
		}
	}
	return nil
}

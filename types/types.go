// Package types defines the shared data structures for the game.
// This package contains only type definitions, no logic and no methods.
package types

// Type is one of the eighteen elemental types.
type Type string

const (
	Normal   Type = "normal"
	Fire     Type = "fire"
	Water    Type = "water"
	Electric Type = "electric"
	Grass    Type = "grass"
	Ice      Type = "ice"
	Fighting Type = "fighting"
	Poison   Type = "poison"
	Ground   Type = "ground"
	Flying   Type = "flying"
	Psychic  Type = "psychic"
	Bug      Type = "bug"
	Rock     Type = "rock"
	Ghost    Type = "ghost"
	Dragon   Type = "dragon"
	Dark     Type = "dark"
	Steel    Type = "steel"
	Fairy    Type = "fairy"
)

// Category classifies a move as physical, special, or pure status.
type Category string

const (
	Physical Category = "physical"
	Special  Category = "special"
	Status   Category = "status"
)

// Condition is a non-volatile status condition. Conditions are mutually
// exclusive: a combatant holds at most one at a time.
type Condition string

const (
	None      Condition = ""
	Burn      Condition = "burn"
	Freeze    Condition = "freeze"
	Paralysis Condition = "paralysis"
	PoisonCnd Condition = "poison"
	Sleep     Condition = "sleep"
)

// Stat names a battle statistic that stage modifiers can apply to.
type Stat string

const (
	Attack    Stat = "attack"
	Defense   Stat = "defense"
	SpAttack  Stat = "sp_attack"
	SpDefense Stat = "sp_defense"
	Speed     Stat = "speed"
	Accuracy  Stat = "accuracy"
	Evasion   Stat = "evasion"
)

// BaseStats are a species' immutable base statistics.
type BaseStats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"sp_attack"`
	SpDefense int `json:"sp_defense"`
	Speed     int `json:"speed"`
}

// Evolution describes how a species evolves: at a level threshold,
// or when a named item is used on it.
type Evolution struct {
	Level int    // 0 if item-triggered
	Item  string // item ID, "" if level-triggered
	Into  string // species ID of the evolved form
}

// Species is the immutable definition of one Pokemon species.
type Species struct {
	ID        string
	Name      string
	Types     []Type // one or two
	BaseStats BaseStats
	Moves     []string // initial move IDs
	CatchRate int      // 0..255, higher is easier
	Evolution *Evolution
}

// Effect is a move's optional status payload: a non-volatile condition
// and/or a stat stage change, applied with the given percent chance.
type Effect struct {
	Condition Condition
	Stat      Stat
	Stages    int
	Self      bool // payload targets the user instead of the foe
	Chance    int  // percent, 0 means always
}

// Move is the immutable definition of one move.
type Move struct {
	ID          string
	Name        string
	Type        Type
	Category    Category
	Power       int // 0 for pure-status moves
	Accuracy    int // 0..100; 0 means never-miss
	Priority    int
	PP          int
	Effect      *Effect
	Description string
}

// ItemDef is the immutable definition of one item.
type ItemDef struct {
	ID          string
	Name        string
	Description string
	Kind        string // "pokeball", "healing", "revive", "cure", "evolution", "key"
	Price       int    // 0 means not for sale
	Heal        int    // HP restored (healing items)
	Cures       Condition
	CatchBonus  float64 // pokeball multiplier, 1.0 for a plain ball
	EvolvesWith []string
}

// GymDef describes a location's gym.
type GymDef struct {
	Leader     string // trainer ID
	Badge      string
	PrizeMoney int
}

// LocationDef is the immutable definition of one map location.
type LocationDef struct {
	ID            string
	Name          string
	Description   string
	Wild          []string // species IDs encountered here
	LevelMin      int
	LevelMax      int
	EncounterRate int // percent chance per explore
	Center        bool
	Shop          []string // item IDs for sale
	Gym           *GymDef
	Connections   []string
}

// TrainerPokemon is one entry in a trainer's predefined team.
type TrainerPokemon struct {
	Species string
	Level   int
	Moves   []string
}

// TrainerDef is an opposing trainer (gym leader).
type TrainerDef struct {
	ID    string
	Name  string
	Intro string
	Team  []TrainerPokemon
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title      string
	Author     string
	Version    string
	Intro      string
	Start      string // starting location ID
	Starters   []TrainerPokemon
	StartMoney int
	StartItems map[string]int
}

// MoveSlot is a known move with its remaining PP.
type MoveSlot struct {
	ID string `json:"id"`
	PP int    `json:"pp"`
}

// Pokemon is the player-owned runtime record of one Pokemon. Battle
// state (stages, per-battle HP changes) lives in the battle package;
// the engine writes the results back here when a battle ends.
type Pokemon struct {
	Species   string     `json:"species"`
	Nickname  string     `json:"nickname"`
	Level     int        `json:"level"`
	Exp       int        `json:"exp"`
	HP        int        `json:"hp"`
	Status    Condition  `json:"status,omitempty"`
	Moves     []MoveSlot `json:"moves"`
	Shiny     bool       `json:"shiny,omitempty"`
	CaughtAt  string     `json:"caught_at,omitempty"`
	CaughtLvl int        `json:"caught_lvl,omitempty"`
}

// Player holds the trainer's runtime state.
type Player struct {
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Money    int             `json:"money"`
	Team     []Pokemon       `json:"team"`
	Box      []Pokemon       `json:"box"`
	Bag      map[string]int  `json:"bag"`
	Badges   []string        `json:"badges"`
	Seen     map[string]bool `json:"seen"`
	Caught   map[string]bool `json:"caught"`
	Visited  map[string]bool `json:"visited"`
}

// State is the complete mutable game state outside an active battle.
type State struct {
	Player      Player
	Flags       map[string]bool
	Counters    map[string]int
	TurnCount   int
	RNGSeed     int64
	RNGPosition int64
}

// Event is emitted by the engine for front ends and tests to observe.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Output []string
}

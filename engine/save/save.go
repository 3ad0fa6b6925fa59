// Package save implements JSON serialization and deserialization of
// game state.
package save

import (
	"encoding/json"

	"github.com/Mr-Neutr0n/pokemon-game/engine/state"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version     string          `json:"version"`
	Game        string          `json:"game"`
	Turn        int             `json:"turn"`
	Player      types.Player    `json:"player"`
	Flags       map[string]bool `json:"flags"`
	Counters    map[string]int  `json:"counters"`
	RNGSeed     int64           `json:"rng_seed"`
	RNGPosition int64           `json:"rng_position"`
}

// Save serializes game state to JSON bytes.
func Save(s *types.State, defs *state.Defs) ([]byte, error) {
	data := SaveData{
		Version:     defs.Game.Version,
		Game:        defs.Game.Title,
		Turn:        s.TurnCount,
		Player:      s.Player,
		Flags:       s.Flags,
		Counters:    s.Counters,
		RNGSeed:     s.RNGSeed,
		RNGPosition: s.RNGPosition,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	// Ensure maps are never nil after load.
	if sd.Flags == nil {
		sd.Flags = map[string]bool{}
	}
	if sd.Counters == nil {
		sd.Counters = map[string]int{}
	}
	if sd.Player.Bag == nil {
		sd.Player.Bag = map[string]int{}
	}
	if sd.Player.Seen == nil {
		sd.Player.Seen = map[string]bool{}
	}
	if sd.Player.Caught == nil {
		sd.Player.Caught = map[string]bool{}
	}
	if sd.Player.Visited == nil {
		sd.Player.Visited = map[string]bool{}
	}
	return &sd, nil
}

// ApplySave applies loaded save data onto a state.
func ApplySave(s *types.State, sd *SaveData) {
	s.Player = sd.Player
	s.Flags = sd.Flags
	s.Counters = sd.Counters
	s.TurnCount = sd.Turn
	s.RNGSeed = sd.RNGSeed
	s.RNGPosition = sd.RNGPosition
}

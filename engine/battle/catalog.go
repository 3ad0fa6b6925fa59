package battle

import (
	"fmt"

	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// Catalog is the read-only species/move data provider the battle engine
// consumes. Built once from loaded defs, immutable afterwards.
type Catalog struct {
	species map[string]types.Species
	moves   map[string]types.Move
}

// NewCatalog builds a catalog from species and move tables.
func NewCatalog(species map[string]types.Species, moves map[string]types.Move) *Catalog {
	return &Catalog{species: species, moves: moves}
}

// Species looks up a species definition by ID.
func (c *Catalog) Species(id string) (types.Species, error) {
	sp, ok := c.species[id]
	if !ok {
		return types.Species{}, fmt.Errorf("%w: %s", ErrUnknownSpecies, id)
	}
	return sp, nil
}

// Move looks up a move definition by ID.
func (c *Catalog) Move(id string) (types.Move, error) {
	mv, ok := c.moves[id]
	if !ok {
		return types.Move{}, fmt.Errorf("%w: %s", ErrUnknownMove, id)
	}
	return mv, nil
}

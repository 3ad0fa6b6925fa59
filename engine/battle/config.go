package battle

// Config holds the game-balance constants the engine does not hard-code.
// The defaults follow convention; callers may tune them per game.
type Config struct {
	PoisonDivisor  int // residual poison damage = maxHP / PoisonDivisor
	BurnDivisor    int // residual burn damage = maxHP / BurnDivisor
	WakeChance     int // percent chance per turn to wake from sleep
	ThawChance     int // percent chance per turn to thaw from freeze
	FullParaChance int // percent chance paralysis prevents acting
	BaseCatchRate  float64
	MaxCatchRate   float64
}

// DefaultConfig returns the conventional balance values.
func DefaultConfig() Config {
	return Config{
		PoisonDivisor:  8,
		BurnDivisor:    8,
		WakeChance:     33,
		ThawChance:     20,
		FullParaChance: 25,
		BaseCatchRate:  0.3,
		MaxCatchRate:   0.95,
	}
}

package battle

import "errors"

// Sentinel errors reported to the caller. Every rejection happens before
// any combatant state is touched: a failed SubmitTurn or AttemptCatch
// leaves both sides exactly as they were.
var (
	ErrUnknownSpecies   = errors.New("unknown species")
	ErrUnknownMove      = errors.New("unknown move")
	ErrInvalidMoveIndex = errors.New("invalid move index")
	ErrNoPPRemaining    = errors.New("no PP remaining")
	ErrIllegalAction    = errors.New("illegal action")
	ErrBattleOver       = errors.New("battle already decided")
)

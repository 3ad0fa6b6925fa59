package battle

import (
	"fmt"

	"github.com/Mr-Neutr0n/pokemon-game/engine/rng"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

// Mode distinguishes wild encounters from trainer battles. Fleeing and
// catching are only legal against wild Pokemon.
type Mode int

const (
	Wild Mode = iota
	Trainer
)

// Outcome is the terminal state of a session. Ongoing means the battle
// is still being fought.
type Outcome int

const (
	Ongoing Outcome = iota
	WonBySideA
	WonBySideB
	Fled
	Caught
)

func (o Outcome) String() string {
	switch o {
	case WonBySideA:
		return "won by side A"
	case WonBySideB:
		return "won by side B"
	case Fled:
		return "fled"
	case Caught:
		return "caught"
	default:
		return "ongoing"
	}
}

// sideState is one team's battle state: combatants plus the index of
// the active one.
type sideState struct {
	team   []*Combatant
	active int
}

func (s *sideState) activeCombatant() *Combatant {
	return s.team[s.active]
}

func (s *sideState) allFainted() bool {
	for _, c := range s.team {
		if !c.Fainted() {
			return false
		}
	}
	return true
}

// Session is one battle from start to terminal outcome. Side A is the
// player, side B the wild Pokemon or opposing trainer. The session owns
// its combatants; callers write results back to their records when the
// battle ends.
type Session struct {
	mode    Mode
	sides   [2]*sideState
	turn    int
	outcome Outcome
	cat     *Catalog
	rng     *rng.RNG
	cfg     Config
}

// NewSession builds a battle from two teams of owned Pokemon records.
// Each side's first non-fainted member leads. A side with no conscious
// member is an error.
func NewSession(teamA, teamB []types.Pokemon, mode Mode, cat *Catalog, r *rng.RNG, cfg Config) (*Session, error) {
	s := &Session{mode: mode, cat: cat, rng: r, cfg: cfg}
	for i, team := range [][]types.Pokemon{teamA, teamB} {
		side := &sideState{active: -1}
		for _, p := range team {
			c, err := NewCombatant(p, cat)
			if err != nil {
				return nil, err
			}
			side.team = append(side.team, c)
			if side.active < 0 && !c.Fainted() {
				side.active = len(side.team) - 1
			}
		}
		if side.active < 0 {
			return nil, fmt.Errorf("%w: side %d has no conscious pokemon", ErrIllegalAction, i)
		}
		s.sides[i] = side
	}
	return s, nil
}

// Active returns the active combatant on a side (0 = player).
func (s *Session) Active(side int) *Combatant {
	return s.sides[side].activeCombatant()
}

// Team returns a side's full combatant list.
func (s *Session) Team(side int) []*Combatant {
	return s.sides[side].team
}

// ActiveIndex returns which team slot is active on a side.
func (s *Session) ActiveIndex(side int) int {
	return s.sides[side].active
}

// Mode reports whether this is a wild or trainer battle.
func (s *Session) Mode() Mode { return s.mode }

// Turn returns the number of completed turns.
func (s *Session) Turn() int { return s.turn }

// Outcome returns the session's current outcome.
func (s *Session) Outcome() Outcome { return s.outcome }

// Terminal reports whether the battle has ended.
func (s *Session) Terminal() bool { return s.outcome != Ongoing }

// SubmitTurn resolves one full turn from both sides' chosen actions.
// Both actions are validated before anything mutates: an invalid pair
// leaves the session untouched and returns a typed error.
func (s *Session) SubmitTurn(a, b Action) (*TurnResult, error) {
	if s.Terminal() {
		return nil, ErrBattleOver
	}
	if err := s.validateAction(0, a); err != nil {
		return nil, err
	}
	if err := s.validateAction(1, b); err != nil {
		return nil, err
	}

	res := &TurnResult{}
	s.resolveTurn([2]Action{a, b}, res)
	s.turn++
	return res, nil
}

// validateAction checks one side's action against the current state
// without mutating anything.
func (s *Session) validateAction(side int, act Action) error {
	st := s.sides[side]
	actor := st.activeCombatant()

	switch act.Kind {
	case ActUseMove:
		if actor.Fainted() {
			return fmt.Errorf("%w: %s has fainted", ErrIllegalAction, actor.Name)
		}
		if act.MoveIndex < 0 || act.MoveIndex >= len(actor.Moves) {
			return fmt.Errorf("%w: %d", ErrInvalidMoveIndex, act.MoveIndex)
		}
		if actor.Moves[act.MoveIndex].PP <= 0 {
			return fmt.Errorf("%w: %s", ErrNoPPRemaining, actor.Moves[act.MoveIndex].Move.Name)
		}
	case ActSwitch:
		if act.SwitchTo < 0 || act.SwitchTo >= len(st.team) {
			return fmt.Errorf("%w: no team member at slot %d", ErrIllegalAction, act.SwitchTo)
		}
		if act.SwitchTo == st.active {
			return fmt.Errorf("%w: already active", ErrIllegalAction)
		}
		if st.team[act.SwitchTo].Fainted() {
			return fmt.Errorf("%w: %s has fainted", ErrIllegalAction, st.team[act.SwitchTo].Name)
		}
	case ActUseItem:
		if actor.Fainted() && !act.Item.Revive {
			return fmt.Errorf("%w: %s has fainted", ErrIllegalAction, actor.Name)
		}
	case ActFlee:
		if s.mode != Wild {
			return fmt.Errorf("%w: can't run from a trainer battle", ErrIllegalAction)
		}
		if side != 0 {
			return fmt.Errorf("%w: only the player may flee", ErrIllegalAction)
		}
	default:
		return fmt.Errorf("%w: unknown action", ErrIllegalAction)
	}
	return nil
}

// AttemptCatch throws a ball at the wild Pokemon, consuming the
// player's turn. On a miss the wild Pokemon retaliates with a random
// usable move and residual damage ticks as usual. Legal only in wild
// battles against a conscious target.
func (s *Session) AttemptCatch(ballName string, ballBonus float64) (*TurnResult, bool, error) {
	if s.Terminal() {
		return nil, false, ErrBattleOver
	}
	if s.mode != Wild {
		return nil, false, fmt.Errorf("%w: can't catch a trainer's pokemon", ErrIllegalAction)
	}
	target := s.Active(1)
	if target.Fainted() {
		return nil, false, fmt.Errorf("%w: %s has fainted", ErrIllegalAction, target.Name)
	}

	res := &TurnResult{}
	p := s.CatchProbability(target, ballBonus)
	res.emit("catch_attempt", map[string]any{
		"ball":   ballName,
		"target": target.Name,
		"chance": p,
	}, fmt.Sprintf("You threw a %s at %s!", ballName, target.Name))

	if s.rng.Float() < p {
		s.outcome = Caught
		res.emit("caught", map[string]any{"target": target.Name},
			fmt.Sprintf("Gotcha! %s was caught!", target.Name))
		s.turn++
		return res, true, nil
	}

	res.emit("broke_free", map[string]any{"target": target.Name},
		fmt.Sprintf("Oh no! %s broke free!", target.Name))

	// Free retaliation while the player's turn was spent on the throw.
	if idx := s.randomUsableMove(target); idx >= 0 {
		s.executeMove(1, idx, res)
	}
	if s.outcome == Ongoing {
		s.applyResiduals(res)
		s.checkOutcome(res)
	}
	s.turn++
	return res, false, nil
}

// CatchProbability computes the capture chance for a conscious wild
// target. The chance rises as HP falls, drops with level, improves with
// a status condition, and scales with ball quality. Always capped.
func (s *Session) CatchProbability(target *Combatant, ballBonus float64) float64 {
	hpFrac := float64(target.HP) / float64(target.MaxHP)

	levelFactor := 1 - float64(target.Level)/100
	if levelFactor < 0.1 {
		levelFactor = 0.1
	}

	speciesFactor := 1.0
	if target.Species.CatchRate > 0 {
		speciesFactor = float64(target.Species.CatchRate) / 255
	}

	statusBonus := 0.0
	switch target.Status {
	case types.Sleep, types.Freeze:
		statusBonus = 0.15
	case types.Burn, types.PoisonCnd, types.Paralysis:
		statusBonus = 0.075
	}

	p := s.cfg.BaseCatchRate*speciesFactor + (1-hpFrac)*0.4 + levelFactor*0.2 + statusBonus
	p *= ballBonus

	if p > s.cfg.MaxCatchRate {
		p = s.cfg.MaxCatchRate
	}
	if p < 0 {
		p = 0
	}
	return p
}

// randomUsableMove picks a uniformly random move with PP remaining, or
// -1 if the combatant has none.
func (s *Session) randomUsableMove(c *Combatant) int {
	usable := make([]int, 0, len(c.Moves))
	for i, m := range c.Moves {
		if m.PP > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return -1
	}
	return usable[s.rng.Intn(len(usable))]
}

// ChooseEnemyAction picks side B's action for the coming turn: switch
// in the next conscious team member if the active one fainted, else a
// random usable move.
func (s *Session) ChooseEnemyAction() Action {
	st := s.sides[1]
	if st.activeCombatant().Fainted() {
		for i, c := range st.team {
			if !c.Fainted() {
				return Switch(i)
			}
		}
	}
	if idx := s.randomUsableMove(st.activeCombatant()); idx >= 0 {
		return UseMove(idx)
	}
	// Out of PP entirely; struggle with the first move regardless.
	return UseMove(0)
}

// checkOutcome sets the terminal outcome once a whole side has fainted.
func (s *Session) checkOutcome(res *TurnResult) {
	if s.outcome != Ongoing {
		return
	}
	if s.sides[1].allFainted() {
		s.outcome = WonBySideA
		res.emit("battle_end", map[string]any{"outcome": s.outcome.String()}, "")
	} else if s.sides[0].allFainted() {
		s.outcome = WonBySideB
		res.emit("battle_end", map[string]any{"outcome": s.outcome.String()}, "")
	}
}

// SessionState is the serializable snapshot of a battle in progress.
type SessionState struct {
	Mode    int          `json:"mode"`
	Turn    int          `json:"turn"`
	Outcome int          `json:"outcome"`
	Sides   [2]SideState `json:"sides"`
	RNGSeed int64        `json:"rng_seed"`
	RNGPos  int64        `json:"rng_position"`
}

// SideState snapshots one side of a battle.
type SideState struct {
	Team   []CombatantState `json:"team"`
	Active int              `json:"active"`
}

// Snapshot captures the session's full mutable state. Restoring it with
// RestoreSession replays identically from this point.
func (s *Session) Snapshot() SessionState {
	st := SessionState{
		Mode:    int(s.mode),
		Turn:    s.turn,
		Outcome: int(s.outcome),
		RNGSeed: s.rng.Seed(),
		RNGPos:  s.rng.Position(),
	}
	for i, side := range s.sides {
		ss := SideState{Active: side.active}
		for _, c := range side.team {
			ss.Team = append(ss.Team, c.Snapshot())
		}
		st.Sides[i] = ss
	}
	return st
}

// RestoreSession rebuilds a session from a snapshot, including the RNG
// stream position.
func RestoreSession(st SessionState, cat *Catalog, cfg Config) (*Session, error) {
	s := &Session{
		mode:    Mode(st.Mode),
		turn:    st.Turn,
		outcome: Outcome(st.Outcome),
		cat:     cat,
		cfg:     cfg,
		rng:     rng.Restore(st.RNGSeed, st.RNGPos),
	}
	for i, ss := range st.Sides {
		side := &sideState{active: ss.Active}
		for _, cs := range ss.Team {
			c, err := RestoreCombatant(cs, cat)
			if err != nil {
				return nil, err
			}
			side.team = append(side.team, c)
		}
		s.sides[i] = side
	}
	return s, nil
}

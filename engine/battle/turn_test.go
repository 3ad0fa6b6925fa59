package battle

import (
	"testing"

	"github.com/Mr-Neutr0n/pokemon-game/engine/rng"
	"github.com/Mr-Neutr0n/pokemon-game/types"
)

func wildSession(t *testing.T, seed int64, a, b types.Pokemon) *Session {
	t.Helper()
	cat := testCatalog()
	s, err := NewSession([]types.Pokemon{a}, []types.Pokemon{b}, Wild, cat, rng.New(seed), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func firstMoverSide(res *TurnResult) int {
	for _, ev := range res.Events {
		if ev.Type == "move_used" {
			return ev.Data["side"].(int)
		}
	}
	return -1
}

func TestTurn_DamageInFormulaRange(t *testing.T) {
	cat := testCatalog()

	// Level 5 Charmander's Ember vs level 5 Bulbasaur: base damage
	// works out to 4.93, doubled for type advantage and 1.5x for the
	// same-type bonus, spread over the 85-100% roll. Floor is 12,
	// ceiling 14.
	s := wildSession(t, 42,
		testPokemon(cat, "charmander", 5, "ember"),
		testPokemon(cat, "bulbasaur", 5, "tackle"))

	res, err := s.SubmitTurn(UseMove(0), UseMove(0))
	if err != nil {
		t.Fatal(err)
	}

	for _, ev := range res.Events {
		if ev.Type != "damage" {
			continue
		}
		dmg := ev.Data["amount"].(int)
		if dmg < 12 || dmg > 14 {
			t.Errorf("ember damage = %d, want in [12,14]", dmg)
		}
		if ev.Data["effectiveness"].(float64) != 2 {
			t.Errorf("effectiveness = %v, want 2", ev.Data["effectiveness"])
		}
		return
	}
	t.Fatal("no damage event emitted")
}

func TestTurn_DamageKeepsFractionalLevelFactor(t *testing.T) {
	// The level term is 2*level/5 + 2 in real arithmetic; only the final
	// damage is floored. At level 7 the term is 4.8, not 4. With attack
	// 20 against defense 6 and a 250-power move the base works out to
	// exactly 82, so every connecting hit lands for at least
	// floor(82*0.85) = 69. Truncating the level term would cap hits at
	// 68.
	species := map[string]types.Species{
		"bruiser": {
			ID: "bruiser", Name: "Bruiser",
			Types:     []types.Type{types.Fire},
			BaseStats: types.BaseStats{HP: 100, Attack: 100, Defense: 100, SpAttack: 50, SpDefense: 50, Speed: 50},
		},
		"sponge": {
			ID: "sponge", Name: "Sponge",
			Types:     []types.Type{types.Fire},
			BaseStats: types.BaseStats{HP: 200, Attack: 5, Defense: 5, SpAttack: 5, SpDefense: 5, Speed: 5},
		},
	}
	moves := map[string]types.Move{
		"slam": {
			ID: "slam", Name: "Slam", Type: types.Normal,
			Category: types.Physical, Power: 250, Accuracy: 100, PP: 20,
		},
		"tackle": {
			ID: "tackle", Name: "Tackle", Type: types.Normal,
			Category: types.Physical, Power: 40, Accuracy: 100, PP: 35,
		},
	}
	cat := NewCatalog(species, moves)

	if atk := StatValue(100, 7); atk != 20 {
		t.Fatalf("attack stat = %d, want 20", atk)
	}
	if def := StatValue(5, 7); def != 6 {
		t.Fatalf("defense stat = %d, want 6", def)
	}

	for seed := int64(0); seed < 50; seed++ {
		s, err := NewSession(
			[]types.Pokemon{testPokemon(cat, "bruiser", 7, "slam")},
			[]types.Pokemon{testPokemon(cat, "sponge", 7, "tackle")},
			Wild, cat, rng.New(seed), DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range res.Events {
			if ev.Type != "damage" || ev.Data["side"].(int) != 1 {
				continue
			}
			dmg := ev.Data["amount"].(int)
			if dmg < 69 || dmg > 82 {
				t.Fatalf("seed %d: slam damage = %d, want in [69,82]", seed, dmg)
			}
		}
	}
}

func TestTurn_MinimumDamageOne(t *testing.T) {
	cat := testCatalog()

	// A level 1 Gastly's Tackle against a level 50 Squirtle rounds to
	// nothing in the formula but a connecting hit never deals zero.
	for seed := int64(0); seed < 20; seed++ {
		s := wildSession(t, seed,
			testPokemon(cat, "gastly", 1, "tackle"),
			testPokemon(cat, "squirtle", 50, "tackle"))

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range res.Events {
			if ev.Type == "damage" && ev.Data["amount"].(int) < 1 {
				t.Fatalf("seed %d: damage %d, want at least 1", seed, ev.Data["amount"].(int))
			}
		}
	}
}

func TestTurn_ImmunityDealsNothing(t *testing.T) {
	cat := testCatalog()

	// Normal vs Ghost: no damage, no secondary effect.
	s := wildSession(t, 7,
		testPokemon(cat, "pidgey", 20, "tackle"),
		testPokemon(cat, "gastly", 5, "tackle"))

	res, err := s.SubmitTurn(UseMove(0), UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Has("no_effect") {
		t.Error("expected a no_effect event for normal vs ghost")
	}
	for _, ev := range res.Events {
		if ev.Type == "damage" && ev.Data["side"].(int) == 1 {
			t.Error("ghost took damage from a normal move")
		}
	}
}

func TestTurn_FasterSideMovesFirst(t *testing.T) {
	cat := testCatalog()

	// Charmander (speed 65) outruns Bulbasaur (speed 45) at equal
	// priority, regardless of seed.
	for seed := int64(0); seed < 10; seed++ {
		s := wildSession(t, seed,
			testPokemon(cat, "charmander", 5, "growl"),
			testPokemon(cat, "bulbasaur", 5, "growl"))

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		if got := firstMoverSide(res); got != 0 {
			t.Fatalf("seed %d: first mover side = %d, want 0", seed, got)
		}
	}
}

func TestTurn_PriorityBeatsSpeed(t *testing.T) {
	cat := testCatalog()

	// Bulbasaur is slower but Quick Attack has priority +1.
	for seed := int64(0); seed < 10; seed++ {
		s := wildSession(t, seed,
			testPokemon(cat, "charmander", 5, "growl"),
			testPokemon(cat, "bulbasaur", 5, "quick-attack"))

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		if got := firstMoverSide(res); got != 1 {
			t.Fatalf("seed %d: first mover side = %d, want 1", seed, got)
		}
	}
}

func TestTurn_SpeedTieIsCoinFlip(t *testing.T) {
	cat := testCatalog()

	firstA := 0
	const trials = 2000
	for seed := int64(0); seed < trials; seed++ {
		s := wildSession(t, seed,
			testPokemon(cat, "pidgey", 5, "growl"),
			testPokemon(cat, "pidgey", 5, "growl"))

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		if firstMoverSide(res) == 0 {
			firstA++
		}
	}

	// Expect roughly half, with a wide margin.
	if firstA < trials*35/100 || firstA > trials*65/100 {
		t.Errorf("side A moved first %d/%d times, want roughly half", firstA, trials)
	}
}

func TestTurn_FaintedActorForfeitsMove(t *testing.T) {
	cat := testCatalog()

	// Ember always knocks out the level 5 Bulbasaur before it acts, so
	// its queued Tackle never runs.
	for seed := int64(0); seed < 10; seed++ {
		s := wildSession(t, seed,
			testPokemon(cat, "charmander", 5, "ember"),
			testPokemon(cat, "bulbasaur", 5, "tackle"))

		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}

		moves := 0
		for _, ev := range res.Events {
			if ev.Type == "move_used" {
				moves++
			}
		}
		if moves != 1 {
			t.Fatalf("seed %d: %d moves used, want 1", seed, moves)
		}
		if !res.Has("faint") {
			t.Fatalf("seed %d: no faint event", seed)
		}
		if s.Outcome() != WonBySideA {
			t.Fatalf("seed %d: outcome %v, want won by side A", seed, s.Outcome())
		}
	}
}

func TestTurn_PPDecrements(t *testing.T) {
	cat := testCatalog()
	s := wildSession(t, 3,
		testPokemon(cat, "squirtle", 10, "water-gun"),
		testPokemon(cat, "squirtle", 10, "tackle"))

	before := s.Active(0).Moves[0].PP
	if _, err := s.SubmitTurn(UseMove(0), UseMove(0)); err != nil {
		t.Fatal(err)
	}
	if got := s.Active(0).Moves[0].PP; got != before-1 {
		t.Errorf("PP = %d, want %d", got, before-1)
	}
}

func TestTurn_StageMoveLowersAttack(t *testing.T) {
	cat := testCatalog()
	s := wildSession(t, 11,
		testPokemon(cat, "bulbasaur", 10, "growl"),
		testPokemon(cat, "squirtle", 10, "tackle"))

	if _, err := s.SubmitTurn(UseMove(0), UseMove(0)); err != nil {
		t.Fatal(err)
	}
	if got := s.Active(1).Stage(types.Attack); got != -1 {
		t.Errorf("target attack stage = %d, want -1", got)
	}
}

func TestTurn_SelfTargetingStageMove(t *testing.T) {
	cat := testCatalog()
	s := wildSession(t, 11,
		testPokemon(cat, "charmander", 10, "swords-dance"),
		testPokemon(cat, "squirtle", 10, "growl"))

	if _, err := s.SubmitTurn(UseMove(0), UseMove(0)); err != nil {
		t.Fatal(err)
	}
	// Swords Dance raises the user by 2; Growl then drops it by 1.
	if got := s.Active(0).Stage(types.Attack); got != 1 {
		t.Errorf("attack stage = %d, want 1", got)
	}
}

func TestTurn_StageClampReported(t *testing.T) {
	cat := testCatalog()
	s := wildSession(t, 11,
		testPokemon(cat, "charmander", 50, "swords-dance"),
		testPokemon(cat, "squirtle", 5, "tackle"))

	// +2 four times hits the +6 ceiling on the fourth use.
	var clamped bool
	for i := 0; i < 4 && !s.Terminal(); i++ {
		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range res.Events {
			if ev.Type == "stage_change" && ev.Data["clamped"].(bool) {
				clamped = true
			}
		}
	}
	if s.Active(0).Stage(types.Attack) > 6 {
		t.Errorf("stage exceeded +6: %d", s.Active(0).Stage(types.Attack))
	}
	if !clamped && !s.Terminal() {
		t.Error("no clamped stage_change event after four boosts")
	}
}

func TestTurn_StatusMoveCannotStack(t *testing.T) {
	cat := testCatalog()
	s := wildSession(t, 5,
		testPokemon(cat, "bulbasaur", 50, "thunder-wave"),
		testPokemon(cat, "squirtle", 5, "tackle"))

	// Spam paralysis until it lands, then confirm it never reapplies.
	applied := 0
	for i := 0; i < 10 && !s.Terminal(); i++ {
		res, err := s.SubmitTurn(UseMove(0), UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		for _, ev := range res.Events {
			if ev.Type == "status_applied" {
				applied++
			}
		}
	}
	if applied > 1 {
		t.Errorf("paralysis applied %d times, want at most once", applied)
	}
}

func TestTurn_ResidualPoisonDamage(t *testing.T) {
	cat := testCatalog()
	p := testPokemon(cat, "squirtle", 20, "tackle")
	p.Status = types.PoisonCnd

	s := wildSession(t, 9,
		testPokemon(cat, "bulbasaur", 20, "growl"),
		p)

	res, err := s.SubmitTurn(UseMove(0), UseMove(0))
	if err != nil {
		t.Fatal(err)
	}

	want := s.Active(1).MaxHP / DefaultConfig().PoisonDivisor
	if want < 1 {
		want = 1
	}
	found := false
	for _, ev := range res.Events {
		if ev.Type == "residual_damage" && ev.Data["side"].(int) == 1 {
			found = true
			if got := ev.Data["amount"].(int); got != want {
				t.Errorf("poison tick = %d, want %d", got, want)
			}
		}
	}
	if !found {
		t.Error("no residual_damage event for the poisoned side")
	}
}

func TestTurn_SwitchResolvesBeforeMoves(t *testing.T) {
	cat := testCatalog()
	s, err := NewSession(
		[]types.Pokemon{
			testPokemon(cat, "pidgey", 10, "tackle"),
			testPokemon(cat, "squirtle", 10, "water-gun"),
		},
		[]types.Pokemon{testPokemon(cat, "charmander", 10, "ember")},
		Wild, cat, rng.New(21), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.SubmitTurn(Switch(1), UseMove(0))
	if err != nil {
		t.Fatal(err)
	}

	// The switch lands first, so Ember hits the incoming Squirtle.
	if s.ActiveIndex(0) != 1 {
		t.Fatalf("active index = %d, want 1", s.ActiveIndex(0))
	}
	for _, ev := range res.Events {
		if ev.Type == "damage" && ev.Data["side"].(int) == 0 {
			if ev.Data["target"].(string) != "Squirtle" {
				t.Errorf("damage target = %q, want the switched-in Squirtle", ev.Data["target"])
			}
		}
	}
	if res.Events[0].Type != "switch" {
		t.Errorf("first event = %q, want switch", res.Events[0].Type)
	}
}

func TestTurn_SwitchClearsStages(t *testing.T) {
	cat := testCatalog()
	s, err := NewSession(
		[]types.Pokemon{
			testPokemon(cat, "pidgey", 10, "tackle"),
			testPokemon(cat, "squirtle", 10, "tackle"),
		},
		[]types.Pokemon{testPokemon(cat, "bulbasaur", 10, "growl")},
		Wild, cat, rng.New(2), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	pidgey := s.Active(0)
	if _, err := s.SubmitTurn(UseMove(0), UseMove(0)); err != nil {
		t.Fatal(err)
	}
	if pidgey.Stage(types.Attack) != -1 {
		t.Fatalf("attack stage = %d, want -1 after Growl", pidgey.Stage(types.Attack))
	}

	if _, err := s.SubmitTurn(Switch(1), UseMove(0)); err != nil {
		t.Fatal(err)
	}
	if pidgey.Stage(types.Attack) != 0 {
		t.Errorf("attack stage = %d, want 0 after switch-out", pidgey.Stage(types.Attack))
	}
}

func TestTurn_ItemHealsBeforeMoves(t *testing.T) {
	cat := testCatalog()
	p := testPokemon(cat, "squirtle", 20, "tackle")
	p.HP = 5

	s := wildSession(t, 13, p, testPokemon(cat, "pidgey", 5, "growl"))

	res, err := s.SubmitTurn(UseItem(ItemEffect{Name: "Potion", Heal: 20}), UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Has("item_used") {
		t.Fatal("no item_used event")
	}
	if got := s.Active(0).HP; got <= 5 {
		t.Errorf("HP = %d, want healed above 5", got)
	}
	if res.Events[0].Type != "item_used" {
		t.Errorf("first event = %q, want item_used before the move", res.Events[0].Type)
	}
}

func TestTurn_DeterministicBySeed(t *testing.T) {
	cat := testCatalog()

	run := func() []types.Event {
		s := wildSession(t, 777,
			testPokemon(cat, "charmander", 12, "ember", "tackle"),
			testPokemon(cat, "squirtle", 12, "water-gun", "tackle"))
		var events []types.Event
		for !s.Terminal() {
			res, err := s.SubmitTurn(UseMove(0), UseMove(0))
			if err != nil {
				t.Fatal(err)
			}
			events = append(events, res.Events...)
		}
		return events
	}

	a := run()
	b := run()
	if len(a) != len(b) {
		t.Fatalf("event counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type {
			t.Fatalf("event %d: %q vs %q from same seed", i, a[i].Type, b[i].Type)
		}
	}
}

package battle

import "github.com/Mr-Neutr0n/pokemon-game/types"

// TurnResult carries everything one turn produced: typed events for
// tests and front ends, and ready-to-print battle text.
type TurnResult struct {
	Events []types.Event
	Output []string
}

// emit records a typed event with optional display text.
func (tr *TurnResult) emit(typ string, data map[string]any, text string) {
	tr.Events = append(tr.Events, types.Event{Type: typ, Data: data})
	if text != "" {
		tr.Output = append(tr.Output, text)
	}
}

// say records display text with no event.
func (tr *TurnResult) say(text string) {
	tr.Output = append(tr.Output, text)
}

// Has reports whether an event of the given type was emitted.
func (tr *TurnResult) Has(typ string) bool {
	for _, ev := range tr.Events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

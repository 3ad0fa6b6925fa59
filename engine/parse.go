package engine

import "strings"

// Intent is a parsed player command: a canonical verb and its argument.
type Intent struct {
	Verb string
	Arg  string
}

// verbSynonyms maps input verbs to their canonical form.
var verbSynonyms = map[string]string{
	"walk":    "go",
	"travel":  "go",
	"move":    "go",
	"attack":  "fight",
	"items":   "bag",
	"i":       "bag",
	"inv":     "bag",
	"flee":    "run",
	"escape":  "run",
	"throw":   "catch",
	"party":   "team",
	"dex":     "pokedex",
	"store":   "shop",
	"l":       "look",
	"x":       "look",
	"examine": "look",
	"center":  "heal",
	"stats":   "info",
}

// parse splits input into a canonical verb and the rest of the line.
// Input is case-insensitive; arguments keep their word spacing.
func parse(input string) Intent {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return Intent{}
	}
	verb := fields[0]
	if canon, ok := verbSynonyms[verb]; ok {
		verb = canon
	}
	arg := strings.Join(fields[1:], " ")
	// "go to route 1" reads naturally; strip the filler word.
	arg = strings.TrimPrefix(arg, "to ")
	return Intent{Verb: verb, Arg: arg}
}

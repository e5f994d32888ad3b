package action

import (
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/state"
)

// IsLegal reports whether a is present in LegalActions(s, reg) — the
// legality closure property (§8.7) expressed directly.
func IsLegal(s *state.GameState, a Action, reg *effect.Registry) bool {
	for _, legal := range LegalActions(s, reg) {
		if legal == a {
			return true
		}
	}
	return false
}

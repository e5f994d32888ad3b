package websocket

import (
	"encoding/json"

	"tcg-pocket-engine/internal/engine/turn"
)

// decodePayload re-marshals a generically-typed message payload (as
// produced by json.Unmarshal into an interface{} field) into T.
func decodePayload[T any](raw interface{}) (T, bool) {
	var out T
	bytes, err := json.Marshal(raw)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(bytes, &out); err != nil {
		return out, false
	}
	return out, true
}

type outcomePayload struct {
	Kind   string `json:"kind"`
	Winner *int   `json:"winner,omitempty"`
	Error  string `json:"error,omitempty"`
}

func toOutcomePayload(o turn.StepOutcome) outcomePayload {
	p := outcomePayload{Kind: o.Kind.String()}
	if o.Kind == turn.GameOver {
		w := o.Winner
		p.Winner = &w
	}
	if o.Err != nil {
		p.Error = o.Err.Error()
	}
	return p
}

package http

import (
	"tcg-pocket-engine/internal/adapter"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/turn"
)

// CreateGameRequest is the body of POST /api/v1/games.
type CreateGameRequest struct {
	Deck1 []card.Card `json:"deck1"`
	Deck2 []card.Card `json:"deck2"`
	Seed  *int64      `json:"seed,omitempty"`
}

// CreateGameResponse is returned after a game is created.
type CreateGameResponse struct {
	GameID string `json:"gameId"`
}

// ActionIndexRequest is the body of POST /api/v1/games/:gameId/actions.
type ActionIndexRequest struct {
	Index int `json:"index"`
}

// StepOutcomeResponse mirrors turn.StepOutcome for JSON transport.
type StepOutcomeResponse struct {
	Kind   string `json:"kind"`
	Winner *int   `json:"winner,omitempty"`
	Error  string `json:"error,omitempty"`
}

func toStepOutcomeResponse(o turn.StepOutcome) StepOutcomeResponse {
	resp := StepOutcomeResponse{Kind: o.Kind.String()}
	if o.Kind == turn.GameOver {
		w := o.Winner
		resp.Winner = &w
	}
	if o.Err != nil {
		resp.Error = o.Err.Error()
	}
	return resp
}

// LegalActionsResponse lists the legal action indices for a session.
type LegalActionsResponse struct {
	Indices []int `json:"indices"`
}

// ActionMaskResponse is the 512-slot boolean legality mask.
type ActionMaskResponse struct {
	Mask [adapter.ActionSpaceSize]bool `json:"mask"`
}

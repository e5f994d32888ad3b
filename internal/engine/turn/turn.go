// Package turn implements the setup/mulligan procedure, the turn/phase
// state machine, attack resolution, knockout handling with deferred turn
// advancement, and win-condition checking — the component that ties the
// rest of internal/engine together into one playable game step.
package turn

import (
	"fmt"

	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/executor"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
	tcgerrors "tcg-pocket-engine/internal/errors"

	"go.uber.org/zap"
)

const maxMulliganAttempts = 10

// StepOutcomeKind discriminates StepOutcome.
type StepOutcomeKind int

const (
	Continue StepOutcomeKind = iota
	GameOver
	InvalidAction
)

// String renders k for logging and JSON-adjacent transport.
func (k StepOutcomeKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case GameOver:
		return "game_over"
	case InvalidAction:
		return "invalid_action"
	default:
		return "unknown"
	}
}

// StepOutcome is returned by Apply after every action.
type StepOutcome struct {
	Kind   StepOutcomeKind
	Winner int
	Err    error
}

// Engine bundles the pieces Apply needs: the effect registry (as an
// executor.Registry adapter) and a logger. One Engine is reused across a
// whole game; GameState and its rng.Source are passed per call.
type Engine struct {
	Registry *effect.Registry
	damageReg *executor.Registry
	Log      *zap.Logger
}

// New constructs an Engine around reg, wiring reg's tool/ability lookups
// into the executor's damage pipeline.
func New(reg *effect.Registry, log *zap.Logger) *Engine {
	e := &Engine{Registry: reg, Log: log}
	e.damageReg = &executor.Registry{
		ToolMechanicsFn: func(pc *state.PlayedCard) []effect.Mechanic {
			if pc == nil || pc.Tool == nil {
				return nil
			}
			return reg.ToolEffects(pc.Tool.Name)
		},
		AbilityMechanicsFn: func(pc *state.PlayedCard) []effect.Mechanic {
			if pc == nil || pc.Card.Ability == nil {
				return nil
			}
			return reg.AbilityEffects(pc.Card.ID)
		},
	}
	return e
}

// DamageRegistry exposes the executor.Registry adapter this Engine built
// around reg, so callers outside the turn package (the observation
// facade) can compute registry-aware HP the same way combat resolution
// does.
func (e *Engine) DamageRegistry() *executor.Registry {
	return e.damageReg
}

// NewGame shuffles both decks, deals starting hands/prizes and runs the
// mulligan loop, producing a GameState parked in Setup phase.
func NewGame(deck1, deck2 card.Deck, seed int64) (*state.GameState, *rng.Source) {
	src := rng.New(seed)

	s := &state.GameState{Phase: state.PhaseSetup, FirstTurn: true}
	s.Players[0] = dealPlayer(src, deck1)
	s.Players[1] = dealPlayer(src, deck2)

	return s, src
}

func dealPlayer(src *rng.Source, d card.Deck) *state.PlayerState {
	p := state.NewPlayerState()
	deck := append([]card.Card(nil), d.Cards...)

	for attempt := 0; attempt < maxMulliganAttempts; attempt++ {
		rng.Shuffle(src, deck)
		hand := append([]card.Card(nil), deck[:state.StartingHand]...)
		rest := append([]card.Card(nil), deck[state.StartingHand:]...)
		prizes := append([]card.Card(nil), rest[:state.PrizeCount]...)
		remaining := append([]card.Card(nil), rest[state.PrizeCount:]...)

		if hasBasic(hand) {
			p.Hand = hand
			p.Prizes = prizes
			p.Deck = remaining
			return p
		}

		deck = append(append(hand, prizes...), remaining...)
	}

	// Exhausted retries: deal whatever the last shuffle produced so the
	// driver can observe and report mulligan failure rather than hang.
	p.Hand = append([]card.Card(nil), deck[:state.StartingHand]...)
	p.Prizes = append([]card.Card(nil), deck[state.StartingHand:state.StartingHand+state.PrizeCount]...)
	p.Deck = append([]card.Card(nil), deck[state.StartingHand+state.PrizeCount:]...)
	return p
}

func hasBasic(hand []card.Card) bool {
	for _, c := range hand {
		if c.IsBasic() {
			return true
		}
	}
	return false
}

// Apply validates a against legal_actions(s) and, if legal, mutates s in
// place and returns the resulting StepOutcome. On an illegal action s is
// left byte-identical to its input (§7 no-partial-mutation).
func (e *Engine) Apply(s *state.GameState, src *rng.Source, a action.Action) StepOutcome {
	if !action.IsLegal(s, a, e.Registry) {
		err := &tcgerrors.InvalidActionError{Action: fmt.Sprintf("%+v", a), Reason: "not in legal_actions"}
		return StepOutcome{Kind: InvalidAction, Err: err}
	}

	e.logDebug(s, "applying action", zap.Int("action_kind", int(a.Kind)), zap.Int("phase", int(s.Phase)))

	switch s.Phase {
	case state.PhaseSetup:
		e.applySetup(s, a)
	case state.PhaseMain:
		e.applyMain(s, src, a)
	case state.PhaseEffectChoice:
		e.applyEffectChoice(s, src, a)
	}

	out := e.checkTerminal(s)
	if out.Kind == GameOver {
		e.logDebug(s, "game over", zap.Int("winner", out.Winner))
	}
	return out
}

func (e *Engine) checkTerminal(s *state.GameState) StepOutcome {
	if s.Phase == state.PhaseGameOver && s.Winner != nil {
		return StepOutcome{Kind: GameOver, Winner: *s.Winner}
	}
	return StepOutcome{Kind: Continue}
}

func (e *Engine) logDebug(s *state.GameState, msg string, fields ...zap.Field) {
	if e.Log == nil {
		return
	}
	e.Log.Debug(msg, append([]zap.Field{zap.Int("turn", s.TurnNumber), zap.Int("player", s.CurrentPlayer)}, fields...)...)
}

// warnUnimplementedMechanics flags any Custom-kind mechanic in mechanics so
// the card carrying it is visible in logs even though it resolves as a
// no-op (§7: correctness degrades only for that card, the game never
// fails).
func (e *Engine) warnUnimplementedMechanics(s *state.GameState, mechanics []effect.Mechanic) {
	if e.Log == nil {
		return
	}
	for _, m := range mechanics {
		if m.Kind == effect.Custom {
			e.Log.Warn("unimplemented custom mechanic resolved as no-op",
				zap.Int("turn", s.TurnNumber), zap.String("tag", m.Tag))
		}
	}
}

package turn

import (
	"tcg-pocket-engine/internal/engine/action"
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/executor"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"

	"go.uber.org/zap"
)

func (e *Engine) resolveAttack(s *state.GameState, src *rng.Source, attackIdx int) {
	attackerPlayer := s.Current()
	attacker := attackerPlayer.Active
	defenderPlayer := s.Opponent()
	defender := defenderPlayer.Active

	available := action.AvailableAttacks(e.Registry, attacker)
	chosen := available[attackIdx]
	attack := chosen.Attack
	mechanics := e.Registry.AttackEffects(chosen.CardID, chosen.LocalIdx)
	e.warnUnimplementedMechanics(s, mechanics)

	exec := executor.NewWithRegistry(src, e.damageReg)
	shaped := exec.ResolveAttackEffects(s, mechanics, attack.Damage)

	final := executor.DamagePipeline(e.damageReg, attacker, defender, shaped, attackerPlayer.Points)
	executor.ApplyDamage(defender, final)

	if final > 0 {
		e.applyRetaliation(s, attacker, defender)
	}

	attackerIdx := s.CurrentPlayer
	defenderIdx := 1 - s.CurrentPlayer

	knockedOutDefender := executor.IsKnockedOut(e.damageReg, defender)
	knockedOutAttacker := executor.IsKnockedOut(e.damageReg, attacker)

	needsChoice := false
	if knockedOutDefender {
		needsChoice = e.handleKnockout(s, src, defenderIdx) || needsChoice
	}
	if knockedOutAttacker {
		needsChoice = e.handleKnockout(s, src, attackerIdx) || needsChoice
	}

	if e.checkWinConditions(s) {
		return
	}

	if needsChoice {
		// handleKnockout already parked the game in EffectChoice with
		// current_player temporarily switched to the KO'd side; record
		// who should run the full end-of-turn pipeline once the
		// promotion choice is answered.
		s.DeferredEnd = state.DeferredTurnEnd{Kind: state.NeedFullEndTurn, Player: attackerIdx}
		return
	}

	e.endTurn(s, src)
}

func (e *Engine) applyRetaliation(s *state.GameState, attacker, defender *state.PlayedCard) {
	if defender.Tool == nil {
		return
	}
	for _, m := range e.Registry.ToolEffects(defender.Tool.Name) {
		switch m.Kind {
		case effect.RetaliationDamage:
			attacker.DamageCounters += m.Amount / 10
		case effect.RetaliationStatus:
			status := state.StatusCondition(m.Status)
			if !executor.HasStatusImmunity(e.damageReg, attacker, status) {
				attacker.ApplyStatus(status)
			}
		}
	}
}

// handleKnockout runs §4.G's KO procedure for the player at index
// koPlayer. Returns true if it parked the game awaiting a
// PromoteFromBench choice.
func (e *Engine) handleKnockout(s *state.GameState, src *rng.Source, koPlayer int) bool {
	p := s.Players[koPlayer]
	opponent := s.Players[1-koPlayer]

	if p.Active == nil || !executor.IsKnockedOut(e.damageReg, p.Active) {
		return false
	}
	ko := p.Active

	if e.surviveKO(ko) {
		return false
	}

	points := 1
	if ko.Card.IsEX {
		points = 2
	}
	opponent.Points += points
	if opponent.Points > 3 {
		opponent.Points = 3
	}

	bounced := false
	if ko.Tool != nil {
		for _, m := range e.Registry.ToolEffects(ko.Tool.Name) {
			switch m.Kind {
			case effect.OnKOMoveEnergy:
				roundRobinMoveEnergy(p, ko, m.Amount)
			case effect.OnKOBounceToHand:
				bounced = true
			case effect.OnKODamage:
				if opponent.Active != nil {
					opponent.Active.DamageCounters += m.Amount / 10
				}
			}
		}
	}

	if opponent.Active != nil && opponent.Active.Tool != nil {
		for _, m := range e.Registry.ToolEffects(opponent.Active.Tool.Name) {
			if m.Kind == effect.OnKODrawCard {
				drawOne(opponent)
			}
		}
	}

	chain := flattenChain(ko)
	if bounced {
		p.Hand = append(p.Hand, ko.Card)
	} else {
		p.Discard = append(p.Discard, chain...)
	}
	p.Active = nil

	if p.BenchCount() == 0 {
		if e.Log != nil {
			e.Log.Info("knockout with no bench", zap.Int("player", koPlayer))
		}
		return false
	}
	if p.BenchCount() == 1 {
		for i, b := range p.Bench {
			if b != nil {
				p.Active = b
				p.Bench[i] = nil
			}
		}
		if e.Log != nil {
			e.Log.Info("knockout auto-promotion", zap.Int("player", koPlayer))
		}
		return false
	}

	s.PendingChoice = &state.PendingChoice{Kind: state.PromoteFromBench}
	s.Phase = state.PhaseEffectChoice
	s.CurrentPlayer = koPlayer
	return true
}

// surviveKO consumes a not-yet-used SurviveKO mechanic on ko's tool or
// ability, leaving it at 1 damage counter below its effective max HP, and
// reports whether it fired.
func (e *Engine) surviveKO(ko *state.PlayedCard) bool {
	if ko.SurviveKOUsed {
		return false
	}
	found := false
	if ko.Tool != nil {
		for _, m := range e.Registry.ToolEffects(ko.Tool.Name) {
			if m.Kind == effect.SurviveKO {
				found = true
			}
		}
	}
	if ko.Card.Ability != nil {
		for _, m := range e.Registry.AbilityEffects(ko.Card.ID) {
			if m.Kind == effect.SurviveKO {
				found = true
			}
		}
	}
	if !found {
		return false
	}
	ko.SurviveKOUsed = true
	maxHP := executor.EffectiveMaxHP(e.damageReg, ko)
	ko.DamageCounters = (maxHP - 10) / 10
	return true
}

// flattenChain returns every card definition in pc's pre-evolution chain,
// current stage first, so the whole evolution line moves to discard on
// KO.
func flattenChain(pc *state.PlayedCard) []card.Card {
	var out []card.Card
	for cur := pc; cur != nil; cur = cur.EvolvedFrom {
		out = append(out, cur.Card)
	}
	return out
}

func roundRobinMoveEnergy(p *state.PlayerState, from *state.PlayedCard, n int) {
	benchTargets := make([]*state.PlayedCard, 0, state.MaxBench)
	for _, b := range p.Bench {
		if b != nil {
			benchTargets = append(benchTargets, b)
		}
	}
	if len(benchTargets) == 0 {
		return
	}
	i := 0
	for n > 0 && len(from.AttachedEnergy) > 0 {
		et := from.AttachedEnergy[len(from.AttachedEnergy)-1]
		from.AttachedEnergy = from.AttachedEnergy[:len(from.AttachedEnergy)-1]
		target := benchTargets[i%len(benchTargets)]
		target.AttachedEnergy = append(target.AttachedEnergy, et)
		i++
		n--
	}
}

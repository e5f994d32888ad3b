package executor

import (
	"tcg-pocket-engine/internal/engine/card"
	"tcg-pocket-engine/internal/engine/effect"
	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

// Execute runs a single non-damage-shaping Mechanic against s. Damage-
// shaping variants are handled exclusively by shapeDamage and are no-ops
// here.
func (e *Executor) Execute(s *state.GameState, m effect.Mechanic) {
	cur := s.Current()
	opp := s.Opponent()

	switch m.Kind {
	case effect.NoOp, effect.Custom:
		// Unimplemented/no-op by design (§7): correctness degrades only
		// for the card carrying this mechanic.

	case effect.BenchDamage:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.DamageCounters += m.Amount / 10
		})

	case effect.Heal:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			heal(pc, m.Amount)
		})
	case effect.FullHeal:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.DamageCounters = 0
		})
	case effect.ApplyStatus:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			e.applyStatusUnlessImmune(pc, state.StatusCondition(m.Status))
		})
	case effect.ApplyStatusOnCoinFlip:
		if e.RNG.CoinFlip() {
			e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
				e.applyStatusUnlessImmune(pc, state.StatusCondition(m.Status))
			})
		}
	case effect.CureStatus:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.ClearStatus(state.StatusCondition(m.Status))
		})

	case effect.DiscardEnergy:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			discardEnergy(pc, m.Amount)
		})
	case effect.DiscardAllEnergy:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.AttachedEnergy = nil
		})
	case effect.DiscardOpponentEnergy:
		if opp.Active != nil {
			discardEnergy(opp.Active, m.Amount)
		}
	case effect.MoveEnergy:
		moveEnergy(cur.Active, cur.GetPokemon(1), 1)
	case effect.MoveAllEnergy:
		if cur.Active != nil {
			moveEnergy(cur.Active, cur.GetPokemon(1), len(cur.Active.AttachedEnergy))
		}
	case effect.AttachEnergyFromDiscard:
		attachFromDiscard(cur, m.EnergyType)
	case effect.AttachEnergyFromZone:
		if cur.Active != nil && cur.EnergyZoneType != nil {
			cur.Active.AttachedEnergy = append(cur.Active.AttachedEnergy, *cur.EnergyZoneType)
		}

	case effect.DrawCards:
		drawN(cur, m.Amount)
	case effect.OpponentDiscard:
		discardFromHand(opp, m.Amount)
	case effect.SearchDeck:
		// Deterministic search for the first matching card, matching the
		// "no hidden-information modeling beyond what's required" posture.
		searchDeck(e, cur, m.Tag, false)
	case effect.SearchDeckRandom:
		searchDeck(e, cur, m.Tag, true)
	case effect.ShuffleHandDraw:
		shuffleHandIntoDeckAndDraw(e, cur, m.Amount)
	case effect.OpponentShuffleHandDraw:
		shuffleHandIntoDeckAndDraw(e, opp, m.Amount)
	case effect.BothShuffleHandDraw:
		shuffleHandIntoDeckAndDraw(e, cur, m.Amount)
		shuffleHandIntoDeckAndDraw(e, opp, m.Amount)
	case effect.RecoverFromDiscard:
		recoverFromDiscard(cur, m.Amount)
	case effect.DiscardFromHand:
		discardFromHand(cur, m.Amount)
	case effect.PeekDeck:
		// Contract-only: peeking has no state effect observable outside
		// the driver's own UI.

	case effect.SwitchOpponentActive:
		switchActive(opp)
	case effect.SwitchOwnActive:
		switchActive(cur)
	case effect.BounceToHand:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			bounceToHand(ownerOf(s, pc), pc)
		})
	case effect.ShuffleIntoDeck:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			shuffleIntoDeck(e, ownerOf(s, pc), pc)
		})
	case effect.PutOnOpponentBench:
		putOnOpponentBench(cur, opp)
	case effect.CantRetreat:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.TempFlags.CantRetreat = true
		})
	case effect.CantAttackNextTurn:
		// No-op: no board-state bit exists for a one-turn attack lock in
		// state.PlayedCard, and no status is applied, so the target can
		// still attack next turn (Custom covers per-card variants that
		// need it).
	case effect.EvolveFromDeck, effect.EvolveSkipStage:
		// No-op: the turn engine's EvolvePokemon action evolves only from
		// the hand, and nothing reads these mechanics.

	case effect.DamageBoost:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.TempFlags.BonusDamage += m.Amount
		})
	case effect.DamageReduction:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.TempFlags.PreventDamageAmount += m.Amount
		})
	case effect.RetreatCostReduction:
		// No-op: retreat legality and resolution read only the card's
		// printed RetreatCost, and no board-state field models a
		// reduction.
	case effect.SurviveKO:
		// Consumption/survival happens in the turn engine's knockout
		// check (handleKnockout), which reads this mechanic off the
		// defender's tool/ability list and flips PlayedCard.SurviveKOUsed.
		// Nothing to do here; Execute never sees this Kind fired directly.
	case effect.GuaranteedHeads:
		e.RNG.SetGuaranteedHeads(true)
	case effect.MoveDamage:
		moveDamage(cur.Active, cur.GetPokemon(1), m.Amount)
	case effect.EndTurnEffect:
		// No-op: nothing in the turn engine reads this mechanic, so it
		// does not end the turn; a turn ends only through EndTurn or a
		// resolved attack.

	case effect.SelfDamage:
		if cur.Active != nil {
			cur.Active.DamageCounters += m.Amount / 10
		}
	case effect.PreventDamage:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.TempFlags.PreventDamageAmount += m.Amount
		})
	case effect.Invulnerable:
		e.resolveTargets(s, m.Target, func(pc *state.PlayedCard) {
			pc.TempFlags.PreventDamageAmount += 1 << 20
		})

	case effect.PassiveHPBoost, effect.PassiveDamageReduction, effect.PassiveDamageBoost,
		effect.RetaliationDamage, effect.RetaliationStatus,
		effect.OnKODamage, effect.OnKOBounceToHand, effect.OnKOMoveEnergy, effect.OnKODrawCard,
		effect.HealBetweenTurns, effect.CureStatusBetweenTurns, effect.StatusImmunity,
		effect.UsePreEvoAttacks, effect.DamageBoostPerPoint:
		// Passive/event-triggered mechanics are read directly from a
		// card's ability/tool Mechanic list at the event site (damage
		// application via EffectiveMaxHP/DamagePipeline, KO handling in
		// handleKnockout, status application via
		// applyStatusUnlessImmune/ApplyStatusOnCoinFlip, attack
		// enumeration via AvailableAttacks, between-turns in
		// resolveBetweenTurns) rather than here. They are never Execute'd
		// standalone.

	case effect.PassiveRetreatReduction, effect.PassiveAttackCostIncrease:
		// Not wired: no cost-check site in the action generator or
		// retreat resolution consults these yet. Left as genuine no-ops
		// rather than claimed behavior.
	}
}

// applyStatusUnlessImmune applies status to pc unless its attached tool or
// ability carries a matching StatusImmunity mechanic.
func (e *Executor) applyStatusUnlessImmune(pc *state.PlayedCard, status state.StatusCondition) {
	if pc == nil {
		return
	}
	if HasStatusImmunity(e.Registry, pc, status) {
		return
	}
	pc.ApplyStatus(status)
}

func heal(pc *state.PlayedCard, amountHP int) {
	if pc == nil {
		return
	}
	counters := amountHP / 10
	if counters > pc.DamageCounters {
		counters = pc.DamageCounters
	}
	pc.DamageCounters -= counters
}

func discardEnergy(pc *state.PlayedCard, n int) {
	if pc == nil {
		return
	}
	if n > len(pc.AttachedEnergy) {
		n = len(pc.AttachedEnergy)
	}
	pc.AttachedEnergy = pc.AttachedEnergy[:len(pc.AttachedEnergy)-n]
}

func moveEnergy(from, to *state.PlayedCard, n int) {
	if from == nil || to == nil {
		return
	}
	if n > len(from.AttachedEnergy) {
		n = len(from.AttachedEnergy)
	}
	moved := from.AttachedEnergy[len(from.AttachedEnergy)-n:]
	to.AttachedEnergy = append(to.AttachedEnergy, moved...)
	from.AttachedEnergy = from.AttachedEnergy[:len(from.AttachedEnergy)-n]
}

func moveDamage(from, to *state.PlayedCard, counters int) {
	if from == nil || to == nil {
		return
	}
	if counters > from.DamageCounters {
		counters = from.DamageCounters
	}
	from.DamageCounters -= counters
	to.DamageCounters += counters
}

func attachFromDiscard(p *state.PlayerState, et card.EnergyType) {
	if p.Active == nil {
		return
	}
	p.Active.AttachedEnergy = append(p.Active.AttachedEnergy, et)
}

func drawN(p *state.PlayerState, n int) {
	for i := 0; i < n && len(p.Deck) > 0; i++ {
		p.Hand = append(p.Hand, p.Deck[0])
		p.Deck = p.Deck[1:]
	}
}

func discardFromHand(p *state.PlayerState, n int) {
	if n > len(p.Hand) {
		n = len(p.Hand)
	}
	p.Discard = append(p.Discard, p.Hand[:n]...)
	p.Hand = p.Hand[n:]
}

func searchDeck(e *Executor, p *state.PlayerState, tag string, random bool) {
	var matches []int
	for i, c := range p.Deck {
		if tag == "" || c.Name == tag {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return
	}
	i := matches[0]
	if random {
		i = matches[e.RNG.GenRange(0, len(matches))]
	}
	p.Hand = append(p.Hand, p.Deck[i])
	p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
}

func shuffleHandIntoDeckAndDraw(e *Executor, p *state.PlayerState, n int) {
	p.Deck = append(p.Deck, p.Hand...)
	p.Hand = nil
	rng.Shuffle(e.RNG, p.Deck)
	drawN(p, n)
}

func recoverFromDiscard(p *state.PlayerState, n int) {
	if n > len(p.Discard) {
		n = len(p.Discard)
	}
	p.Hand = append(p.Hand, p.Discard[len(p.Discard)-n:]...)
	p.Discard = p.Discard[:len(p.Discard)-n]
}

func switchActive(p *state.PlayerState) {
	if p.Active == nil {
		return
	}
	for i, b := range p.Bench {
		if b != nil {
			p.Bench[i], p.Active = p.Active, b
			return
		}
	}
}

func ownerOf(s *state.GameState, pc *state.PlayedCard) *state.PlayerState {
	for _, p := range s.Players {
		for _, owned := range p.AllPokemon() {
			if owned == pc {
				return p
			}
		}
	}
	return nil
}

func bounceToHand(p *state.PlayerState, pc *state.PlayedCard) {
	if p == nil || pc == nil {
		return
	}
	removeFromBoard(p, pc)
	p.Hand = append(p.Hand, pc.Card)
}

func shuffleIntoDeck(e *Executor, p *state.PlayerState, pc *state.PlayedCard) {
	if p == nil || pc == nil {
		return
	}
	removeFromBoard(p, pc)
	p.Deck = append(p.Deck, pc.Card)
	rng.Shuffle(e.RNG, p.Deck)
}

func removeFromBoard(p *state.PlayerState, pc *state.PlayedCard) {
	if p.Active == pc {
		p.Active = nil
		return
	}
	for i, b := range p.Bench {
		if b == pc {
			p.Bench[i] = nil
			return
		}
	}
}

func putOnOpponentBench(cur, opp *state.PlayerState) {
	idx := -1
	for i, c := range cur.Discard {
		if c.IsBasic() {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	slot := opp.FindEmptyBench()
	if slot == -1 {
		return
	}
	c := cur.Discard[idx]
	cur.Discard = append(cur.Discard[:idx], cur.Discard[idx+1:]...)
	opp.Bench[slot] = state.NewPlayedCard(c, 0)
}

// resolveTargets applies fn to every PlayedCard matched by t.
func (e *Executor) resolveTargets(s *state.GameState, t effect.Target, fn func(*state.PlayedCard)) {
	cur := s.Current()
	opp := s.Opponent()

	switch t {
	case effect.This, effect.OwnActive:
		if cur.Active != nil {
			fn(cur.Active)
		}
	case effect.OpponentActive:
		if opp.Active != nil {
			fn(opp.Active)
		}
	case effect.OpponentBench:
		for _, b := range opp.Bench {
			if b != nil {
				fn(b)
			}
		}
	case effect.AllOwn:
		for _, pc := range cur.AllPokemon() {
			fn(pc)
		}
	case effect.ChooseOwn:
		if pc := e.autoSelect(cur); pc != nil {
			fn(pc)
		}
	case effect.ChooseOwnBench:
		if pc := e.autoSelectBench(cur); pc != nil {
			fn(pc)
		}
	case effect.OpponentChooseBench, effect.ChooseOpponentBench:
		if pc := e.autoSelectBench(opp); pc != nil {
			fn(pc)
		}
	}
}

// autoSelect picks the target for ChooseOwn: one occupied board position
// (active or bench) drawn uniformly from the seeded RNG, per the seeded
// auto-selection policy documented for Choose* targets.
func (e *Executor) autoSelect(p *state.PlayerState) *state.PlayedCard {
	all := p.AllPokemon()
	if len(all) == 0 {
		return nil
	}
	return all[e.RNG.GenRange(0, len(all))]
}

func (e *Executor) autoSelectBench(p *state.PlayerState) *state.PlayedCard {
	var bench []*state.PlayedCard
	for _, b := range p.Bench {
		if b != nil {
			bench = append(bench, b)
		}
	}
	if len(bench) == 0 {
		return nil
	}
	return bench[e.RNG.GenRange(0, len(bench))]
}

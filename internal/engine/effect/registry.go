package effect

// effectKey identifies which effect list of a card is being looked up.
type effectKey struct {
	id    string
	index int
}

// Registry is the lookup table from card identity to its ordered Mechanic
// lists. It is populated once, at startup, from an authoritative per-card
// mapping supplied externally — never by parsing effect text at runtime.
type Registry struct {
	attacks  map[effectKey][]Mechanic
	abilities map[string][]Mechanic
	trainers  map[string][]Mechanic
	tools     map[string][]Mechanic
}

// NewRegistry returns an empty Registry ready for population.
func NewRegistry() *Registry {
	return &Registry{
		attacks:   make(map[effectKey][]Mechanic),
		abilities: make(map[string][]Mechanic),
		trainers:  make(map[string][]Mechanic),
		tools:     make(map[string][]Mechanic),
	}
}

// RegisterAttack installs the Mechanic list for a card's attack at index
// attackIdx (0-based, matching Card.Attacks order).
func (r *Registry) RegisterAttack(cardID string, attackIdx int, mechanics []Mechanic) {
	r.attacks[effectKey{id: cardID, index: attackIdx}] = mechanics
}

// RegisterAbility installs the Mechanic list for a card's ability.
func (r *Registry) RegisterAbility(cardID string, mechanics []Mechanic) {
	r.abilities[cardID] = mechanics
}

// RegisterTrainer installs the Mechanic list for a trainer card, keyed by
// its name (trainers are looked up by name, not id, since reprints share
// behavior).
func (r *Registry) RegisterTrainer(name string, mechanics []Mechanic) {
	r.trainers[name] = mechanics
}

// RegisterTool installs the Mechanic list for a Tool card's passive/
// triggered effect, keyed by name.
func (r *Registry) RegisterTool(name string, mechanics []Mechanic) {
	r.tools[name] = mechanics
}

// AttackEffects returns the (possibly empty) ordered Mechanic list for a
// card's attack.
func (r *Registry) AttackEffects(cardID string, attackIdx int) []Mechanic {
	return r.attacks[effectKey{id: cardID, index: attackIdx}]
}

// AbilityEffects returns the (possibly empty) ordered Mechanic list for a
// card's ability.
func (r *Registry) AbilityEffects(cardID string) []Mechanic {
	return r.abilities[cardID]
}

// TrainerEffects returns the (possibly empty) ordered Mechanic list for a
// trainer card by name.
func (r *Registry) TrainerEffects(name string) []Mechanic {
	return r.trainers[name]
}

// ToolEffects returns the (possibly empty) ordered Mechanic list for a
// Tool card by name.
func (r *Registry) ToolEffects(name string) []Mechanic {
	return r.tools[name]
}

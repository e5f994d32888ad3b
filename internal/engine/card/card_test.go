package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttackPayableMatchesConcreteBeforeColorless(t *testing.T) {
	a := Attack{EnergyCost: []EnergyType{Fire, Colorless}}

	assert.True(t, a.Payable([]EnergyType{Fire, Water}))
	assert.False(t, a.Payable([]EnergyType{Water, Water}))
	assert.False(t, a.Payable([]EnergyType{Fire}))
}

func TestAttackPayableAllColorless(t *testing.T) {
	a := Attack{EnergyCost: []EnergyType{Colorless, Colorless}}

	assert.True(t, a.Payable([]EnergyType{Grass, Fire}))
	assert.False(t, a.Payable([]EnergyType{Grass}))
}

func TestAttackPayableDuplicateConcreteRequiresDistinctMatches(t *testing.T) {
	a := Attack{EnergyCost: []EnergyType{Fire, Fire}}

	assert.True(t, a.Payable([]EnergyType{Fire, Fire}))
	assert.False(t, a.Payable([]EnergyType{Fire, Water}))
}

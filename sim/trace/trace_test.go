package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Level: LevelNone}.Enabled())
	assert.True(t, Config{Level: LevelDecisions}.Enabled())
}

func TestIsValidLevel(t *testing.T) {
	assert.True(t, IsValidLevel(""))
	assert.True(t, IsValidLevel("none"))
	assert.True(t, IsValidLevel("decisions"))
	assert.False(t, IsValidLevel("verbose"))
}

func TestSimulationTrace_RecordLocation(t *testing.T) {
	st := New(Config{Level: LevelDecisions})
	st.RecordLocation(LocationRecord{Variable: "porosity", Location: 3, Branch: BranchConditional})
	st.RecordLocation(LocationRecord{Variable: "facies", Location: 0, Branch: BranchHardData})
	st.RecordLocation(LocationRecord{Variable: "porosity", Location: 1, Branch: BranchMarginalInsufficient})

	assert.Len(t, st.Locations, 3)

	records := st.ForVariable("porosity")
	assert.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Location)
	assert.Equal(t, 1, records[1].Location)
}

func TestSimulationTrace_DisabledIsNoop(t *testing.T) {
	st := New(Config{})
	st.RecordLocation(LocationRecord{Variable: "porosity"})
	assert.Empty(t, st.Locations)
}

func TestSimulationTrace_NilSafe(t *testing.T) {
	var st *SimulationTrace
	st.RecordLocation(LocationRecord{})
	assert.Nil(t, st.ForVariable("porosity"))
}

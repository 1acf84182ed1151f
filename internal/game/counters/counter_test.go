package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterClampAtZero(t *testing.T) {
	c := NewCounter(KindVirus, 2)
	c.Remove(5)
	assert.Equal(t, 0, c.Count)
}

func TestCountersAddAndCount(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindVirus, 2)
	cs.Add(KindVirus, 3)
	cs.Add(KindPower, 1)

	assert.Equal(t, 5, cs.Count(KindVirus))
	assert.Equal(t, 1, cs.Count(KindPower))
	assert.Equal(t, 0, cs.Count(KindCredit))
	assert.Equal(t, 6, cs.Total())
}

func TestCountersAddNonPositiveNoOp(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindVirus, 0)
	cs.Add(KindVirus, -2)
	assert.False(t, cs.Has(KindVirus))
}

func TestCountersRemovePrunesEmptyEntry(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindPower, 2)
	assert.True(t, cs.Remove(KindPower, 2))

	// The entry itself must be gone, not just at zero.
	_, present := cs.Counters[KindPower]
	assert.False(t, present)
}

func TestCountersRemoveAbsentKindNoOp(t *testing.T) {
	cs := NewCounters()
	assert.False(t, cs.Remove(KindVirus, 1))
}

func TestPurge(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindVirus, 4)
	cs.Add(KindPower, 1)

	assert.Equal(t, 4, cs.Purge(KindVirus))
	assert.False(t, cs.Has(KindVirus))
	assert.Equal(t, 1, cs.Count(KindPower))
	assert.Equal(t, 0, cs.Purge(KindVirus))
}

func TestCopyIsIndependent(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindVirus, 2)

	cpy := cs.Copy()
	cpy.Add(KindVirus, 5)

	assert.Equal(t, 2, cs.Count(KindVirus))
	assert.Equal(t, 7, cpy.Count(KindVirus))
}

func TestSnapshot(t *testing.T) {
	cs := NewCounters()
	cs.Add(KindVirus, 2)
	cs.Add(KindPower, 1)
	assert.Equal(t, map[string]int{KindVirus: 2, KindPower: 1}, cs.Snapshot())
}

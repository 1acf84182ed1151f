// Package counters manages the per-kind counter collections carried by cards.
// Counts are never negative, and a kind whose count reaches zero is pruned
// from the collection so empty entries never linger.
package counters

// Counter kinds used by card scripts.
const (
	KindVirus  = "virus"
	KindPower  = "power"
	KindCredit = "credit"
)

// Counter represents counters of a single kind.
type Counter struct {
	Kind  string
	Count int
}

// NewCounter creates a counter with the given kind and count. Counts below
// one are clamped to one.
func NewCounter(kind string, count int) *Counter {
	if count <= 0 {
		count = 1
	}
	return &Counter{
		Kind:  kind,
		Count: count,
	}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes the specified amount from the counter.
// Will not allow the count to go below 0.
func (c *Counter) Remove(amount int) {
	if amount > 0 {
		if c.Count >= amount {
			c.Count -= amount
		} else {
			c.Count = 0
		}
	}
}

// Copy creates a deep copy of the counter.
func (c *Counter) Copy() *Counter {
	return &Counter{
		Kind:  c.Kind,
		Count: c.Count,
	}
}

// Counters manages a collection of counters keyed by kind.
type Counters struct {
	Counters map[string]*Counter
}

// NewCounters creates a new Counters collection.
func NewCounters() *Counters {
	return &Counters{
		Counters: make(map[string]*Counter),
	}
}

// Add adds amount counters of the given kind. Non-positive amounts are a
// no-op.
func (cs *Counters) Add(kind string, amount int) {
	if amount <= 0 {
		return
	}
	if existing, ok := cs.Counters[kind]; ok {
		existing.Add(amount)
		return
	}
	cs.Counters[kind] = NewCounter(kind, amount)
}

// Remove removes up to amount counters of the given kind, pruning the entry
// when it reaches zero. Removing from an absent kind is a no-op. Returns
// true if any counters were removed.
func (cs *Counters) Remove(kind string, amount int) bool {
	if amount <= 0 {
		return false
	}
	counter, ok := cs.Counters[kind]
	if !ok {
		return false
	}
	counter.Remove(amount)
	if counter.Count == 0 {
		delete(cs.Counters, kind)
	}
	return true
}

// Count returns the count of counters with the given kind.
func (cs *Counters) Count(kind string) int {
	if counter, ok := cs.Counters[kind]; ok {
		return counter.Count
	}
	return 0
}

// Has returns true if there are any counters of the given kind.
func (cs *Counters) Has(kind string) bool {
	return cs.Count(kind) > 0
}

// Total returns the total number of counters of all kinds.
func (cs *Counters) Total() int {
	total := 0
	for _, counter := range cs.Counters {
		total += counter.Count
	}
	return total
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	cpy := NewCounters()
	for kind, counter := range cs.Counters {
		cpy.Counters[kind] = counter.Copy()
	}
	return cpy
}

// Snapshot returns a plain kind-to-count map, suitable for outbound views.
func (cs *Counters) Snapshot() map[string]int {
	snap := make(map[string]int, len(cs.Counters))
	for kind, counter := range cs.Counters {
		snap[kind] = counter.Count
	}
	return snap
}

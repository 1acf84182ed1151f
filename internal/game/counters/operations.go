package counters

// Purge removes every counter of the given kind and returns how many were
// removed. Purging an absent kind is a no-op.
func (cs *Counters) Purge(kind string) int {
	counter, ok := cs.Counters[kind]
	if !ok {
		return 0
	}
	removed := counter.Count
	delete(cs.Counters, kind)
	return removed
}

// PurgeAll removes every counter of every kind and returns the total
// removed.
func (cs *Counters) PurgeAll() int {
	total := cs.Total()
	cs.Counters = make(map[string]*Counter)
	return total
}

// Package ident issues the unique card identities (cids) used throughout a
// game session. Each session owns its own Issuer; nothing here is a hidden
// process-wide global.
package ident

import "sync/atomic"

// Origin is the value the first issued cid follows; the first NextID call
// returns Origin + 1.
const Origin = 0

// Issuer hands out strictly increasing cids. It is safe for concurrent use:
// token creation nested inside another ability's effect may issue ids while
// a resolution is in flight.
type Issuer struct {
	last atomic.Int64
}

// NewIssuer creates an issuer starting at the fixed origin.
func NewIssuer() *Issuer {
	iss := &Issuer{}
	iss.last.Store(Origin)
	return iss
}

// NextID returns the next cid. Ids are never reused and never wrap within a
// normal game lifetime.
func (i *Issuer) NextID() int {
	return int(i.last.Add(1))
}

// Last returns the most recently issued cid, or Origin when none has been
// issued yet.
func (i *Issuer) Last() int {
	return int(i.last.Load())
}

// Package card defines the card data model shared by the whole rules core:
// the two-valued side enumeration, the card record itself, the redacted
// projection sent to an opponent, and subtype string composition.
package card

import (
	"strings"

	"github.com/breachline/breach-server-go/internal/game/counters"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

// Side is the canonical two-valued side enumeration. External textual
// representations are converted once at ingress via ParseSide and the enum
// is used internally everywhere.
type Side int

const (
	SideNone Side = iota
	SideCorp
	SideRunner
)

var sideNames = map[Side]string{
	SideCorp:   "Corp",
	SideRunner: "Runner",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	switch s {
	case SideCorp:
		return SideRunner
	case SideRunner:
		return SideCorp
	}
	return SideNone
}

// ParseSide converts an external textual side representation. Unrecognized
// text yields ok=false, never an error.
func ParseSide(text string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "corp":
		return SideCorp, true
	case "runner":
		return SideRunner, true
	}
	return SideNone, false
}

// Card is a single card instance. A card occupies exactly one zone at any
// instant; reassigning Zone is an atomic replacement performed under the
// session's single-writer discipline, never a partial update.
type Card struct {
	CID         int
	Title       string
	Side        Side
	Type        string
	Subtype     string
	Zone        zones.Zone
	Counters    *counters.Counters
	Advancement int
	HostCID     int   // 0 = not hosted
	HostedCIDs  []int // ordered
	IsNew       bool
	Icon        string

	// Catalog fields. None of these may leak through Private.
	Text     string
	Cost     int
	Strength int
}

// New creates a card with the given identity and an empty counter
// collection.
func New(cid int, title string, side Side, cardType string) *Card {
	return &Card{
		CID:      cid,
		Title:    title,
		Side:     side,
		Type:     cardType,
		Counters: counters.NewCounters(),
	}
}

// Same reports whether two cards are the same instance, by cid.
func Same(a, b *Card) bool {
	return SameBy(a, b, nil)
}

// SameBy compares two cards by a caller-selected key extractor. A nil keyFn
// compares by cid.
func SameBy(a, b *Card, keyFn func(*Card) any) bool {
	if a == nil || b == nil {
		return false
	}
	if keyFn == nil {
		return a.CID == b.CID
	}
	return keyFn(a) == keyFn(b)
}

// Private is the information-hiding projection of a card: exactly the fields
// an opponent is allowed to see. Anything else on the full card must never
// leak through this projection.
type Private struct {
	Zone        zones.Zone     `json:"zone"`
	ID          int            `json:"id"`
	Side        string         `json:"side"`
	IsNew       bool           `json:"isNew"`
	Host        int            `json:"host"`
	Counters    map[string]int `json:"counters"`
	Advancement int            `json:"advancementCounter"`
	Hosted      []int          `json:"hosted"`
	Icon        string         `json:"icon"`
}

// PrivateView projects the card for an opponent's outbound state snapshot.
func (c *Card) PrivateView() Private {
	var snap map[string]int
	if c.Counters != nil {
		snap = c.Counters.Snapshot()
	}
	return Private{
		Zone:        c.Zone.Copy(),
		ID:          c.CID,
		Side:        c.Side.String(),
		IsNew:       c.IsNew,
		Host:        c.HostCID,
		Counters:    snap,
		Advancement: c.Advancement,
		Hosted:      append([]int(nil), c.HostedCIDs...),
		Icon:        c.Icon,
	}
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

func TestPlaceCardOrdering(t *testing.T) {
	gs := newGameState("g")
	a := card.New(gs.issuer.NextID(), "A", card.SideCorp, "Asset")
	b := card.New(gs.issuer.NextID(), "B", card.SideCorp, "Asset")
	gs.cards[a.CID] = a
	gs.cards[b.CID] = b

	gs.placeCard(a, zones.Locale(1))
	gs.placeCard(b, zones.Locale(1))

	assert.Equal(t, []int{a.CID, b.CID}, gs.zoneContents(zones.Locale(1)))
}

func TestPlaceCardReplacesZoneWholesale(t *testing.T) {
	gs := newGameState("g")
	a := card.New(gs.issuer.NextID(), "A", card.SideCorp, "Asset")
	gs.cards[a.CID] = a

	gs.placeCard(a, zones.Locale(2))
	require.True(t, a.Zone.Equal(zones.Locale(2)))

	gs.placeCard(a, zones.Zone{zones.AreaArchives})
	assert.True(t, a.Zone.Equal(zones.Zone{zones.AreaArchives}))
	assert.Empty(t, gs.zoneContents(zones.Locale(2)))
}

func TestEmptiedContainersArePruned(t *testing.T) {
	gs := newGameState("g")
	a := card.New(gs.issuer.NextID(), "A", card.SideCorp, "Asset")
	gs.cards[a.CID] = a

	gs.placeCard(a, zones.Locale(3))
	require.Contains(t, gs.placements, zones.AreaLocale)

	gs.placeCard(a, zones.Zone{zones.AreaHQ})

	// Both the locale segment and the emptied locale area are gone.
	_, present := gs.placements[zones.AreaLocale]
	assert.False(t, present)
}

func TestPartiallyEmptiedAreaKeepsSiblings(t *testing.T) {
	gs := newGameState("g")
	a := card.New(gs.issuer.NextID(), "A", card.SideCorp, "Asset")
	b := card.New(gs.issuer.NextID(), "B", card.SideCorp, "Asset")
	gs.cards[a.CID] = a
	gs.cards[b.CID] = b

	gs.placeCard(a, zones.Locale(1))
	gs.placeCard(b, zones.Locale(2))
	gs.placeCard(a, zones.Zone{zones.AreaHQ})

	segments := gs.placements[zones.AreaLocale]
	require.NotNil(t, segments)
	_, present := segments["1"]
	assert.False(t, present)
	assert.Equal(t, []int{b.CID}, gs.zoneContents(zones.Locale(2)))
}

func TestRemoveFromAbsentPlacementIsNoOp(t *testing.T) {
	gs := newGameState("g")
	a := card.New(gs.issuer.NextID(), "A", card.SideCorp, "Asset")
	a.Zone = zones.Locale(9) // never placed

	assert.NotPanics(t, func() {
		gs.removeFromPlacements(a)
		gs.pruneEmptyPath("nowhere", "4")
	})
}

func TestTurnEventScopedToCurrentTurn(t *testing.T) {
	gs := newGameState("g")
	gs.startTurn(card.SideRunner)
	gs.addTurnEvent(card.SideRunner, markerSpentClick, "")
	require.True(t, gs.hasTurnEvent(card.SideRunner, markerSpentClick))

	// Markers from an earlier turn are invisible even if the log were not
	// cleared.
	gs.turnNumber++
	assert.False(t, gs.hasTurnEvent(card.SideRunner, markerSpentClick))
}

func TestRemovePromptAbsentIsNoOp(t *testing.T) {
	gs := newGameState("g")
	assert.NotPanics(t, func() { gs.removePrompt("missing") })
}

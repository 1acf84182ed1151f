package game

import (
	"sync"
	"time"

	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/ident"
	"github.com/breachline/breach-server-go/internal/game/prompt"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

// markerSpentClick is the turn-event marker recorded when a side spends a
// click.
const markerSpentClick = "spent-click"

// turnEvent is one entry in a side's per-turn event log.
type turnEvent struct {
	Marker string
	Turn   int
	Text   string
	At     time.Time
}

// LogEntry is one line of the shared game log.
type LogEntry struct {
	Side card.Side
	Text string
	At   time.Time
}

// PendingPrompt is an outstanding interactive request for a side to choose
// among offered options.
type PendingPrompt struct {
	ID      string
	Side    card.Side
	Text    string
	Choices []prompt.Choice
	At      time.Time
}

// gameState is the per-session shared state. It is mutated only through the
// resolution engine's effect step or the zone/cost operations, under the
// session mutex; everything handed outward is a value copy.
type gameState struct {
	gameID     string
	issuer     *ident.Issuer
	cards      map[int]*card.Card
	placements map[string]map[string][]int // area -> segment -> ordered cids
	turnNumber int
	activeSide card.Side
	events     map[card.Side][]turnEvent
	used       map[card.Side]map[int]bool
	prompts    []PendingPrompt
	resolution *resolution
	log        []LogEntry
	startedAt  time.Time
	finished   bool
	winner     card.Side
	mu         sync.RWMutex
}

func newGameState(gameID string) *gameState {
	return &gameState{
		gameID:     gameID,
		issuer:     ident.NewIssuer(),
		cards:      make(map[int]*card.Card),
		placements: make(map[string]map[string][]int),
		turnNumber: 1,
		events: map[card.Side][]turnEvent{
			card.SideCorp:   nil,
			card.SideRunner: nil,
		},
		used: map[card.Side]map[int]bool{
			card.SideCorp:   make(map[int]bool),
			card.SideRunner: make(map[int]bool),
		},
		startedAt: time.Now(),
	}
}

// zonePath splits a zone into its placement path. Single-segment zones use
// the empty segment key.
func zonePath(z zones.Zone) (area, segment string) {
	if len(z) == 0 {
		return "", ""
	}
	area = z[0]
	if len(z) > 1 {
		segment = z[1]
	}
	return area, segment
}

// placeCard moves a card into a zone: it leaves its previous placement,
// enters the new one at the end of the ordered list, and has its Zone field
// replaced wholesale. Callers hold the state mutex.
func (gs *gameState) placeCard(c *card.Card, z zones.Zone) {
	gs.removeFromPlacements(c)

	area, segment := zonePath(z)
	if area != "" {
		segments, ok := gs.placements[area]
		if !ok {
			segments = make(map[string][]int)
			gs.placements[area] = segments
		}
		segments[segment] = append(segments[segment], c.CID)
	}

	c.Zone = z.Copy()
}

// removeFromPlacements removes the card from its current placement, pruning
// any containers that empty out. Absent paths are a no-op.
func (gs *gameState) removeFromPlacements(c *card.Card) {
	area, segment := zonePath(c.Zone)
	segments, ok := gs.placements[area]
	if !ok {
		return
	}
	cids := segments[segment]
	for i, cid := range cids {
		if cid == c.CID {
			segments[segment] = append(cids[:i], cids[i+1:]...)
			break
		}
	}
	gs.pruneEmptyPath(area, segment)
}

// pruneEmptyPath walks the placement path innermost-first and removes every
// container that has emptied out, so no dangling empty containers remain.
// Pruning an already-absent path is a no-op.
func (gs *gameState) pruneEmptyPath(area, segment string) {
	segments, ok := gs.placements[area]
	if !ok {
		return
	}
	if cids, ok := segments[segment]; ok && len(cids) == 0 {
		delete(segments, segment)
	}
	if len(segments) == 0 {
		delete(gs.placements, area)
	}
}

// zoneContents returns the ordered cids currently placed in a zone.
func (gs *gameState) zoneContents(z zones.Zone) []int {
	area, segment := zonePath(z)
	segments, ok := gs.placements[area]
	if !ok {
		return nil
	}
	return append([]int(nil), segments[segment]...)
}

// occupiedZones returns every zone path that currently holds cards.
func (gs *gameState) occupiedZones() []zones.Zone {
	var zs []zones.Zone
	for area, segments := range gs.placements {
		for segment := range segments {
			if segment == "" {
				zs = append(zs, zones.Zone{area})
			} else {
				zs = append(zs, zones.Zone{area, segment})
			}
		}
	}
	return zs
}

// addTurnEvent appends an event to a side's per-turn log.
func (gs *gameState) addTurnEvent(side card.Side, marker, text string) {
	gs.events[side] = append(gs.events[side], turnEvent{
		Marker: marker,
		Turn:   gs.turnNumber,
		Text:   text,
		At:     time.Now(),
	})
}

// hasTurnEvent reports whether the side's log holds the marker for the
// current turn.
func (gs *gameState) hasTurnEvent(side card.Side, marker string) bool {
	for _, ev := range gs.events[side] {
		if ev.Marker == marker && ev.Turn == gs.turnNumber {
			return true
		}
	}
	return false
}

// startTurn begins a side's turn: that side's usage set and turn-event log
// are cleared before anything else happens.
func (gs *gameState) startTurn(side card.Side) {
	// The Corp opens each numbered turn; the very first startTurn stays on
	// turn 1.
	if side == card.SideCorp && gs.activeSide != card.SideNone {
		gs.turnNumber++
	}
	gs.activeSide = side
	gs.events[side] = nil
	gs.used[side] = make(map[int]bool)
	gs.appendLog(side, side.String()+" begins their turn")
}

// markUsed records the card in the side's per-turn usage set. Sides outside
// the two-value enum still get a set, so effects on sideless cards never
// write to a nil map.
func (gs *gameState) markUsed(side card.Side, cid int) {
	set, ok := gs.used[side]
	if !ok {
		set = make(map[int]bool)
		gs.used[side] = set
	}
	set[cid] = true
}

// appendLog appends a shared game-log entry.
func (gs *gameState) appendLog(side card.Side, text string) {
	if text == "" {
		return
	}
	gs.log = append(gs.log, LogEntry{
		Side: side,
		Text: text,
		At:   time.Now(),
	})
}

// removePrompt drops a pending prompt by id. Absent ids are a no-op.
func (gs *gameState) removePrompt(id string) {
	for i, p := range gs.prompts {
		if p.ID == id {
			gs.prompts = append(gs.prompts[:i], gs.prompts[i+1:]...)
			return
		}
	}
}

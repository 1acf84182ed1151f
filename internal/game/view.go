package game

import (
	"sort"

	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

// CardView is the full, unredacted view of a card: what the owning side
// sees.
type CardView struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Side        string         `json:"side"`
	Type        string         `json:"type"`
	Subtype     string         `json:"subtype,omitempty"`
	Zone        zones.Zone     `json:"zone"`
	ZoneName    string         `json:"zoneName,omitempty"`
	Counters    map[string]int `json:"counters"`
	Advancement int            `json:"advancementCounter"`
	Host        int            `json:"host"`
	Hosted      []int          `json:"hosted"`
	IsNew       bool           `json:"isNew"`
	Icon        string         `json:"icon,omitempty"`
	Text        string         `json:"text,omitempty"`
}

// GameView is the outbound snapshot for one side. The viewer's own cards are
// full views; every opposing card passes through the redaction projection
// first, so nothing outside the permitted field set leaves the engine.
type GameView struct {
	GameID     string          `json:"gameId"`
	Turn       int             `json:"turn"`
	ActiveSide string          `json:"activeSide"`
	Viewer     string          `json:"viewer"`
	Own        []CardView      `json:"own"`
	Opponent   []card.Private  `json:"opponent"`
	ZoneNames  []string        `json:"zoneNames"`
	Log        []LogEntry      `json:"log"`
	Prompts    []PendingPrompt `json:"prompts"`
}

// GameView builds the redacted snapshot of a session for the given viewer.
func (e *BreachEngine) GameView(gameID string, viewer card.Side) (*GameView, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return nil, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	view := &GameView{
		GameID:     gameID,
		Turn:       gs.turnNumber,
		ActiveSide: gs.activeSide.String(),
		Viewer:     viewer.String(),
		ZoneNames:  zones.SortedZoneNames(gs.occupiedZones()),
		Log:        append([]LogEntry(nil), gs.log...),
	}

	cids := make([]int, 0, len(gs.cards))
	for cid := range gs.cards {
		cids = append(cids, cid)
	}
	sort.Ints(cids)
	for _, cid := range cids {
		c := gs.cards[cid]
		if c.Side == viewer {
			view.Own = append(view.Own, buildCardView(c))
		} else {
			view.Opponent = append(view.Opponent, c.PrivateView())
		}
	}

	for _, p := range gs.prompts {
		if p.Side == viewer {
			view.Prompts = append(view.Prompts, p)
		}
	}
	return view, nil
}

func buildCardView(c *card.Card) CardView {
	name, _ := c.Zone.Name()
	return CardView{
		ID:          c.CID,
		Title:       c.Title,
		Side:        c.Side.String(),
		Type:        c.Type,
		Subtype:     c.Subtype,
		Zone:        c.Zone.Copy(),
		ZoneName:    name,
		Counters:    c.Counters.Snapshot(),
		Advancement: c.Advancement,
		Host:        c.HostCID,
		Hosted:      append([]int(nil), c.HostedCIDs...),
		IsNew:       c.IsNew,
		Icon:        c.Icon,
		Text:        c.Text,
	}
}

package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/prompt"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

// BreachEngine owns every active game session and mediates all state
// mutation through the resolution protocol and the zone/turn operations
// below. One resolution is in flight per game at a time; everything else
// waits.
type BreachEngine struct {
	logger   *zap.Logger
	registry *Registry

	mu    sync.RWMutex
	games map[string]*gameState
}

// NewBreachEngine creates an engine backed by the given ability registry.
func NewBreachEngine(logger *zap.Logger, registry *Registry) *BreachEngine {
	if registry == nil {
		registry = NewRegistry()
	}
	return &BreachEngine{
		logger:   logger,
		registry: registry,
		games:    make(map[string]*gameState),
	}
}

// StartGame initializes a new game session.
func (e *BreachEngine) StartGame(gameID string) error {
	if gameID == "" {
		return fmt.Errorf("gameID is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.games[gameID]; exists {
		return fmt.Errorf("game %s already exists", gameID)
	}
	e.games[gameID] = newGameState(gameID)

	if e.logger != nil {
		e.logger.Info("engine started game", zap.String("game_id", gameID))
	}
	return nil
}

// EndGame tears the session down and returns a summary suitable for
// archiving.
func (e *BreachEngine) EndGame(gameID string, winner card.Side) (*Summary, error) {
	e.mu.Lock()
	gs, exists := e.games[gameID]
	if exists {
		delete(e.games, gameID)
	}
	e.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("game %s not found", gameID)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.finished = true
	gs.winner = winner

	entries := make([]string, len(gs.log))
	for i, entry := range gs.log {
		entries[i] = entry.Text
	}
	summary := &Summary{
		GameID:     gameID,
		Winner:     winner.String(),
		Turns:      gs.turnNumber,
		StartedAt:  gs.startedAt,
		FinishedAt: time.Now(),
		Log:        entries,
	}

	if e.logger != nil {
		e.logger.Info("engine ended game",
			zap.String("game_id", gameID),
			zap.String("winner", winner.String()),
			zap.Int("turns", gs.turnNumber),
		)
	}
	return summary, nil
}

// Summary is the record of a completed game handed to the archive layer.
type Summary struct {
	GameID     string
	Winner     string
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
	Log        []string
}

// game looks up a session.
func (e *BreachEngine) game(gameID string) (*gameState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	gs, ok := e.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	return gs, nil
}

// AddCard creates a card in the session and places it into the given zone.
// The session's issuer assigns the cid.
func (e *BreachEngine) AddCard(gameID, title string, side card.Side, cardType string, z zones.Zone) (int, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return 0, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.resolution != nil {
		return 0, fmt.Errorf("game %s has a resolution awaiting a choice", gameID)
	}
	c := card.New(gs.issuer.NextID(), title, side, cardType)
	gs.cards[c.CID] = c
	gs.placeCard(c, z)
	return c.CID, nil
}

// MoveCard places an existing card into a zone. The previous placement is
// pruned if it empties out.
func (e *BreachEngine) MoveCard(gameID string, cid int, z zones.Zone) error {
	gs, err := e.game(gameID)
	if err != nil {
		return err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.resolution != nil {
		return fmt.Errorf("game %s has a resolution awaiting a choice", gameID)
	}
	c, ok := gs.cards[cid]
	if !ok {
		return fmt.Errorf("card %d not found", cid)
	}
	gs.placeCard(c, z)
	return nil
}

// StartTurn begins a side's turn, clearing that side's per-turn usage set
// and turn-event log.
func (e *BreachEngine) StartTurn(gameID string, side card.Side) error {
	gs, err := e.game(gameID)
	if err != nil {
		return err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.resolution != nil {
		return fmt.Errorf("game %s has a resolution awaiting a choice", gameID)
	}
	gs.startTurn(side)

	if e.logger != nil {
		e.logger.Debug("turn started",
			zap.String("game_id", gameID),
			zap.String("side", side.String()),
			zap.Int("turn", gs.turnNumber),
		)
	}
	return nil
}

// SpendClick records a spent-click marker for the side in the current turn.
func (e *BreachEngine) SpendClick(gameID string, side card.Side) error {
	gs, err := e.game(gameID)
	if err != nil {
		return err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.resolution != nil {
		return fmt.Errorf("game %s has a resolution awaiting a choice", gameID)
	}
	gs.addTurnEvent(side, markerSpentClick, "")
	return nil
}

// HasSpentClick reports whether the side has a spent-click marker in the
// current turn.
func (e *BreachEngine) HasSpentClick(gameID string, side card.Side) (bool, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return false, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.hasTurnEvent(side, markerSpentClick), nil
}

// HasUsedThisTurn reports whether the card has been marked used in the
// current turn.
func (e *BreachEngine) HasUsedThisTurn(gameID string, cid int) (bool, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return false, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	c, ok := gs.cards[cid]
	if !ok {
		return false, nil
	}
	return gs.used[c.Side][cid], nil
}

// PendingPrompts returns copies of the side's outstanding prompts.
func (e *BreachEngine) PendingPrompts(gameID string, side card.Side) ([]PendingPrompt, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return nil, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	var out []PendingPrompt
	for _, p := range gs.prompts {
		if p.Side != side {
			continue
		}
		cpy := p
		cpy.Choices = append([]prompt.Choice(nil), p.Choices...)
		out = append(out, cpy)
	}
	return out, nil
}

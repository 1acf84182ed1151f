package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/breachline/breach-server-go/internal/game"
	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

type createGamePayload struct {
	Side string `json:"side"`
}

type joinGamePayload struct {
	Side string `json:"side"`
}

type addCardPayload struct {
	Title string   `json:"title"`
	Side  string   `json:"side"`
	Type  string   `json:"type"`
	Zone  []string `json:"zone"`
}

type moveCardPayload struct {
	CID  int      `json:"cid"`
	Zone []string `json:"zone"`
}

type attemptAbilityPayload struct {
	CID          int   `json:"cid"`
	AbilityIndex int   `json:"abilityIndex"`
	Targets      []int `json:"targets"`
}

type resumeChoicePayload struct {
	PromptID    string `json:"promptId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

type endGamePayload struct {
	Winner string `json:"winner"`
}

type outcomePayload struct {
	Outcome string `json:"outcome"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func (g *Gateway) handleMessage(ctx context.Context, c *Client, msg Message) {
	switch msg.Type {
	case "create_game":
		var p createGamePayload
		decodePayload(msg.Payload, &p)
		gameID := uuid.NewString()
		if err := g.engine.StartGame(gameID); err != nil {
			g.sendError(c, err)
			return
		}
		c.gameID = gameID
		c.side = sideOrNone(p.Side)
		g.pushViews(gameID)

	case "join_game":
		var p joinGamePayload
		decodePayload(msg.Payload, &p)
		c.gameID = msg.GameID
		c.side = sideOrNone(p.Side)
		g.pushViews(msg.GameID)

	case "start_turn":
		if err := g.engine.StartTurn(c.gameID, sideOrNone(msg.Side)); err != nil {
			g.sendError(c, err)
			return
		}
		g.pushViews(c.gameID)

	case "spend_click":
		if err := g.engine.SpendClick(c.gameID, sideOrNone(msg.Side)); err != nil {
			g.sendError(c, err)
			return
		}
		g.pushViews(c.gameID)

	case "add_card":
		var p addCardPayload
		decodePayload(msg.Payload, &p)
		if _, err := g.engine.AddCard(c.gameID, p.Title, sideOrNone(p.Side), p.Type, zones.Zone(p.Zone)); err != nil {
			g.sendError(c, err)
			return
		}
		g.pushViews(c.gameID)

	case "move_card":
		var p moveCardPayload
		decodePayload(msg.Payload, &p)
		if err := g.engine.MoveCard(c.gameID, p.CID, zones.Zone(p.Zone)); err != nil {
			g.sendError(c, err)
			return
		}
		g.pushViews(c.gameID)

	case "attempt_ability":
		var p attemptAbilityPayload
		decodePayload(msg.Payload, &p)
		outcome, err := g.engine.AttemptAbility(c.gameID, p.CID, p.AbilityIndex, p.Targets...)
		if err != nil && outcome != game.OutcomeNotAvailable {
			g.sendError(c, err)
			return
		}
		g.sendOutcome(c, outcome)
		g.pushViews(c.gameID)

	case "resume_choice":
		var p resumeChoicePayload
		decodePayload(msg.Payload, &p)
		outcome, err := g.engine.ResumeChoice(c.gameID, p.PromptID, p.ChoiceIndex)
		if err != nil && outcome != game.OutcomeNotAvailable {
			g.sendError(c, err)
			return
		}
		g.sendOutcome(c, outcome)
		g.pushViews(c.gameID)

	case "cancel_resolution":
		outcome, err := g.engine.CancelResolution(c.gameID)
		if err != nil {
			g.sendError(c, err)
			return
		}
		g.sendOutcome(c, outcome)
		g.pushViews(c.gameID)

	case "end_game":
		var p endGamePayload
		decodePayload(msg.Payload, &p)
		summary, err := g.engine.EndGame(c.gameID, sideOrNone(p.Winner))
		if err != nil {
			g.sendError(c, err)
			return
		}
		if g.archive != nil {
			saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := g.archive.Save(saveCtx, summary); err != nil && g.logger != nil {
				g.logger.Error("failed to archive game",
					zap.String("game_id", summary.GameID), zap.Error(err))
			}
			cancel()
		}
		g.sendJSON(c, Message{Type: "game_over", GameID: summary.GameID}, summary)

	default:
		if g.logger != nil {
			g.logger.Warn("unknown message type",
				zap.String("client_id", c.id), zap.String("type", msg.Type))
		}
	}
}

// pushViews sends every client attached to the game its own redacted view.
func (g *Gateway) pushViews(gameID string) {
	if gameID == "" {
		return
	}

	g.mu.RLock()
	attached := make([]*Client, 0, len(g.clients))
	for client := range g.clients {
		if client.gameID == gameID {
			attached = append(attached, client)
		}
	}
	g.mu.RUnlock()

	for _, client := range attached {
		view, err := g.engine.GameView(gameID, client.side)
		if err != nil {
			continue
		}
		g.sendJSON(client, Message{Type: "game_view", GameID: gameID}, view)
	}
}

func (g *Gateway) sendOutcome(c *Client, outcome game.Outcome) {
	g.sendJSON(c, Message{Type: "outcome", GameID: c.gameID}, outcomePayload{Outcome: outcome.String()})
}

func (g *Gateway) sendError(c *Client, err error) {
	if g.logger != nil {
		g.logger.Warn("request failed", zap.String("client_id", c.id), zap.Error(err))
	}
	g.sendJSON(c, Message{Type: "error", GameID: c.gameID}, errorPayload{Error: err.Error()})
}

func (g *Gateway) sendJSON(c *Client, envelope Message, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	envelope.Payload = raw
	out, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	select {
	case c.send <- out:
	default:
	}
}

func sideOrNone(text string) card.Side {
	side, ok := card.ParseSide(text)
	if !ok {
		return card.SideNone
	}
	return side
}

func decodePayload(raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

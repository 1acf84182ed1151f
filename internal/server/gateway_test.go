package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breachline/breach-server-go/internal/game"
	"github.com/breachline/breach-server-go/internal/game/card"
)

type recordedArchive struct {
	saved []*game.Summary
}

func (r *recordedArchive) Save(ctx context.Context, s *game.Summary) error {
	r.saved = append(r.saved, s)
	return nil
}

func newTestGateway(t *testing.T) (*Gateway, *recordedArchive) {
	t.Helper()
	archive := &recordedArchive{}
	g := NewGateway(game.NewBreachEngine(nil, nil), archive, nil)
	return g, archive
}

func attachClient(g *Gateway, side card.Side) *Client {
	c := &Client{id: "test-client", send: make(chan []byte, 16), side: side}
	g.clients[c] = true
	return c
}

func drain(t *testing.T, c *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case raw := <-c.send:
			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestCreateGamePushesView(t *testing.T) {
	g, _ := newTestGateway(t)
	c := attachClient(g, card.SideRunner)

	g.handleMessage(context.Background(), c, Message{
		Type:    "create_game",
		Payload: json.RawMessage(`{"side":"runner"}`),
	})

	require.NotEmpty(t, c.gameID)
	assert.Equal(t, card.SideRunner, c.side)

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, "game_view", msgs[0].Type)

	var view game.GameView
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &view))
	assert.Equal(t, c.gameID, view.GameID)
	assert.Equal(t, "Runner", view.Viewer)
}

func TestAddCardVisibleInNextView(t *testing.T) {
	g, _ := newTestGateway(t)
	c := attachClient(g, card.SideCorp)
	g.handleMessage(context.Background(), c, Message{
		Type:    "create_game",
		Payload: json.RawMessage(`{"side":"corp"}`),
	})
	drain(t, c)

	g.handleMessage(context.Background(), c, Message{
		Type:    "add_card",
		Payload: json.RawMessage(`{"title":"Hedge Fund","side":"corp","type":"Operation","zone":["hq"]}`),
	})

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	var view game.GameView
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &view))
	require.Len(t, view.Own, 1)
	assert.Equal(t, "Hedge Fund", view.Own[0].Title)
	assert.Contains(t, view.ZoneNames, "HQ")
}

func TestOpponentViewIsRedacted(t *testing.T) {
	g, _ := newTestGateway(t)
	corp := attachClient(g, card.SideCorp)
	g.handleMessage(context.Background(), corp, Message{
		Type:    "create_game",
		Payload: json.RawMessage(`{"side":"corp"}`),
	})
	drain(t, corp)

	runner := attachClient(g, card.SideRunner)
	g.handleMessage(context.Background(), runner, Message{
		Type:    "join_game",
		GameID:  corp.gameID,
		Payload: json.RawMessage(`{"side":"runner"}`),
	})
	drain(t, runner)

	g.handleMessage(context.Background(), corp, Message{
		Type:    "add_card",
		Payload: json.RawMessage(`{"title":"Snare!","side":"corp","type":"Asset","zone":["hq"]}`),
	})

	msgs := drain(t, runner)
	require.Len(t, msgs, 1)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &generic))
	var opponent []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(generic["opponent"], &opponent))
	require.Len(t, opponent, 1)
	assert.NotContains(t, opponent[0], "title")
	assert.NotContains(t, opponent[0], "text")
	assert.Contains(t, opponent[0], "zone")
}

func TestUnknownMessageTypeIgnored(t *testing.T) {
	g, _ := newTestGateway(t)
	c := attachClient(g, card.SideRunner)

	g.handleMessage(context.Background(), c, Message{Type: "no_such_thing"})

	assert.Empty(t, drain(t, c))
}

func TestBadRequestReportsError(t *testing.T) {
	g, _ := newTestGateway(t)
	c := attachClient(g, card.SideRunner)
	c.gameID = "missing-game"

	g.handleMessage(context.Background(), c, Message{
		Type:    "move_card",
		Payload: json.RawMessage(`{"cid":1,"zone":["archives"]}`),
	})

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, "error", msgs[0].Type)
}

func TestShutdownReleasesClients(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(stopped)
	}()

	c := &Client{id: "test-client", send: make(chan []byte, 1)}
	g.register <- c
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}

	_, open := <-c.send
	assert.False(t, open)

	// The disconnect path a reader takes after shutdown must not block.
	released := make(chan struct{})
	go func() {
		select {
		case g.unregister <- c:
		case <-g.done:
		}
		close(released)
	}()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("disconnect path blocked after shutdown")
	}
}

func TestEndGameArchivesSummary(t *testing.T) {
	g, archive := newTestGateway(t)
	c := attachClient(g, card.SideCorp)
	g.handleMessage(context.Background(), c, Message{
		Type:    "create_game",
		Payload: json.RawMessage(`{"side":"corp"}`),
	})
	drain(t, c)

	g.handleMessage(context.Background(), c, Message{
		Type:    "end_game",
		Payload: json.RawMessage(`{"winner":"corp"}`),
	})

	require.Len(t, archive.saved, 1)
	assert.Equal(t, c.gameID, archive.saved[0].GameID)
	assert.Equal(t, "Corp", archive.saved[0].Winner)

	msgs := drain(t, c)
	require.Len(t, msgs, 1)
	assert.Equal(t, "game_over", msgs[0].Type)
}

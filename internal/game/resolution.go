package game

import (
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/breachline/breach-server-go/internal/game/card"
	"github.com/breachline/breach-server-go/internal/game/prompt"
	"github.com/breachline/breach-server-go/internal/game/zones"
)

// Outcome is the result of an ability resolution attempt.
type Outcome int

const (
	// OutcomeNotAvailable: the requirement failed or errored; nothing
	// mutated, nothing logged beyond a debug line.
	OutcomeNotAvailable Outcome = iota
	// OutcomePending: the resolution is suspended on an outstanding prompt.
	OutcomePending
	// OutcomeApplied: the effect ran and the log was appended.
	OutcomeApplied
	// OutcomeCancelled: the attempt was discarded with zero partial effects.
	OutcomeCancelled
)

var outcomeNames = map[Outcome]string{
	OutcomeNotAvailable: "NOT_AVAILABLE",
	OutcomePending:      "PENDING",
	OutcomeApplied:      "APPLIED",
	OutcomeCancelled:    "CANCELLED",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OUTCOME_%d", int(o))
}

// resolutionPhase tracks the per-attempt state machine:
// Idle -> RequirementChecked -> (AwaitingChoice)* -> Applied | Cancelled.
type resolutionPhase int

const (
	phaseIdle resolutionPhase = iota
	phaseRequirementChecked
	phaseAwaitingChoice
	phaseApplied
	phaseCancelled
)

// resolution is one in-flight ability attempt. At most one exists per game;
// while it awaits a choice no other shared-state mutation is permitted.
type resolution struct {
	id       string
	cid      int
	index    int
	ability  Ability
	phase    resolutionPhase
	promptID string
}

// Context is handed to ability requirement, message, and effect functions.
// Requirement and Message must treat it as read-only; Effect methods on it
// are the sole mutation surface. The session mutex is held for the duration
// of every call.
type Context struct {
	gs     *gameState
	logger *zap.Logger

	// Card is the acting card.
	Card *card.Card
	// Choice is the side's selection, set only during the apply step of a
	// prompt-driven ability.
	Choice *prompt.Choice
	// Targets carries caller-provided target cids, when the driver supplies
	// them up front.
	Targets []int
}

// CardByCID looks up a card in the session. Unknown cids are an absent
// result.
func (ctx *Context) CardByCID(cid int) (*card.Card, bool) {
	c, ok := ctx.gs.cards[cid]
	return c, ok
}

// ZoneContents returns the ordered cids placed in a zone.
func (ctx *Context) ZoneContents(z zones.Zone) []int {
	return ctx.gs.zoneContents(z)
}

// HasUsedThisTurn reports whether the card has been marked used during the
// current turn.
func (ctx *Context) HasUsedThisTurn(cid int) bool {
	c, ok := ctx.gs.cards[cid]
	if !ok {
		return false
	}
	return ctx.gs.used[c.Side][cid]
}

// HasSpentClick reports whether the side's turn-event log contains a
// spent-click marker for the current turn.
func (ctx *Context) HasSpentClick(side card.Side) bool {
	return ctx.gs.hasTurnEvent(side, markerSpentClick)
}

// Turn returns the current turn number.
func (ctx *Context) Turn() int {
	return ctx.gs.turnNumber
}

// MarkUsed records the acting card as used this turn. Effects of
// turn-limited abilities call this themselves.
func (ctx *Context) MarkUsed() {
	ctx.gs.markUsed(ctx.Card.Side, ctx.Card.CID)
}

// SpendClick appends the spent-click marker to the acting side's turn-event
// log.
func (ctx *Context) SpendClick() {
	ctx.gs.addTurnEvent(ctx.Card.Side, markerSpentClick, "")
}

// MoveCard places a card into a zone. Unknown cids return an error; the
// move itself is an atomic replacement.
func (ctx *Context) MoveCard(cid int, z zones.Zone) error {
	c, ok := ctx.gs.cards[cid]
	if !ok {
		return fmt.Errorf("card %d not found", cid)
	}
	ctx.gs.placeCard(c, z)
	return nil
}

// CreateToken creates a new card instance inside an effect. The session's
// issuer hands out the cid, so nested creation during another resolution is
// race-free.
func (ctx *Context) CreateToken(title string, side card.Side, cardType string, z zones.Zone) *card.Card {
	c := card.New(ctx.gs.issuer.NextID(), title, side, cardType)
	c.IsNew = true
	ctx.gs.cards[c.CID] = c
	ctx.gs.placeCard(c, z)
	return c
}

// Host attaches hosted onto host, detaching it from any previous host. A
// card has at most one host.
func (ctx *Context) Host(hostCID, hostedCID int) error {
	host, ok := ctx.gs.cards[hostCID]
	if !ok {
		return fmt.Errorf("host card %d not found", hostCID)
	}
	hosted, ok := ctx.gs.cards[hostedCID]
	if !ok {
		return fmt.Errorf("hosted card %d not found", hostedCID)
	}
	if hosted.HostCID != 0 {
		if prev, ok := ctx.gs.cards[hosted.HostCID]; ok {
			for i, cid := range prev.HostedCIDs {
				if cid == hostedCID {
					prev.HostedCIDs = append(prev.HostedCIDs[:i], prev.HostedCIDs[i+1:]...)
					break
				}
			}
		}
	}
	hosted.HostCID = hostCID
	host.HostedCIDs = append(host.HostedCIDs, hostedCID)
	return nil
}

// AddCounter adds counters of a kind to a card. Unknown cids are a no-op.
func (ctx *Context) AddCounter(cid int, kind string, amount int) {
	if c, ok := ctx.gs.cards[cid]; ok {
		c.Counters.Add(kind, amount)
	}
}

// AddAdvancement adds to a card's advancement counter, clamped at zero.
func (ctx *Context) AddAdvancement(cid int, amount int) {
	c, ok := ctx.gs.cards[cid]
	if !ok {
		return
	}
	c.Advancement += amount
	if c.Advancement < 0 {
		c.Advancement = 0
	}
}

// Log appends a line to the shared game log on behalf of the acting side.
func (ctx *Context) Log(text string) {
	ctx.gs.appendLog(ctx.Card.Side, text)
}

// deriveLabel computes the menu label: the explicit label when present,
// otherwise the rendered message with its first letter capitalized, else
// empty.
func deriveLabel(ability Ability, message string) string {
	if ability.Label != "" {
		return ability.Label
	}
	if message == "" {
		return ""
	}
	runes := []rune(message)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// AttemptAbility runs the resolution protocol for one ability of one card.
// It returns OutcomeNotAvailable when the requirement fails or errors (no
// mutation, not fatal), OutcomePending when the ability suspended on a
// prompt, and OutcomeApplied when the effect ran to completion.
func (e *BreachEngine) AttemptAbility(gameID string, cid, abilityIndex int, targets ...int) (Outcome, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return OutcomeNotAvailable, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.resolution != nil {
		return OutcomeNotAvailable, fmt.Errorf("game %s already has a resolution awaiting a choice", gameID)
	}

	c, ok := gs.cards[cid]
	if !ok {
		return OutcomeNotAvailable, fmt.Errorf("card %d not found", cid)
	}
	script, ok := e.registry.Lookup(c.Title)
	if !ok || abilityIndex < 0 || abilityIndex >= len(script.Abilities) {
		return OutcomeNotAvailable, nil
	}
	ability := script.Abilities[abilityIndex]

	res := &resolution{
		id:      uuid.NewString(),
		cid:     cid,
		index:   abilityIndex,
		ability: ability,
		phase:   phaseIdle,
	}
	ctx := &Context{gs: gs, logger: e.logger, Card: c, Targets: targets}

	if ability.Requirement != nil {
		available, reqErr := ability.Requirement(ctx)
		if reqErr != nil {
			if e.logger != nil {
				e.logger.Debug("ability requirement errored, treated as unavailable",
					zap.String("game_id", gameID),
					zap.Int("cid", cid),
					zap.Int("ability_index", abilityIndex),
					zap.Error(reqErr),
				)
			}
			return OutcomeNotAvailable, nil
		}
		if !available {
			return OutcomeNotAvailable, nil
		}
	}
	res.phase = phaseRequirementChecked

	if ability.ChoiceSource != nil {
		choices := prompt.Cancellable(ability.ChoiceSource(ctx), ability.SortChoices)
		p := PendingPrompt{
			ID:      uuid.NewString(),
			Side:    c.Side,
			Text:    ability.PromptText,
			Choices: choices,
			At:      time.Now(),
		}
		res.phase = phaseAwaitingChoice
		res.promptID = p.ID
		gs.prompts = append(gs.prompts, p)
		gs.resolution = res

		if e.logger != nil {
			e.logger.Debug("resolution suspended on prompt",
				zap.String("game_id", gameID),
				zap.Int("cid", cid),
				zap.String("prompt_id", p.ID),
				zap.Int("choice_count", len(choices)),
			)
		}
		return OutcomePending, nil
	}

	return e.applyResolution(gs, res, ctx)
}

// ResumeChoice resumes the suspended resolution with the side's selection.
// Selecting the cancel sentinel discards the attempt with zero partial
// effects.
func (e *BreachEngine) ResumeChoice(gameID, promptID string, choiceIndex int) (Outcome, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return OutcomeNotAvailable, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	res := gs.resolution
	if res == nil || res.phase != phaseAwaitingChoice {
		return OutcomeNotAvailable, fmt.Errorf("game %s has no resolution awaiting a choice", gameID)
	}
	if res.promptID != promptID {
		return OutcomeNotAvailable, fmt.Errorf("prompt %s is not the outstanding prompt", promptID)
	}

	var pending *PendingPrompt
	for i := range gs.prompts {
		if gs.prompts[i].ID == promptID {
			pending = &gs.prompts[i]
			break
		}
	}
	if pending == nil {
		return OutcomeNotAvailable, fmt.Errorf("prompt %s not found", promptID)
	}
	if choiceIndex < 0 || choiceIndex >= len(pending.Choices) {
		return OutcomeNotAvailable, fmt.Errorf("choice index %d out of range", choiceIndex)
	}
	chosen := pending.Choices[choiceIndex]

	gs.removePrompt(promptID)
	gs.resolution = nil

	if chosen.Cancel {
		res.phase = phaseCancelled
		if e.logger != nil {
			e.logger.Debug("resolution cancelled",
				zap.String("game_id", gameID),
				zap.Int("cid", res.cid),
			)
		}
		return OutcomeCancelled, nil
	}

	c, ok := gs.cards[res.cid]
	if !ok {
		return OutcomeNotAvailable, fmt.Errorf("card %d no longer exists", res.cid)
	}
	ctx := &Context{gs: gs, logger: e.logger, Card: c, Choice: &chosen}
	return e.applyResolution(gs, res, ctx)
}

// CancelResolution discards the outstanding resolution, if any, with zero
// partial effects.
func (e *BreachEngine) CancelResolution(gameID string) (Outcome, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return OutcomeNotAvailable, err
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	res := gs.resolution
	if res == nil {
		return OutcomeNotAvailable, fmt.Errorf("game %s has no resolution in flight", gameID)
	}
	gs.removePrompt(res.promptID)
	gs.resolution = nil
	res.phase = phaseCancelled
	return OutcomeCancelled, nil
}

// applyResolution executes the effect step and appends the log entry
// derived from the rendered message. Callers hold the state mutex.
func (e *BreachEngine) applyResolution(gs *gameState, res *resolution, ctx *Context) (Outcome, error) {
	message := ""
	if res.ability.Message != nil {
		message = res.ability.Message(ctx)
	}
	label := deriveLabel(res.ability, message)

	if res.ability.Effect != nil {
		if err := res.ability.Effect(ctx); err != nil {
			if e.logger != nil {
				e.logger.Warn("ability effect failed",
					zap.String("game_id", gs.gameID),
					zap.Int("cid", res.cid),
					zap.Int("ability_index", res.index),
					zap.Error(err),
				)
			}
			return OutcomeNotAvailable, fmt.Errorf("effect failed: %w", err)
		}
	}
	res.phase = phaseApplied

	if message != "" {
		gs.appendLog(ctx.Card.Side, ctx.Card.Side.String()+" "+message)
	}

	if e.logger != nil {
		e.logger.Debug("ability applied",
			zap.String("game_id", gs.gameID),
			zap.Int("cid", res.cid),
			zap.Int("ability_index", res.index),
			zap.String("label", label),
		)
	}
	return OutcomeApplied, nil
}

// AbilityLabel renders the menu label of an ability without applying it.
// The message function is pure, so this commits nothing.
func (e *BreachEngine) AbilityLabel(gameID string, cid, abilityIndex int) (string, error) {
	gs, err := e.game(gameID)
	if err != nil {
		return "", err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	c, ok := gs.cards[cid]
	if !ok {
		return "", fmt.Errorf("card %d not found", cid)
	}
	script, ok := e.registry.Lookup(c.Title)
	if !ok || abilityIndex < 0 || abilityIndex >= len(script.Abilities) {
		return "", fmt.Errorf("card %q has no ability %d", c.Title, abilityIndex)
	}
	ability := script.Abilities[abilityIndex]

	message := ""
	if ability.Message != nil {
		message = ability.Message(&Context{gs: gs, logger: e.logger, Card: c})
	}
	return deriveLabel(ability, message), nil
}

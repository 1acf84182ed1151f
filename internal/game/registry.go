package game

import (
	"sync"

	"github.com/breachline/breach-server-go/internal/game/prompt"
)

// Ability is an immutable declarative descriptor supplied by the external
// card catalog. Requirement and Message must be pure; Effect is the only
// code path permitted to mutate shared game state.
type Ability struct {
	// Label is the explicit menu label. When empty, the label is derived
	// from the rendered message.
	Label string
	// PromptText is shown when the ability needs a choice.
	PromptText string
	// ChoiceSource produces the options offered to the acting side. A nil
	// ChoiceSource means the ability resolves without input.
	ChoiceSource func(ctx *Context) []prompt.Choice
	// SortChoices orders the offered options by display title.
	SortChoices bool
	// Requirement gates the ability. Returning false, or an error, means
	// the ability is not available; neither is fatal.
	Requirement func(ctx *Context) (bool, error)
	// Message renders the log/preview text. It may be invoked for preview
	// without committing any effect.
	Message func(ctx *Context) string
	// Effect applies the ability. It runs at most once per attempt.
	Effect func(ctx *Context) error
}

// CardScript is the declarative ability set of one card title.
type CardScript struct {
	Abilities []Ability
}

// Registry maps card titles to their immutable scripts. Dispatch is a
// registry lookup over the fixed descriptor shape, not dynamic code
// execution.
type Registry struct {
	mu      sync.RWMutex
	scripts map[string]CardScript
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scripts: make(map[string]CardScript),
	}
}

// Register installs the script for a card title, replacing any previous
// script for the same title.
func (r *Registry) Register(title string, script CardScript) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts[title] = script
}

// Lookup returns the script for a card title.
func (r *Registry) Lookup(title string) (CardScript, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	script, ok := r.scripts[title]
	return script, ok
}

// Titles returns the number of registered titles.
func (r *Registry) Titles() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scripts)
}

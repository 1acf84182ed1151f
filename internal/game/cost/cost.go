// Package cost implements normalization, merging, and rendering of ability
// costs, plus composition of the spend messages that appear in the game log.
//
// Costs arrive from card scripts as loose token sequences that may nest and
// may contain a single bare forfeit flag with no paired amount. Normalize is
// the only place that tolerates that shape; everything downstream works on
// tagged Entry values.
package cost

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a resource kind in a cost.
type Kind string

const (
	// KindCredit is the spendable currency resource.
	KindCredit Kind = "credit"
	// KindClick is the per-turn action resource.
	KindClick Kind = "click"
	// KindForfeit is the surrender of an owned scored agenda.
	KindForfeit Kind = "forfeit"
	// KindDamage is dealt as discrete instances and never merges.
	KindDamage Kind = "damage"
	// KindMill trashes cards from the top of the stack.
	KindMill Kind = "mill"
	// KindTag places a tag on the paying side.
	KindTag Kind = "tag"
	// KindShuffle shuffles cards from the heap into the stack.
	KindShuffle Kind = "shuffle-into-stack"
)

// Entry is a single tagged cost component. Amount defaults to 1 when a cost
// token arrives without one.
type Entry struct {
	Kind   Kind
	Amount int
}

// Token is one element of a raw cost sequence: a Kind, an amount, or a
// nested []Token group.
type Token any

// Flatten expands nested token groups into a single flat sequence.
func Flatten(raw []Token) []Token {
	flat := make([]Token, 0, len(raw))
	for _, tok := range raw {
		switch v := tok.(type) {
		case []Token:
			flat = append(flat, Flatten(v)...)
		case nil:
			// skip
		default:
			flat = append(flat, tok)
		}
	}
	return flat
}

// Normalize flattens raw cost tokens and resolves the bare-flag shape: an
// odd flat count means one kind token carries no paired amount, and that
// token is rewritten to an explicit (kind, 1) pair. Even-length input passes
// through unchanged.
//
// The parity rule is ingress-only compatibility with how card scripts state
// a bare forfeit; the tagged Entry model everywhere else does not need it.
func Normalize(raw []Token) []Token {
	flat := Flatten(raw)
	if len(flat)%2 == 0 {
		return flat
	}
	out := make([]Token, 0, len(flat)+1)
	inserted := false
	for i := 0; i < len(flat); i++ {
		out = append(out, flat[i])
		if inserted {
			continue
		}
		if _, isKind := flat[i].(Kind); !isKind {
			continue
		}
		// A kind token is bare when the next token is missing or is not an
		// amount.
		if i+1 >= len(flat) {
			out = append(out, 1)
			inserted = true
			continue
		}
		if _, ok := amount(flat[i+1]); !ok {
			out = append(out, 1)
			inserted = true
		}
	}
	return out
}

// amount coerces a token to an integer amount. Non-numeric tokens are an
// absent result, never an error.
func amount(tok Token) (int, bool) {
	switch v := tok.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Merge partitions an even-length flat token sequence into (kind, amount)
// pairs and merges them: amounts of non-damage pairs sharing a kind are
// summed into one entry in first-seen order; damage pairs stay unmerged,
// each its own entry, in original relative order after the merged entries.
// An empty sequence merges to an empty result.
func Merge(tokens []Token) []Entry {
	var merged []Entry
	var damage []Entry
	index := make(map[Kind]int)

	for i := 0; i+1 < len(tokens); i += 2 {
		kind, ok := tokens[i].(Kind)
		if !ok {
			continue
		}
		amt, ok := amount(tokens[i+1])
		if !ok {
			continue
		}
		if kind == KindDamage {
			damage = append(damage, Entry{Kind: kind, Amount: amt})
			continue
		}
		if at, seen := index[kind]; seen {
			merged[at].Amount += amt
			continue
		}
		index[kind] = len(merged)
		merged = append(merged, Entry{Kind: kind, Amount: amt})
	}

	return append(merged, damage...)
}

// pluralize appends the plural suffix unless the amount is singular. Both 1
// and -1 read as singular.
func pluralize(word string, amount int) string {
	if amount == 1 || amount == -1 {
		return word
	}
	return word + "s"
}

// Render renders a single cost entry for the game log. Non-positive amounts
// and unrecognized kinds yield ok=false and are dropped by callers.
func Render(kind Kind, amount int) (string, bool) {
	if amount <= 0 {
		return "", false
	}
	switch kind {
	case KindCredit:
		return fmt.Sprintf("%d [Credits]", amount), true
	case KindClick:
		return strings.TrimSpace(strings.Repeat("[Click] ", amount)), true
	case KindForfeit:
		return fmt.Sprintf("%d %s", amount, pluralize("Agenda", amount)), true
	}
	return "", false
}

// String renders every entry, drops the unrenderable ones, and joins the
// survivors with " and ".
func String(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if rendered, ok := Render(e.Kind, e.Amount); ok {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, " and ")
}

// SpendMessage composes the log sentence for paying a cost. A zero cost
// reads as the plain verb ("draws "); alternate, when given, replaces the
// suffixed verb in the zero-cost form.
func SpendMessage(costStr, verb, alternate string) string {
	if costStr == "" {
		if alternate != "" {
			return alternate + " "
		}
		return verb + "s "
	}
	return "spends " + costStr + " to " + verb + " "
}

// Symbolic renders an entry for interactive payment prompts, with kind-
// specific phrasing and pluralization. Unrecognized kinds fall back to
// "{amount}{kind}".
func Symbolic(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if rendered := symbolicEntry(e); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, " and ")
}

func symbolicEntry(e Entry) string {
	switch e.Kind {
	case KindCredit:
		return fmt.Sprintf("%d [Credits]", e.Amount)
	case KindClick:
		if e.Amount <= 0 {
			return ""
		}
		return strings.TrimSpace(strings.Repeat("[Click] ", e.Amount))
	case KindMill:
		return fmt.Sprintf("trash %d %s from the top of the stack",
			e.Amount, pluralize("card", e.Amount))
	case KindTag:
		return fmt.Sprintf("take %d %s", e.Amount, pluralize("tag", e.Amount))
	case KindShuffle:
		return fmt.Sprintf("shuffle %d %s into the stack",
			e.Amount, pluralize("card", e.Amount))
	}
	return fmt.Sprintf("%d%s", e.Amount, e.Kind)
}

// Package prompt builds the option lists presented to a side when an ability
// needs interactive input. Every prompt ends with a cancel sentinel so a side
// can always back out of an in-flight resolution.
package prompt

import "sort"

// CancelTitle is the display title of the cancel sentinel.
const CancelTitle = "Cancel"

// Choice is a single selectable option. Value carries whatever the ability
// effect needs to identify the selection (a cid, a zone key, a title).
type Choice struct {
	Title  string
	Value  any
	Cancel bool
}

// NewChoice builds a plain option with the given title.
func NewChoice(title string) Choice {
	return Choice{Title: title, Value: title}
}

// Cancellable returns the choice list with a terminal cancel sentinel
// appended. When sorted is true the choices are ordered by display title
// ascending, stable for ties; the sentinel is always last either way. The
// input slice is never mutated.
func Cancellable(choices []Choice, sorted bool) []Choice {
	out := make([]Choice, len(choices), len(choices)+1)
	copy(out, choices)
	if sorted {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	}
	return append(out, Choice{Title: CancelTitle, Cancel: true})
}

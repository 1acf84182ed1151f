package card

import "strings"

// SubtypeSeparator joins subtype tokens. Token order is significant.
const SubtypeSeparator = " - "

// SplitSubtypes splits a subtype string into its tokens. An empty string has
// no tokens.
func SplitSubtypes(subtype string) []string {
	if subtype == "" {
		return nil
	}
	return strings.Split(subtype, SubtypeSeparator)
}

// JoinSubtypes joins tokens back into a subtype string.
func JoinSubtypes(tokens []string) string {
	return strings.Join(tokens, SubtypeSeparator)
}

// CombineSubtypes appends newTokens to the existing subtype string. When
// distinct is true, duplicates are removed preserving first occurrence.
func CombineSubtypes(existing string, distinct bool, newTokens ...string) string {
	tokens := append(SplitSubtypes(existing), newTokens...)
	if distinct {
		seen := make(map[string]bool, len(tokens))
		deduped := tokens[:0]
		for _, tok := range tokens {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			deduped = append(deduped, tok)
		}
		tokens = deduped
	}
	return JoinSubtypes(tokens)
}

// RemoveSubtypes drops every token matching any entry in toRemove.
func RemoveSubtypes(existing string, toRemove ...string) string {
	drop := make(map[string]bool, len(toRemove))
	for _, tok := range toRemove {
		drop[tok] = true
	}
	var kept []string
	for _, tok := range SplitSubtypes(existing) {
		if !drop[tok] {
			kept = append(kept, tok)
		}
	}
	return JoinSubtypes(kept)
}

// RemoveSubtypesOnce removes at most one occurrence of each listed token,
// processing the removal list one token at a time and preserving the
// relative order of the remaining tokens.
func RemoveSubtypesOnce(existing string, toRemove ...string) string {
	tokens := SplitSubtypes(existing)
	for _, target := range toRemove {
		for i, tok := range tokens {
			if tok == target {
				tokens = append(tokens[:i], tokens[i+1:]...)
				break
			}
		}
	}
	return JoinSubtypes(tokens)
}

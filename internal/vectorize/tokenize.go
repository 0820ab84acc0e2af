// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorize

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text, splits on any non-alphanumeric rune, and
// drops stop words. Pass a nil stop set to keep every token.
func Tokenize(text string, stop map[string]struct{}) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if stop == nil {
		return fields
	}
	tokens := fields[:0]
	for _, tok := range fields {
		if _, skip := stop[tok]; skip {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenSet returns the distinct tokens of text as a set.
func TokenSet(text string, stop map[string]struct{}) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text, stop) {
		set[tok] = struct{}{}
	}
	return set
}

// DefaultStopWords returns the standard English stop-word set removed
// before weighting.
func DefaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// ActionVerbs returns the curated action-verb set used by the
// actionability signal. The list covers both British and American
// spellings.
func ActionVerbs() map[string]struct{} {
	verbs := []string{
		"build", "create", "design", "develop", "implement",
		"optimize", "optimise", "analyze", "analyse", "evaluate",
		"identify", "summarize", "summarise", "compare", "assess",
		"improve", "discover", "predict", "plan", "execute",
		"monitor", "measure",
	}
	m := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		m[v] = struct{}{}
	}
	return m
}

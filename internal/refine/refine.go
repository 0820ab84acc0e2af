// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refine selects the sentences of top-ranked sections that best
// match the persona/task query. Sentence boundaries are punctuation
// based and intentionally approximate: abbreviations such as "e.g." can
// produce false splits, decimal numbers cannot (a digit after the dot
// is not a boundary).
package refine

import (
	"sort"
	"strings"

	"github.com/pdiddy/insight-engine/internal/vectorize"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Defaults for excerpt synthesis.
const (
	DefaultTopK         = 5
	DefaultMaxSentences = 2
	DefaultMaxChars     = 400
)

// Options configures excerpt synthesis.
type Options struct {
	// MaxSentences is the number of best-matching sentences to keep
	// per excerpt.
	MaxSentences int

	// MaxChars caps the refined text length in runes.
	MaxChars int
}

func (o Options) withDefaults() Options {
	if o.MaxSentences <= 0 {
		o.MaxSentences = DefaultMaxSentences
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	return o
}

// SplitSentences splits text at '.', '!' or '?' followed by whitespace
// or end of text. Empty sentences are dropped; text without a terminal
// punctuation mark yields one trailing sentence.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
		default:
			continue
		}
		if i+1 < len(text) && !isSpace(text[i+1]) {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// SentenceScore counts the distinct query terms present in the
// sentence, case-insensitively.
func SentenceScore(sentence string, terms map[string]struct{}) int {
	shared := 0
	for tok := range vectorize.TokenSet(sentence, nil) {
		if _, ok := terms[tok]; ok {
			shared++
		}
	}
	return shared
}

// Synthesize builds one excerpt per ranked section, in the given rank
// order. The refined text is the highest-overlap sentences re-joined in
// their original order; score ties prefer the earlier sentence. A
// section with no sentences falls back to its title.
func Synthesize(ranked []types.ScoredSection, q vectorize.Query, opts Options) []types.Excerpt {
	opts = opts.withDefaults()

	excerpts := make([]types.Excerpt, 0, len(ranked))
	for _, sec := range ranked {
		excerpts = append(excerpts, types.Excerpt{
			DocumentID:   sec.DocumentID,
			Page:         sec.Page,
			Rank:         sec.Rank,
			SectionTitle: sec.Title,
			RefinedText:  refineText(sec, q.Terms, opts),
		})
	}
	return excerpts
}

func refineText(sec types.ScoredSection, terms map[string]struct{}, opts Options) string {
	sentences := SplitSentences(sec.Body)
	if len(sentences) == 0 {
		return sec.Title
	}

	// Order sentence indices by overlap score descending, position
	// ascending on ties, then restore document order among the keepers.
	byScore := make([]int, len(sentences))
	for i := range byScore {
		byScore[i] = i
	}
	scores := make([]int, len(sentences))
	for i, s := range sentences {
		scores[i] = SentenceScore(s, terms)
	}
	sort.SliceStable(byScore, func(a, b int) bool {
		return scores[byScore[a]] > scores[byScore[b]]
	})

	keep := byScore
	if len(keep) > opts.MaxSentences {
		keep = keep[:opts.MaxSentences]
	}
	selected := append([]int(nil), keep...)
	sort.Ints(selected)

	var parts []string
	for _, idx := range selected {
		parts = append(parts, sentences[idx])
	}
	return truncate(strings.Join(parts, " "), opts.MaxChars)
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}

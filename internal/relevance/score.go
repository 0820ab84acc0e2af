// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores sections against the persona/task query and
// ranks them across the whole document set. The composite score is a
// fixed linear model over four independent signals.
package relevance

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/insight-engine/internal/vectorize"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Signal weights for the composite relevance score. The composite is a
// plain weighted sum with no renormalization, so it is monotonic in
// each signal but not forced into [0,1].
const (
	WeightSemantic      = 0.40
	WeightPersona       = 0.25
	WeightActionability = 0.20
	WeightCrossDocument = 0.15
)

// Composite combines the four signals with the fixed weights.
func Composite(s types.Signals) float64 {
	return WeightSemantic*s.Semantic +
		WeightPersona*s.Persona +
		WeightActionability*s.Actionability +
		WeightCrossDocument*s.CrossDocument
}

// PersonaMatch returns the fraction of persona keywords present in the
// section's token set: 0 when either set is empty.
func PersonaMatch(sectionTokens, personaKeywords map[string]struct{}) float64 {
	if len(personaKeywords) == 0 || len(sectionTokens) == 0 {
		return 0
	}
	matched := 0
	for kw := range personaKeywords {
		if _, ok := sectionTokens[kw]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(personaKeywords))
}

// Actionability returns action-verb occurrences normalized by the
// section's token count.
func Actionability(tokens []string, verbs map[string]struct{}) float64 {
	if len(tokens) == 0 {
		return 0
	}
	occurrences := 0
	for _, tok := range tokens {
		if _, ok := verbs[tok]; ok {
			occurrences++
		}
	}
	return float64(occurrences) / float64(len(tokens))
}

// enumPrefix strips leading enumeration such as "1. " or "2.1 " from a
// title before cross-document comparison, so "1. Introduction" and
// "INTRODUCTION" normalize to the same key.
var enumPrefix = regexp.MustCompile(`^(\d+\.(\d+\.?)*|[A-Z]\.)\s+`)

// NormalizeTitle returns a lowercased, punctuation-stripped title with
// any enumeration prefix removed and whitespace collapsed.
func NormalizeTitle(title string) string {
	title = enumPrefix.ReplaceAllString(strings.TrimSpace(title), "")
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleIndex records which distinct documents contain each normalized
// section title. Built once per run and read-only afterwards.
type TitleIndex struct {
	docs      map[string]map[string]struct{} // normalized title -> document IDs
	totalDocs int
}

// NewTitleIndex indexes the normalized titles of all sections.
func NewTitleIndex(sections []types.Section) *TitleIndex {
	ti := &TitleIndex{docs: make(map[string]map[string]struct{})}
	distinct := make(map[string]struct{})

	for _, sec := range sections {
		distinct[sec.DocumentID] = struct{}{}
		key := NormalizeTitle(sec.Title)
		if key == "" {
			continue
		}
		if ti.docs[key] == nil {
			ti.docs[key] = make(map[string]struct{})
		}
		ti.docs[key][sec.DocumentID] = struct{}{}
	}

	ti.totalDocs = len(distinct)
	return ti
}

// Bonus returns the cross-document importance of a title: a title
// found in d of D documents scores (d-1)/(D-1), so titles unique to
// one document score 0 and titles recurring in every document score 1.
// Single-document runs always score 0.
func (ti *TitleIndex) Bonus(title string) float64 {
	if ti.totalDocs <= 1 {
		return 0
	}
	d := len(ti.docs[NormalizeTitle(title)])
	if d <= 1 {
		return 0
	}
	return float64(d-1) / float64(ti.totalDocs-1)
}

// ScoreSections computes the four signals and the composite score for
// every section in the corpus. Sections are returned in corpus order;
// ranking is a separate step.
func ScoreSections(c *vectorize.Corpus, q vectorize.Query) []types.ScoredSection {
	ti := NewTitleIndex(c.Sections)

	scored := make([]types.ScoredSection, len(c.Sections))
	for i, sec := range c.Sections {
		signals := types.Signals{
			Semantic:      c.Vectors[i].Cosine(q.Vector),
			Persona:       PersonaMatch(c.TokenSet(i), q.PersonaKeywords),
			Actionability: Actionability(c.Tokens[i], q.ActionVerbs),
			CrossDocument: ti.Bonus(sec.Title),
		}
		scored[i] = types.ScoredSection{
			Section: sec,
			Signals: signals,
			Score:   Composite(signals),
		}
	}
	return scored
}

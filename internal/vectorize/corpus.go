// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorize builds the run-scoped vocabulary and sparse
// TF-IDF term-weight vectors shared by the scorer and the excerpt
// synthesizer.
package vectorize

import (
	"math"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// Vector is a sparse term-weight vector: vocabulary term to weight.
type Vector map[string]float64

// Cosine returns the cosine similarity between v and other. Either
// vector being all-zero (or empty) yields exactly 0.
func (v Vector) Cosine(other Vector) float64 {
	small, large := v, other
	if len(large) < len(small) {
		small, large = large, small
	}

	var dot float64
	for term, w := range small {
		dot += w * large[term]
	}

	var normV, normOther float64
	for _, w := range v {
		normV += w * w
	}
	for _, w := range other {
		normOther += w * w
	}
	if normV == 0 || normOther == 0 {
		return 0
	}
	return dot / (math.Sqrt(normV) * math.Sqrt(normOther))
}

// Corpus is the run-scoped feature model: the segmented sections, their
// token lists and term-weight vectors, and the shared IDF table. Built
// once after the per-document segmentation barrier and treated as
// read-only afterwards.
type Corpus struct {
	// Sections are all sections of all documents, in ingestion order.
	Sections []types.Section

	// Tokens holds the token list of each section (title plus body),
	// parallel to Sections. An empty-body section is represented by
	// its title tokens so it can still be scored.
	Tokens [][]string

	// Vectors holds the TF-IDF vector of each section, parallel to
	// Sections.
	Vectors []Vector

	// IDF maps every vocabulary term to log(N / (1 + df)), N being the
	// section count and df the number of sections containing the term.
	IDF map[string]float64

	stop map[string]struct{}
}

// BuildCorpus tokenizes all sections, derives the vocabulary and IDF
// table, and computes one sparse vector per section. Pass nil stop to
// use DefaultStopWords.
func BuildCorpus(sections []types.Section, stop map[string]struct{}) *Corpus {
	if stop == nil {
		stop = DefaultStopWords()
	}

	c := &Corpus{
		Sections: sections,
		Tokens:   make([][]string, len(sections)),
		Vectors:  make([]Vector, len(sections)),
		IDF:      make(map[string]float64),
		stop:     stop,
	}

	df := make(map[string]int)
	for i, sec := range sections {
		c.Tokens[i] = Tokenize(sec.Title+" "+sec.Body, stop)
		seen := make(map[string]struct{}, len(c.Tokens[i]))
		for _, tok := range c.Tokens[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := float64(len(sections))
	for term, count := range df {
		c.IDF[term] = math.Log(n / float64(1+count))
	}

	for i := range sections {
		c.Vectors[i] = c.vectorOf(c.Tokens[i])
	}
	return c
}

// vectorOf weights tokens by tf * idf, tf being the raw count
// normalized by token count. Terms outside the corpus vocabulary
// contribute nothing.
func (c *Corpus) vectorOf(tokens []string) Vector {
	if len(tokens) == 0 {
		return Vector{}
	}
	counts := make(map[string]int)
	for _, tok := range tokens {
		if _, known := c.IDF[tok]; known {
			counts[tok]++
		}
	}
	vec := make(Vector, len(counts))
	total := float64(len(tokens))
	for term, count := range counts {
		vec[term] = float64(count) / total * c.IDF[term]
	}
	return vec
}

// TokenSet returns the distinct tokens of section i.
func (c *Corpus) TokenSet(i int) map[string]struct{} {
	set := make(map[string]struct{}, len(c.Tokens[i]))
	for _, tok := range c.Tokens[i] {
		set[tok] = struct{}{}
	}
	return set
}

// Query is the run-scoped representation of the persona and
// job-to-be-done: a term-weight vector over the corpus vocabulary plus
// the keyword sets used by the scorer and excerpt synthesizer.
// Immutable for the run.
type Query struct {
	// Vector weighs the persona/task text with the corpus IDF table.
	// Terms unseen in the corpus carry zero weight.
	Vector Vector

	// PersonaKeywords are the distinct tokens of the persona role and
	// description.
	PersonaKeywords map[string]struct{}

	// ActionVerbs is the curated action-verb set.
	ActionVerbs map[string]struct{}

	// Terms is the union of persona keywords and task tokens, used
	// for sentence overlap scoring.
	Terms map[string]struct{}
}

// BuildQuery derives the query from the persona and job descriptors
// using the corpus vocabulary and IDF table.
func (c *Corpus) BuildQuery(p types.Persona, j types.Job) Query {
	personaText := p.Role + " " + p.Description
	full := personaText + " " + j.Task

	q := Query{
		Vector:          c.vectorOf(Tokenize(full, c.stop)),
		PersonaKeywords: TokenSet(personaText, c.stop),
		ActionVerbs:     ActionVerbs(),
		Terms:           TokenSet(full, c.stop),
	}
	return q
}

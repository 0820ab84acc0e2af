// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is one source PDF after text extraction: an identifier
// (the filename), an optional title, and the plain text of each page in
// physical order. Documents are immutable once extracted.
type Document struct {
	// ID identifies the document within a run (the source filename).
	ID string `json:"id" yaml:"id"`

	// Title is an optional human-readable title from the input spec.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Pages holds the extracted plain text of each page, 0-indexed
	// (page number = index + 1). A failed extraction leaves Pages nil
	// so the document contributes zero sections.
	Pages []string `json:"-" yaml:"-"`
}

// Section is a titled, page-scoped span of document text: the unit of
// relevance scoring. Sections are created by the segmenter and never
// mutated afterwards; scoring wraps them in a ScoredSection instead.
type Section struct {
	// DocumentID names the owning document.
	DocumentID string `json:"document" yaml:"document"`

	// Title is the detected heading line, or "Page N" when no heading
	// was found above this section's text.
	Title string `json:"section_title" yaml:"section_title"`

	// Body is the section text with lines joined by single spaces.
	// Empty when two heading lines are adjacent.
	Body string `json:"text,omitempty" yaml:"text,omitempty"`

	// Page is the 1-indexed physical page the section starts on.
	Page int `json:"page_number" yaml:"page_number"`

	// Ordinal is the section's position within its document, starting
	// at 0. Used as the primary rank tie-break.
	Ordinal int `json:"-" yaml:"-"`
}

// Signals holds the four independent relevance signals before weighting.
type Signals struct {
	// Semantic is the cosine similarity between the section and query
	// term-weight vectors.
	Semantic float64 `json:"semantic" yaml:"semantic"`

	// Persona is the fraction of persona keywords present in the
	// section's token set.
	Persona float64 `json:"persona" yaml:"persona"`

	// Actionability is the action-verb occurrence count normalized by
	// section word count.
	Actionability float64 `json:"actionability" yaml:"actionability"`

	// CrossDocument is the recurring-title bonus: how widely this
	// section's normalized title recurs across the document set.
	CrossDocument float64 `json:"cross_document" yaml:"cross_document"`
}

// ScoredSection is a Section with its composite relevance score, the
// per-signal breakdown, and (after ranking) a corpus-wide importance
// rank starting at 1.
type ScoredSection struct {
	Section `yaml:",inline"`

	// Score is the weighted sum of the four signals. Monotonic for
	// ranking; not normalized to [0,1].
	Score float64 `json:"score" yaml:"score"`

	// Signals is the unweighted per-signal breakdown.
	Signals Signals `json:"signals" yaml:"signals"`

	// Rank is the dense 1-based importance rank across all sections of
	// all documents in the run. Zero before ranking.
	Rank int `json:"importance_rank" yaml:"importance_rank"`
}

// Excerpt is the refined extract of a top-ranked section: the sentences
// that best match the persona/task query.
type Excerpt struct {
	// DocumentID names the source document.
	DocumentID string `json:"document" yaml:"document"`

	// Page is the source section's starting page.
	Page int `json:"page_number" yaml:"page_number"`

	// Rank is the source section's importance rank.
	Rank int `json:"importance_rank" yaml:"importance_rank"`

	// SectionTitle is the source section's title.
	SectionTitle string `json:"section_title" yaml:"section_title"`

	// RefinedText is the selected sentence(s), or the section title
	// when the section body has no sentences.
	RefinedText string `json:"refined_text" yaml:"refined_text"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full analysis for one document set:
// extraction, segmentation, vectorization, scoring, ranking, and
// excerpt refinement. Each stage is a pure transformation of the
// previous stage's output plus the persona/task query.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/insight-engine/internal/extract"
	"github.com/pdiddy/insight-engine/internal/persona"
	"github.com/pdiddy/insight-engine/internal/refine"
	"github.com/pdiddy/insight-engine/internal/relevance"
	"github.com/pdiddy/insight-engine/internal/segment"
	"github.com/pdiddy/insight-engine/internal/vectorize"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// ErrEmptyCorpus reports that no sections survived extraction and
// segmentation. Ranking an empty corpus is meaningless, so the run
// fails loudly instead of returning an empty result.
var ErrEmptyCorpus = errors.New("empty corpus")

// Result is the complete outcome of one run, handed to the output
// collaborators (report, store). The pipeline itself performs no
// serialization.
type Result struct {
	// Persona and Job are the effective descriptors, after optional
	// auto-detection.
	Persona types.Persona
	Job     types.Job

	// Documents lists every input document in ingestion order,
	// including failed ones (with nil pages).
	Documents []types.Document

	// Ranked holds all scored sections in rank order, ranks 1..N.
	Ranked []types.ScoredSection

	// Top holds the first TopK ranked sections.
	Top []types.ScoredSection

	// Excerpts holds one refined excerpt per top section, in rank
	// order.
	Excerpts []types.Excerpt

	// Extraction summarizes per-document extraction outcomes.
	Extraction extract.BatchSummary
}

// Run executes the pipeline: documents are extracted and segmented in
// parallel (they are independent and written into per-document slots),
// then the corpus-wide vocabulary forms the synchronization barrier
// before scoring and ranking. Per-document failures are isolated;
// ErrEmptyCorpus and persona.ErrMalformedQuery abort the run.
func Run(ex extract.Extractor, docsDir string, docs []types.InputDocument, p types.Persona, j types.Job, cfg types.AnalyzeConfig, w io.Writer) (*Result, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no input documents", ErrEmptyCorpus)
	}

	// Without auto-detection the query can be rejected before any
	// extraction work is spent.
	if !cfg.AutoPersona {
		if err := persona.Validate(p, j); err != nil {
			return nil, err
		}
	}

	extracted, summary := extract.ExtractBatch(ex, docsDir, docs, w)

	perDoc := make([][]types.Section, len(extracted))
	var wg sync.WaitGroup
	for i := range extracted {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			perDoc[i] = segment.SegmentDocument(extracted[i])
		}(i)
	}
	wg.Wait()

	var sections []types.Section
	docOrder := make([]string, len(extracted))
	for i, doc := range extracted {
		docOrder[i] = doc.ID
		sections = append(sections, perDoc[i]...)
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections in %d document(s)", ErrEmptyCorpus, len(docs))
	}

	if cfg.AutoPersona {
		p, j = persona.Fill(p, j, corpusText(sections))
	}
	if err := persona.Validate(p, j); err != nil {
		return nil, err
	}

	corpus := vectorize.BuildCorpus(sections, nil)
	query := corpus.BuildQuery(p, j)

	ranked := relevance.Rank(relevance.ScoreSections(corpus, query), docOrder)

	topK := cfg.TopK
	if topK <= 0 {
		topK = refine.DefaultTopK
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	top := ranked[:topK]

	excerpts := refine.Synthesize(top, query, refine.Options{
		MaxSentences: cfg.MaxSentences,
		MaxChars:     cfg.MaxExcerptChars,
	})

	return &Result{
		Persona:    p,
		Job:        j,
		Documents:  extracted,
		Ranked:     ranked,
		Top:        top,
		Excerpts:   excerpts,
		Extraction: summary,
	}, nil
}

func corpusText(sections []types.Section) string {
	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(sec.Title)
		b.WriteByte(' ')
		b.WriteString(sec.Body)
		b.WriteByte(' ')
	}
	return b.String()
}

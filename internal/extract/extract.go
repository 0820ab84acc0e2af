// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts PDF documents into ordered per-page plain
// text. Extraction backends are pluggable: an in-process library, the
// poppler command-line tools, or a poppler container image.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/pdiddy/insight-engine/internal/container"
	"github.com/pdiddy/insight-engine/pkg/types"
)

// Extractor converts one PDF into per-page plain text. Page order must
// match the physical page order of the source file; an unreadable page
// yields an empty string in its slot so numbering stays aligned.
type Extractor interface {
	Pages(path string) ([]string, error)
}

// NewExtractor builds the Extractor selected by cfg.Backend.
func NewExtractor(cfg types.ExtractConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return &NativeExtractor{}, nil
	case types.BackendPoppler:
		return &PopplerExtractor{}, nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainerExtractor(rt)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q: use native, poppler, or container", cfg.Backend)
	}
}

// ExtractionError reports that one document could not be extracted.
// The document is excluded from the run; the run itself continues.
type ExtractionError struct {
	DocumentID string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.DocumentID, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	Failed    int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int { return s.Extracted + s.Failed }

// HasFailures reports whether any documents failed extraction.
func (s BatchSummary) HasFailures() bool { return s.Failed > 0 }

// ExtractBatch extracts every named document under docsDir, one
// goroutine per document writing into its own indexed slot. Documents
// are independent and read-only after extraction, so no locking is
// needed. A failed document keeps its slot with nil pages and
// contributes zero sections downstream. Per-document status lines are
// written to w.
func ExtractBatch(ex Extractor, docsDir string, docs []types.InputDocument, w io.Writer) ([]types.Document, BatchSummary) {
	out := make([]types.Document, len(docs))
	errs := make([]error, len(docs))

	var wg sync.WaitGroup
	for i, d := range docs {
		out[i] = types.Document{ID: d.Filename, Title: d.Title}

		wg.Add(1)
		go func(i int, filename string) {
			defer wg.Done()
			pages, err := ex.Pages(filepath.Join(docsDir, filename))
			if err != nil {
				errs[i] = &ExtractionError{DocumentID: filename, Err: err}
				return
			}
			out[i].Pages = pages
		}(i, d.Filename)
	}
	wg.Wait()

	var summary BatchSummary
	for i := range out {
		if errs[i] != nil {
			fmt.Fprintf(w, "failed    %s: %v\n", out[i].ID, errs[i])
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "extracted %s (%d pages)\n", out[i].ID, len(out[i].Pages))
		summary.Extracted++
	}

	return out, summary
}

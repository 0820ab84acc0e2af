// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// fakeExtractor serves canned pages keyed by path basename.
type fakeExtractor struct {
	pages map[string][]string
	errs  map[string]error
}

func (f *fakeExtractor) Pages(path string) ([]string, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	pages, ok := f.pages[name]
	if !ok {
		return nil, errors.New("no fixture for " + name)
	}
	return pages, nil
}

func docs(names ...string) []types.InputDocument {
	out := make([]types.InputDocument, len(names))
	for i, n := range names {
		out[i] = types.InputDocument{Filename: n}
	}
	return out
}

var (
	testPersona = types.Persona{Role: "Software Architect", Description: "designs distributed systems"}
	testJob     = types.Job{Task: "design and build a resilient storage architecture"}
)

func twoDocExtractor() *fakeExtractor {
	return &fakeExtractor{pages: map[string][]string{
		"a.pdf": {
			"1. Introduction\nThis report covers storage systems in depth. It surveys recent designs.",
			"2. Architecture\nWe design and build a layered storage architecture. Replication handles failures.",
		},
		"b.pdf": {
			"INTRODUCTION\nAnother look at distributed storage. Consistency is discussed.",
		},
	}}
}

func TestRunProducesDenseRanks(t *testing.T) {
	res, err := Run(twoDocExtractor(), "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, types.AnalyzeConfig{}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(res.Ranked)
	if n == 0 {
		t.Fatal("expected ranked sections")
	}
	seen := make(map[int]bool)
	for _, s := range res.Ranked {
		if s.Rank < 1 || s.Rank > n || seen[s.Rank] {
			t.Fatalf("ranks are not a dense permutation of 1..%d", n)
		}
		seen[s.Rank] = true
	}
	for i, s := range res.Ranked {
		if s.Rank != i+1 {
			t.Errorf("ranked[%d].Rank = %d, want %d", i, s.Rank, i+1)
		}
	}
}

func TestRunCrossDocumentBonusOnMatchingTitles(t *testing.T) {
	res, err := Run(twoDocExtractor(), "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, types.AnalyzeConfig{}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bonuses []float64
	for _, s := range res.Ranked {
		if strings.Contains(strings.ToLower(s.Title), "introduction") {
			bonuses = append(bonuses, s.Signals.CrossDocument)
		}
	}
	if len(bonuses) != 2 {
		t.Fatalf("expected 2 introduction sections, got %d", len(bonuses))
	}
	for i, b := range bonuses {
		if b <= 0 {
			t.Errorf("introduction section %d cross-document bonus = %g, want > 0", i, b)
		}
	}
}

func TestRunTopKBoundsExcerpts(t *testing.T) {
	res, err := Run(twoDocExtractor(), "docs", docs("a.pdf", "b.pdf"), testPersona, testJob,
		types.AnalyzeConfig{TopK: 2}, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Excerpts) != 2 {
		t.Fatalf("got %d excerpts, want exactly 2", len(res.Excerpts))
	}
	if res.Excerpts[0].Rank != 1 || res.Excerpts[1].Rank != 2 {
		t.Errorf("excerpts out of rank order: %d then %d", res.Excerpts[0].Rank, res.Excerpts[1].Rank)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := types.AnalyzeConfig{TopK: 3}

	first, err := Run(twoDocExtractor(), "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, cfg, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Run(twoDocExtractor(), "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, cfg, os.Stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Ranked, second.Ranked) {
		t.Error("ranked output differs between identical runs")
	}
	if !reflect.DeepEqual(first.Excerpts, second.Excerpts) {
		t.Error("excerpts differ between identical runs")
	}
}

func TestRunIsolatesFailedDocument(t *testing.T) {
	ex := twoDocExtractor()
	ex.errs = map[string]error{"b.pdf": errors.New("corrupt file")}

	var buf strings.Builder
	res, err := Run(ex, "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, types.AnalyzeConfig{}, &buf)
	if err != nil {
		t.Fatalf("one bad document must not abort the run: %v", err)
	}
	if res.Extraction.Failed != 1 {
		t.Errorf("extraction summary = %+v, want 1 failure", res.Extraction)
	}
	for _, s := range res.Ranked {
		if s.DocumentID == "b.pdf" {
			t.Error("failed document must contribute zero sections")
		}
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	ex := &fakeExtractor{errs: map[string]error{
		"a.pdf": errors.New("unreadable"),
		"b.pdf": errors.New("unreadable"),
	}}

	var buf strings.Builder
	_, err := Run(ex, "docs", docs("a.pdf", "b.pdf"), testPersona, testJob, types.AnalyzeConfig{}, &buf)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("got %v, want ErrEmptyCorpus", err)
	}

	_, err = Run(ex, "docs", nil, testPersona, testJob, types.AnalyzeConfig{}, &buf)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("no documents: got %v, want ErrEmptyCorpus", err)
	}
}

func TestRunRejectsMalformedQuery(t *testing.T) {
	var buf strings.Builder
	_, err := Run(twoDocExtractor(), "docs", docs("a.pdf"), types.Persona{}, testJob, types.AnalyzeConfig{}, &buf)
	if err == nil {
		t.Fatal("missing persona must fail before scoring")
	}
	if buf.Len() != 0 {
		t.Error("validation failure should precede extraction")
	}
}

func TestRunAutoPersonaFillsMissingFields(t *testing.T) {
	ex := &fakeExtractor{pages: map[string][]string{
		"a.pdf": {"1. Survey\nThis literature review summarizes research on consensus protocols. It compares published designs."},
	}}

	var buf strings.Builder
	res, err := Run(ex, "docs", docs("a.pdf"), types.Persona{}, types.Job{},
		types.AnalyzeConfig{AutoPersona: true}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Persona.Role != "Researcher" {
		t.Errorf("detected role = %q, want Researcher", res.Persona.Role)
	}
	if res.Job.Task == "" {
		t.Error("detected job task should be filled")
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "run.json")
	jsonSpec := `{
		"documents": [{"filename": "a.pdf"}, {"filename": "b.pdf", "title": "Second"}],
		"persona": {"role": "Travel Planner"},
		"job_to_be_done": {"task": "plan a trip"}
	}`
	if err := os.WriteFile(jsonPath, []byte(jsonSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	input, err := LoadInput(jsonPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(input.Documents) != 2 || input.Documents[1].Title != "Second" {
		t.Errorf("documents parsed wrong: %+v", input.Documents)
	}
	if input.Persona.Role != "Travel Planner" || input.Job.Task != "plan a trip" {
		t.Errorf("descriptors parsed wrong: %+v %+v", input.Persona, input.Job)
	}

	yamlPath := filepath.Join(dir, "run.yaml")
	yamlSpec := "documents:\n  - filename: a.pdf\npersona:\n  role: Student\njob_to_be_done:\n  task: study\n"
	if err := os.WriteFile(yamlPath, []byte(yamlSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	input, err = LoadInput(yamlPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Persona.Role != "Student" {
		t.Errorf("yaml persona = %q", input.Persona.Role)
	}

	if _, err := LoadInput(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	badPath := filepath.Join(dir, "run.txt")
	os.WriteFile(badPath, []byte("x"), 0o644)
	if _, err := LoadInput(badPath); err == nil {
		t.Error("unsupported extension should error")
	}

	emptyPath := filepath.Join(dir, "empty.json")
	os.WriteFile(emptyPath, []byte(`{"documents": []}`), 0o644)
	if _, err := LoadInput(emptyPath); err == nil {
		t.Error("input without documents should error")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorize

import (
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const tolerance = 1e-9

func section(doc, title, body string) types.Section {
	return types.Section{DocumentID: doc, Title: title, Body: body}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Hello, World! It's 2026.", nil)
	want := []string{"hello", "world", "it", "s", "2026"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeDropsStopWords(t *testing.T) {
	got := Tokenize("the design of the system", DefaultStopWords())
	want := []string{"design", "system"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestIDFFormula(t *testing.T) {
	sections := []types.Section{
		section("a.pdf", "Alpha", "shared term here"),
		section("a.pdf", "Beta", "shared again"),
		section("b.pdf", "Gamma", "unique content"),
	}
	c := BuildCorpus(sections, map[string]struct{}{})

	// "shared" appears in 2 of 3 sections: idf = log(3 / (1 + 2)) = 0.
	if got := c.IDF["shared"]; math.Abs(got) > tolerance {
		t.Errorf("idf(shared) = %g, want 0", got)
	}
	// "unique" appears in 1 of 3: idf = log(3/2).
	if got, want := c.IDF["unique"], math.Log(1.5); math.Abs(got-want) > tolerance {
		t.Errorf("idf(unique) = %g, want %g", got, want)
	}
}

func TestSectionVectorUsesNormalizedTF(t *testing.T) {
	sections := []types.Section{
		section("a.pdf", "Alpha", "term term filler"),
		section("a.pdf", "Beta", "different words entirely"),
		section("b.pdf", "Gamma", "yet more distinct content"),
	}
	c := BuildCorpus(sections, map[string]struct{}{})

	// Section 0 tokens: alpha, term, term, filler. tf(term) = 2/4 and
	// df(term) = 1 of 3 sections, so idf = log(3/2) > 0.
	want := 0.5 * math.Log(1.5)
	if got := c.Vectors[0]["term"]; math.Abs(got-want) > tolerance {
		t.Errorf("weight(term) = %g, want %g", got, want)
	}
}

func TestEmptyBodySectionScoredOnTitle(t *testing.T) {
	sections := []types.Section{
		section("a.pdf", "Architecture", ""),
		section("a.pdf", "Other", "architecture discussion body"),
	}
	c := BuildCorpus(sections, map[string]struct{}{})

	if len(c.Tokens[0]) == 0 {
		t.Fatal("empty-body section should still carry its title tokens")
	}
	if c.Vectors[0]["architecture"] == 0 && c.IDF["architecture"] != 0 {
		t.Error("title term should be weighted in the section vector")
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	v := Vector{"alpha": 0.4, "beta": 1.2, "gamma": 0.01}
	if got := v.Cosine(v); math.Abs(got-1.0) > tolerance {
		t.Errorf("self similarity = %g, want 1.0", got)
	}
}

func TestCosineZeroVector(t *testing.T) {
	v := Vector{"alpha": 0.4}
	zero := Vector{}
	if got := v.Cosine(zero); got != 0 {
		t.Errorf("similarity with empty vector = %g, want exactly 0", got)
	}
	allZero := Vector{"alpha": 0}
	if got := v.Cosine(allZero); got != 0 {
		t.Errorf("similarity with all-zero vector = %g, want exactly 0", got)
	}
}

func TestCosineOrthogonal(t *testing.T) {
	a := Vector{"alpha": 1}
	b := Vector{"beta": 1}
	if got := a.Cosine(b); got != 0 {
		t.Errorf("orthogonal similarity = %g, want 0", got)
	}
}

func TestQueryVectorIgnoresUnseenTerms(t *testing.T) {
	sections := []types.Section{
		section("a.pdf", "Methods", "experiment setup details"),
		section("a.pdf", "Results", "numbers and tables"),
	}
	c := BuildCorpus(sections, map[string]struct{}{})

	q := c.BuildQuery(
		types.Persona{Role: "zoologist"},
		types.Job{Task: "study the experiment"},
	)
	if _, ok := q.Vector["zoologist"]; ok {
		t.Error("term unseen in the corpus must contribute zero weight")
	}
	if _, ok := q.Vector["experiment"]; !ok {
		t.Error("corpus term from the task should be weighted")
	}
}

func TestQueryKeywordSets(t *testing.T) {
	sections := []types.Section{section("a.pdf", "Intro", "travel planning text")}
	c := BuildCorpus(sections, nil)

	q := c.BuildQuery(
		types.Persona{Role: "Travel Planner", Description: "organizes trips"},
		types.Job{Task: "plan a four day trip"},
	)

	for _, kw := range []string{"travel", "planner", "organizes", "trips"} {
		if _, ok := q.PersonaKeywords[kw]; !ok {
			t.Errorf("persona keywords missing %q", kw)
		}
	}
	if _, ok := q.PersonaKeywords["trip"]; ok {
		t.Error("task-only token should not be a persona keyword")
	}
	if _, ok := q.Terms["trip"]; !ok {
		t.Error("overlap terms should include task tokens")
	}
	if _, ok := q.ActionVerbs["build"]; !ok {
		t.Error("action verb set should contain the curated verbs")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits extracted page text into titled sections.
// Heading detection is plain string pattern matching: a small ordered
// set of predicates, not a grammar.
package segment

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/insight-engine/pkg/types"
)

const (
	// maxHeadingChars and maxHeadingWords bound heading candidates:
	// anything longer is body text regardless of shape.
	maxHeadingChars = 100
	maxHeadingWords = 15

	// minCapitalizedRatio is the fraction of words that must start
	// with an upper-case letter or digit for a line to count as
	// title-cased.
	minCapitalizedRatio = 0.6
)

// enumPattern matches enumeration prefixes such as "1. ", "2.1 ",
// "3.2.1 " or "A. " followed by text. A dot is required after the first
// number so that prose like "1 in 10" is not mistaken for a heading.
var enumPattern = regexp.MustCompile(`^(\d+\.(\d+\.?)*|[A-Z]\.)\s+\S`)

// withinHeadingBudget reports whether the line is short enough to be a
// heading candidate at all.
func withinHeadingBudget(line string) bool {
	return len(line) <= maxHeadingChars && len(strings.Fields(line)) <= maxHeadingWords
}

// isEnumerated reports whether the line starts with an enumeration
// prefix.
func isEnumerated(line string) bool {
	return enumPattern.MatchString(line)
}

// isTitleCased reports whether enough words start with an upper-case
// letter or digit.
func isTitleCased(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	return float64(capitalized)/float64(len(words)) >= minCapitalizedRatio
}

// isAllUpper reports whether every letter in the line is upper-case.
// Lines without letters do not qualify.
func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

// IsHeading applies the heading predicates in order: the line must fit
// the length budgets, then qualify by enumeration prefix, title casing,
// or full upper case.
func IsHeading(line string) bool {
	text := strings.TrimSpace(line)
	if text == "" {
		return false
	}
	if !withinHeadingBudget(text) {
		return false
	}
	return isEnumerated(text) || isTitleCased(text) || isAllUpper(text)
}

// pageTitle is the synthetic title for text with no heading above it.
func pageTitle(page int) string {
	return fmt.Sprintf("Page %d", page)
}

// SegmentPage splits one page's text into sections. Each detected
// heading opens a new section; following non-heading lines accumulate
// into its body. Body text above the first heading attaches to a
// synthetic "Page N" section, and a page with no headings at all
// becomes a single "Page N" section. Consecutive heading lines emit
// empty-body sections. A blank page yields no sections. Ordinals are
// assigned starting at startOrdinal.
func SegmentPage(docID string, page int, text string, startOrdinal int) []types.Section {
	var sections []types.Section
	var current *types.Section
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.Join(body, " ")
		current.Ordinal = startOrdinal + len(sections)
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsHeading(line) {
			flush()
			current = &types.Section{DocumentID: docID, Title: line, Page: page}
			continue
		}
		if current == nil {
			current = &types.Section{DocumentID: docID, Title: pageTitle(page), Page: page}
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// SegmentDocument segments every page of doc, assigning document-wide
// ordinals in page order.
func SegmentDocument(doc types.Document) []types.Section {
	var sections []types.Section
	for i, page := range doc.Pages {
		sections = append(sections, SegmentPage(doc.ID, i+1, page, len(sections))...)
	}
	return sections
}

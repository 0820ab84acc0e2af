// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// PopplerExtractor shells out to the poppler command-line tools:
// pdfinfo for the page count, then pdftotext once per page.
type PopplerExtractor struct{}

// Pages returns the plain text of each page of the PDF at path. A page
// whose pdftotext invocation fails yields an empty string; the
// remaining pages are still extracted.
func (PopplerExtractor) Pages(path string) ([]string, error) {
	n, err := pageCount(path)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out, err := exec.Command(
			"pdftotext", "-f", strconv.Itoa(i), "-l", strconv.Itoa(i), path, "-",
		).Output()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, string(out))
	}
	return pages, nil
}

// pageCount runs pdfinfo and parses the "Pages:" line.
func pageCount(path string) (int, error) {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo %s: %w", path, err)
	}
	return parsePageCount(string(out), path)
}

func parsePageCount(pdfinfo, path string) (int, error) {
	for _, line := range strings.Split(pdfinfo, "\n") {
		if !strings.HasPrefix(strings.ToLower(line), "pages") {
			continue
		}
		_, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		return n, nil
	}
	return 0, fmt.Errorf("could not determine page count for %s", path)
}

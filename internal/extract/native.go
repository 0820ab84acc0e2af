// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"
)

// NativeExtractor extracts text in-process with the ledongthuc/pdf
// library. No external tools are required.
type NativeExtractor struct{}

// Pages reads the PDF at path and returns the plain text of each page.
// Pages the library cannot read yield empty strings so page numbers
// stay aligned with the physical order.
func (NativeExtractor) Pages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	n := reader.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("PDF %s has no pages", path)
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

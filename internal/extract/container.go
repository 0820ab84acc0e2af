// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/insight-engine/internal/container"
)

const imagePoppler = "poppler:latest"

// popplerCmd extracts the whole document to stdout with form feeds
// between pages, which pdftotext emits by default.
var popplerCmd = []string{"pdftotext", "-layout", "-", "-"}

// ContainerExtractor pipes PDFs through a poppler container image. It
// depends on a container.Runtime (docker or podman) injected at
// construction time.
type ContainerExtractor struct {
	runtime container.Runtime
}

// NewContainerExtractor creates an extractor that uses the given
// container runtime. It verifies that the poppler image exists locally
// before returning.
func NewContainerExtractor(rt container.Runtime) (*ContainerExtractor, error) {
	if err := rt.ImageExists(imagePoppler); err != nil {
		return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt}, nil
}

// Pages reads the PDF at path, pipes it through the poppler container,
// and splits the resulting text on form-feed page separators.
func (c *ContainerExtractor) Pages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(imagePoppler, popplerCmd, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with poppler: %w", path, err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("poppler produced empty output for %s", path)
	}

	return splitPages(out.String()), nil
}

// splitPages separates whole-document text on form feeds. pdftotext
// terminates the final page with a form feed, so a lone trailing empty
// segment is dropped.
func splitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages
}

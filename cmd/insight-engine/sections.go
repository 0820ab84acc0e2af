// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/extract"
	"github.com/pdiddy/insight-engine/internal/segment"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <document>",
	Short: "Show how a document segments into titled sections",
	Long: `Sections extracts a single document and prints the sections its pages
segment into, without scoring. Useful for checking heading detection on
a new document before running a full analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	docsDir, _ := cmd.Flags().GetString("docs-dir")
	backend, _ := cmd.Flags().GetString("backend")

	ex, err := extract.NewExtractor(types.ExtractConfig{
		Backend: types.ExtractBackend(backend),
		DocsDir: docsDir,
	})
	if err != nil {
		return err
	}

	docs := []types.InputDocument{{Filename: args[0]}}
	extracted, summary := extract.ExtractBatch(ex, docsDir, docs, os.Stderr)
	if summary.Failed > 0 {
		return fmt.Errorf("extracting %s failed", args[0])
	}

	sections := segment.SegmentDocument(extracted[0])
	if len(sections) == 0 {
		fmt.Println("No sections found.")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSectionsOutput(sections, jsonOutput)
}

func formatSectionsOutput(sections []types.Section, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sections)
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-5s  %-50s  %s\n", "Ord", "Page", "Title", "Body")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, s := range sections {
		title := s.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		body := strings.Join(strings.Fields(s.Body), " ")
		if len(body) > 40 {
			body = body[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-5d  %-50s  %s\n", s.Ordinal, s.Page, title, body)
	}

	fmt.Fprintf(os.Stdout, "\n%d sections\n", len(sections))
	return nil
}

func init() {
	sectionsCmd.Flags().String("docs-dir", "docs", "directory containing the PDF documents")
	sectionsCmd.Flags().String("backend", "native", "extraction backend: native, poppler, or container")
	sectionsCmd.Flags().Bool("json", false, "output sections as JSON")

	rootCmd.AddCommand(sectionsCmd)
}

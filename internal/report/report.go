// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a pipeline result as the run's output
// document, in JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/insight-engine/internal/pipeline"
)

// Metadata describes the run: its inputs, the query, and when the
// analysis was produced.
type Metadata struct {
	InputDocuments      []string `json:"input_documents" yaml:"input_documents"`
	Persona             string   `json:"persona" yaml:"persona"`
	JobToBeDone         string   `json:"job_to_be_done" yaml:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp" yaml:"processing_timestamp"`
}

// SectionEntry is one ranked section in the output document.
type SectionEntry struct {
	Document       string `json:"document" yaml:"document"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
	PageNumber     int    `json:"page_number" yaml:"page_number"`
}

// ExcerptEntry is one refined excerpt in the output document.
type ExcerptEntry struct {
	Document    string `json:"document" yaml:"document"`
	RefinedText string `json:"refined_text" yaml:"refined_text"`
	PageNumber  int    `json:"page_number" yaml:"page_number"`
}

// Document is the complete output of one run.
type Document struct {
	Metadata           Metadata       `json:"metadata" yaml:"metadata"`
	ExtractedSections  []SectionEntry `json:"extracted_sections" yaml:"extracted_sections"`
	SubsectionAnalysis []ExcerptEntry `json:"subsection_analysis" yaml:"subsection_analysis"`
}

// Build assembles the output document from a pipeline result. The
// extracted_sections list carries the top-ranked sections in rank
// order; subsection_analysis carries their refined excerpts. The
// timestamp is injected so output is reproducible under test.
func Build(res *pipeline.Result, now time.Time) *Document {
	inputs := make([]string, len(res.Documents))
	for i, doc := range res.Documents {
		inputs[i] = doc.ID
	}

	sections := make([]SectionEntry, len(res.Top))
	for i, sec := range res.Top {
		sections[i] = SectionEntry{
			Document:       sec.DocumentID,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.Rank,
			PageNumber:     sec.Page,
		}
	}

	excerpts := make([]ExcerptEntry, len(res.Excerpts))
	for i, exc := range res.Excerpts {
		excerpts[i] = ExcerptEntry{
			Document:    exc.DocumentID,
			RefinedText: exc.RefinedText,
			PageNumber:  exc.Page,
		}
	}

	return &Document{
		Metadata: Metadata{
			InputDocuments:      inputs,
			Persona:             res.Persona.Role,
			JobToBeDone:         res.Job.Task,
			ProcessingTimestamp: now.UTC().Format(time.RFC3339),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: excerpts,
	}
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML writes the document as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

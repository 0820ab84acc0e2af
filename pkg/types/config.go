// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractBackend identifies the PDF text extraction tool.
type ExtractBackend string

const (
	// BackendNative extracts text in-process with the ledongthuc/pdf
	// library.
	BackendNative ExtractBackend = "native"

	// BackendPoppler shells out to the poppler pdfinfo/pdftotext tools.
	BackendPoppler ExtractBackend = "poppler"

	// BackendContainer pipes PDFs through a poppler container image.
	BackendContainer ExtractBackend = "container"
)

// ExtractConfig holds settings for the text extraction stage.
type ExtractConfig struct {
	// Backend selects the extraction tool: native, poppler, or container.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// DocsDir is the directory containing the input PDF files.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`
}

// AnalyzeConfig holds settings for scoring, ranking, and refinement.
type AnalyzeConfig struct {
	// TopK is the number of top-ranked sections to refine into
	// excerpts (default 5).
	TopK int `json:"top_k" yaml:"top_k"`

	// MaxSentences is the number of best-matching sentences per
	// excerpt (default 2).
	MaxSentences int `json:"max_sentences" yaml:"max_sentences"`

	// MaxExcerptChars caps the refined excerpt length (default 400).
	MaxExcerptChars int `json:"max_excerpt_chars" yaml:"max_excerpt_chars"`

	// AutoPersona enables keyword-based persona/job inference for
	// inputs that omit them. Off by default: a missing persona or task
	// is otherwise an error.
	AutoPersona bool `json:"auto_persona" yaml:"auto_persona"`
}

// StoreConfig holds settings for the run artifact store.
type StoreConfig struct {
	// Dir is the directory holding the SQLite run artifact.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Analyze AnalyzeConfig `json:"analyze" yaml:"analyze"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}

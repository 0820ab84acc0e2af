// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/insight-engine/internal/extract"
	"github.com/pdiddy/insight-engine/internal/pipeline"
	"github.com/pdiddy/insight-engine/internal/report"
	"github.com/pdiddy/insight-engine/internal/store"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [documents...]",
	Short: "Rank document sections by relevance to a persona and task",
	Long: `Analyze runs the full pipeline over a document collection: extraction,
segmentation, relevance scoring against the persona and job to be done,
ranking, and excerpt refinement.

The document set and query come from an input spec file (--input, JSON
or YAML), from flags (--persona, --task, with documents as arguments),
or a mix: flags override spec fields. With --auto-persona, a missing
persona or task is inferred from the corpus instead of rejected.

Results are written as JSON (or YAML with --yaml) to --output or
stdout. With --save the run is also stored as a queryable SQLite
artifact for the query subcommand.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	docs, p, j, err := resolveRunInput(cmd, args)
	if err != nil {
		return err
	}

	docsDir, _ := cmd.Flags().GetString("docs-dir")
	backend, _ := cmd.Flags().GetString("backend")

	ex, err := extract.NewExtractor(types.ExtractConfig{
		Backend: types.ExtractBackend(backend),
		DocsDir: docsDir,
	})
	if err != nil {
		return err
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	maxSentences, _ := cmd.Flags().GetInt("max-sentences")
	maxChars, _ := cmd.Flags().GetInt("max-chars")
	autoPersona, _ := cmd.Flags().GetBool("auto-persona")

	cfg := types.AnalyzeConfig{
		TopK:            topK,
		MaxSentences:    maxSentences,
		MaxExcerptChars: maxChars,
		AutoPersona:     autoPersona,
	}

	res, err := pipeline.Run(ex, docsDir, docs, p, j, cfg, os.Stderr)
	if err != nil {
		return err
	}

	doc := report.Build(res, time.Now())
	if err := writeReport(cmd, doc); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(cmd, res); err != nil {
			return err
		}
	}

	if res.Extraction.Failed > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d document(s) failed extraction\n", res.Extraction.Failed)
	}
	return nil
}

// resolveRunInput merges the input spec file with flag overrides.
// Documents given as arguments extend the input file's document list.
func resolveRunInput(cmd *cobra.Command, args []string) ([]types.InputDocument, types.Persona, types.Job, error) {
	var (
		docs []types.InputDocument
		p    types.Persona
		j    types.Job
	)

	if inputPath, _ := cmd.Flags().GetString("input"); inputPath != "" {
		input, err := pipeline.LoadInput(inputPath)
		if err != nil {
			return nil, p, j, err
		}
		docs = input.Documents
		p = input.Persona
		j = input.Job
	}

	for _, arg := range args {
		docs = append(docs, types.InputDocument{Filename: arg})
	}

	if role, _ := cmd.Flags().GetString("persona"); role != "" {
		p.Role = role
	}
	if desc, _ := cmd.Flags().GetString("persona-description"); desc != "" {
		p.Description = desc
	}
	if task, _ := cmd.Flags().GetString("task"); task != "" {
		j.Task = task
	}

	if len(docs) == 0 {
		return nil, p, j, fmt.Errorf("no documents: provide --input or document arguments")
	}
	return docs, p, j, nil
}

func writeReport(cmd *cobra.Command, doc *report.Document) error {
	var w io.Writer = os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return report.WriteYAML(w, doc)
	}
	return report.WriteJSON(w, doc)
}

func saveRun(cmd *cobra.Command, res *pipeline.Result) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	docIDs := make([]string, len(res.Documents))
	for i, doc := range res.Documents {
		docIDs[i] = doc.ID
	}
	meta := store.RunMeta{
		Persona:   res.Persona,
		Job:       res.Job,
		Documents: docIDs,
		CreatedAt: time.Now(),
	}
	return s.SaveRun(context.Background(), meta, res.Ranked, res.Excerpts)
}

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	storeDir, _ := cmd.Flags().GetString("store-dir")
	if storeDir == "" {
		storeDir = viper.GetString("store_dir")
	}
	if storeDir == "" {
		storeDir = "output"
	}
	return types.StoreConfig{Dir: storeDir}
}

func init() {
	analyzeCmd.Flags().String("input", "", "input spec file (JSON or YAML) naming documents, persona, and task")
	analyzeCmd.Flags().String("docs-dir", "docs", "directory containing the PDF documents")
	analyzeCmd.Flags().String("persona", "", "persona role, e.g. 'Travel Planner'")
	analyzeCmd.Flags().String("persona-description", "", "longer persona description used for matching")
	analyzeCmd.Flags().String("task", "", "the job to be done")
	analyzeCmd.Flags().String("backend", "native", "extraction backend: native, poppler, or container")
	analyzeCmd.Flags().Int("top-k", 0, "number of top sections to refine (0 = default)")
	analyzeCmd.Flags().Int("max-sentences", 0, "sentences per refined excerpt (0 = default)")
	analyzeCmd.Flags().Int("max-chars", 0, "character cap per refined excerpt (0 = default)")
	analyzeCmd.Flags().Bool("auto-persona", false, "infer missing persona/task from the corpus instead of failing")
	analyzeCmd.Flags().String("output", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().Bool("yaml", false, "write the report as YAML instead of JSON")
	analyzeCmd.Flags().Bool("save", false, "also save the run to the SQLite store")
	analyzeCmd.Flags().String("store-dir", "", "directory for the SQLite store (default: output)")

	rootCmd.AddCommand(analyzeCmd)
}

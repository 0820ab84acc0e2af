// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/insight-engine/internal/store"
	"github.com/pdiddy/insight-engine/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [search terms]",
	Short: "Search a saved run's ranked sections",
	Long: `Query searches the SQLite artifact written by analyze --save. It
supports FTS5 full-text search over section titles and bodies, plus
structured filters by document and rank cutoff.

With --excerpts it prints the saved refined excerpts instead.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	if showExcerpts, _ := cmd.Flags().GetBool("excerpts"); showExcerpts {
		excerpts, err := s.Excerpts(ctx)
		if err != nil {
			return err
		}
		return formatExcerptsOutput(excerpts)
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --document, or --max-rank")
	}

	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) store.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	documentID, _ := cmd.Flags().GetString("document")
	maxRank, _ := cmd.Flags().GetInt("max-rank")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Query:      queryText,
		DocumentID: documentID,
		MaxRank:    maxRank,
		MaxResults: limit,
	}
}

func formatQueryOutput(results []types.ScoredSection, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-7s  %-20s  %-40s  %s\n",
		"Rank", "Score", "Document", "Title", "Page")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 85))

	for _, r := range results {
		doc := r.DocumentID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		title := r.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-7.4f  %-20s  %-40s  %d\n",
			r.Rank, r.Score, doc, title, r.Page)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func formatExcerptsOutput(excerpts []types.Excerpt) error {
	if len(excerpts) == 0 {
		fmt.Println("No excerpts stored.")
		return nil
	}
	for _, e := range excerpts {
		fmt.Fprintf(os.Stdout, "%d. %s (%s, page %d)\n%s\n\n",
			e.Rank, e.SectionTitle, e.DocumentID, e.Page, e.RefinedText)
	}
	return nil
}

func init() {
	queryCmd.Flags().String("query", "", "full-text search query")
	queryCmd.Flags().String("document", "", "filter by source document")
	queryCmd.Flags().Int("max-rank", 0, "keep only sections ranked at or above this cutoff")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("excerpts", false, "print saved excerpts instead of searching sections")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("store-dir", "", "directory for the SQLite store (default: output)")

	rootCmd.AddCommand(queryCmd)
}

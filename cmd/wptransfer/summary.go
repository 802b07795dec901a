package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fwojciec/wptransfer"
	"github.com/fwojciec/wptransfer/transfer"
	"github.com/jedib0t/go-pretty/v6/table"
)

// summaryTitleLength bounds post titles in the per-post listing.
const summaryTitleLength = 50

// printSummary writes the end-of-run report: totals, failures, a category
// histogram, and one line per rendered post.
func printSummary(w io.Writer, result *transfer.Result, manifestPath string) {
	m := result.Manifest

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total posts: %d\n", m.Total)
	fmt.Fprintf(w, "Successful:  %d (%s)\n", len(m.Successful), transfer.FormatBytes(result.Bytes))
	fmt.Fprintf(w, "Failed:      %d\n", len(m.Failed))

	if len(m.Failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failed posts:")
		for _, f := range m.Failed {
			fmt.Fprintf(w, "  - %s: %s\n", f.Slug, f.Error)
		}
	}

	if counts := result.Categories(); len(counts) > 0 {
		fmt.Fprintln(w)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Category", "Posts"})
		for _, c := range sortedCategories(counts) {
			t.AppendRow(table.Row{c, counts[c]})
		}
		t.AppendFooter(table.Row{"Total", len(m.Successful)})
		t.Render()
	}

	if len(m.Successful) > 0 {
		fmt.Fprintln(w)
		for _, r := range result.Results {
			if r.Success() {
				fmt.Fprintf(w, "  • %s... → %s\n", prefix(r.Title, summaryTitleLength), r.Category)
			}
		}
	}

	fmt.Fprintln(w)
	if result.RunID != "" {
		fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	}
	fmt.Fprintf(w, "Manifest: %s\n", manifestPath)
}

// sortedCategories orders categories by descending count, then by name.
func sortedCategories(counts map[wptransfer.Category]int) []wptransfer.Category {
	cats := make([]wptransfer.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

// prefix returns at most n runes of s.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// import_preview dry-runs a provider spreadsheet through the import pipeline
// and prints what would land in the directory, without touching any store.
//
// Usage: import_preview providers.csv
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/marcus/aba-directory/internal/directory"
	"github.com/marcus/aba-directory/internal/ingest"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: import_preview <providers.csv>")
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	rows, err := ingest.ParseCSV(f)
	if err != nil {
		log.Fatal(err)
	}

	providers, stats := ingest.FromRows(rows)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Name", "Raw County", "Canonical", "Rank", "Rating", "Insurance"})

	for _, p := range providers {
		canonical := "-"
		if c, ok := directory.Normalize(p.County); ok {
			canonical = c
		}

		rank := "-"
		if p.HasRank() {
			rank = fmt.Sprintf("%d", *p.Rank)
		}
		rating := "-"
		if p.HasRating() {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}

		t.AppendRow(table.Row{p.ID, p.Name, p.County, canonical, rank, rating, strings.Join(p.InsuranceAccepted, ", ")})
	}
	t.Render()

	fmt.Printf("\nrows seen: %d  imported: %d  skipped: %d  ids synthesized: %d\n",
		stats.RowsSeen, stats.RowsImported, stats.RowsSkipped, stats.IDsSynthesized)
}

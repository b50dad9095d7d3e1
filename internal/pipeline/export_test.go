package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
)

func TestBuildInventoryRows(t *testing.T) {
	records := []*internal.PlantRecord{
		{
			Name:           "Begonia Escargot",
			ScientificName: "Begonia rex 'Escargot'",
			FileName:       "begonia-escargot.json",
			Images:         []string{"a.jpg", "b.jpg"},
			Description:    "Spiral leaves.",
			Taxonomy:       &internal.Taxonomy{Family: util.StringPtr("Begoniaceae")},
			VariantInfo:    &internal.VariantInfo{IsVariant: true, BaseSpecies: "begonia rex"},
		},
	}

	rows := BuildInventoryRows(records)
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	row := rows[0]
	if row.CanonicalKey != "begonia rex" {
		t.Fatalf("canonical key %q", row.CanonicalKey)
	}
	if row.Family != "Begoniaceae" || row.ImageCount != 2 || !row.IsVariant || row.BaseSpecies != "begonia rex" {
		t.Fatalf("row %+v", row)
	}
}

func TestExportInventoryXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "inventory.xlsx")
	rows := []internal.InventoryRow{
		{FileName: "pilea.json", Name: "Pilea", ScientificName: "Pilea peperomioides", CanonicalKey: "pilea peperomioides", ImageCount: 1},
	}

	if err := ExportInventoryXLSX(rows, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestExportReviewXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), "review.xlsx")
	pairs := []internal.ReviewPair{
		{Status: internal.ReviewLikely, Score: 0.93, LeftFile: "a.json", RightFile: "b.json"},
	}

	if err := ExportReviewXLSX(pairs, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

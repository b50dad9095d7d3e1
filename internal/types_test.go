package internal

import (
	"encoding/json"
	"testing"
)

// Source documents carry category both as a bare string and as an array;
// both forms must load.
func TestTagListAcceptsStringAndArray(t *testing.T) {
	var record PlantRecord
	if err := json.Unmarshal([]byte(`{"name":"X","category":"succulent"}`), &record); err != nil {
		t.Fatal(err)
	}
	if len(record.Category) != 1 || record.Category[0] != "succulent" {
		t.Fatalf("category %v", record.Category)
	}

	if err := json.Unmarshal([]byte(`{"name":"X","category":["succulent"," aquarium ",""]}`), &record); err != nil {
		t.Fatal(err)
	}
	if len(record.Category) != 2 || record.Category[1] != "aquarium" {
		t.Fatalf("category %v", record.Category)
	}

	if !record.Category.Contains("Succulent") {
		t.Fatal("Contains should be case-insensitive")
	}
}

func TestPopulatedRanksNilSafe(t *testing.T) {
	var taxonomy *Taxonomy
	if got := taxonomy.PopulatedRanks(); got != 0 {
		t.Fatalf("nil taxonomy ranks %d", got)
	}

	family := "Araceae"
	blank := "  "
	filled := &Taxonomy{Family: &family, Genus: &blank}
	if got := filled.PopulatedRanks(); got != 1 {
		t.Fatalf("ranks %d", got)
	}
}

func TestTags(t *testing.T) {
	record := PlantRecord{Category: TagList{"succulent"}, Type: TagList{"terrarium"}}
	tags := record.Tags()
	if len(tags) != 2 || tags[0] != "succulent" || tags[1] != "terrarium" {
		t.Fatalf("tags %v", tags)
	}
}

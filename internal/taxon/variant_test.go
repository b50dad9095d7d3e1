package taxon

import (
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
)

func TestHasVariantMarker(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "quoted cultivar", input: "Monstera deliciosa 'Thai Constellation'", want: true},
		{name: "variety marker", input: "Anubias barteri var. nana", want: true},
		{name: "cv marker", input: "Ficus pumila cv. Quercifolia", want: true},
		{name: "variegated", input: "Variegated String of Hearts", want: true},
		{name: "plain binomial", input: "Monstera deliciosa", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasVariantMarker(tc.input); got != tc.want {
				t.Fatalf("HasVariantMarker(%q) = %v want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestVariantName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Begonia rex 'Escargot'", want: "Escargot"},
		{input: "Anubias barteri var. nana", want: "nana"},
		{input: "Variegated Monstera", want: "Variegated"},
		{input: "Monstera deliciosa", want: ""},
	}

	for _, tc := range cases {
		if got := VariantName(tc.input); got != tc.want {
			t.Fatalf("VariantName(%q) = %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestBuildVariantInfo(t *testing.T) {
	record := &internal.PlantRecord{
		Name:           "Begonia Escargot",
		ScientificName: "Begonia rex 'Escargot'",
	}
	info := BuildVariantInfo(record, "begonia rex")

	if !info.IsVariant {
		t.Fatal("expected IsVariant")
	}
	if info.BaseSpecies != "begonia rex" {
		t.Fatalf("base species %q", info.BaseSpecies)
	}
	if info.VariantName != "Escargot" {
		t.Fatalf("variant name %q", info.VariantName)
	}
	if info.VariantScientificName != "Begonia rex 'Escargot'" {
		t.Fatalf("variant scientific name %q", info.VariantScientificName)
	}
}

package pipeline

import (
	"strings"
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

func TestClassifyTagsBeatFreeText(t *testing.T) {
	c := NewClassifier(vocab.Default())
	record := &internal.PlantRecord{
		Name:        "Java Fern",
		Category:    internal.TagList{"Ferns"},
		Description: "Often sold next to mosses and flowering plants.",
	}

	c.Classify(record)

	if record.PlantType == nil || *record.PlantType != "fern" {
		t.Fatalf("plantType %v", record.PlantType)
	}
}

func TestClassifyFamilyOverrideBeatsFreeText(t *testing.T) {
	c := NewClassifier(vocab.Default())
	record := &internal.PlantRecord{
		Name:        "Mystery Aroid",
		Taxonomy:    &internal.Taxonomy{Family: util.StringPtr("Araceae")},
		Description: "Completely pet safe according to the seller.",
	}

	c.Classify(record)

	// Araceae are calcium-oxalate plants regardless of marketing copy; the
	// tag layer is empty, so family wins before the free-text scan.
	if record.Hazard == nil || *record.Hazard != "toxic-if-ingested" {
		t.Fatalf("hazard %v", record.Hazard)
	}
	if record.PlantType == nil || *record.PlantType != "flowering-plant" {
		t.Fatalf("plantType %v", record.PlantType)
	}
}

func TestClassifyKeepsValidExistingValue(t *testing.T) {
	c := NewClassifier(vocab.Default())
	record := &internal.PlantRecord{
		Name:      "Willow Moss",
		PlantType: util.StringPtr("moss"),
		Category:  internal.TagList{"Ferns"},
	}

	c.Classify(record)

	if *record.PlantType != "moss" {
		t.Fatalf("valid value overwritten: %q", *record.PlantType)
	}
}

func TestClassifyClearsInvalidValueWithoutSignal(t *testing.T) {
	c := NewClassifier(vocab.Default())
	record := &internal.PlantRecord{
		Name:      "Zamioculcas zamiifolia",
		PlantType: util.StringPtr("houseplant"),
	}

	c.Classify(record)

	if record.PlantType != nil {
		t.Fatalf("invalid value survived: %q", *record.PlantType)
	}
}

func TestClassifyCO2Fallback(t *testing.T) {
	c := NewClassifier(vocab.Default())

	terrestrial := &internal.PlantRecord{Name: "Zamioculcas zamiifolia"}
	c.Classify(terrestrial)
	if terrestrial.CO2 == nil || *terrestrial.CO2 != "not-required" {
		t.Fatalf("terrestrial co2 %v", terrestrial.CO2)
	}

	aquatic := &internal.PlantRecord{
		Name:        "Rotala",
		Description: "Grown fully submerged in the aquarium.",
	}
	c.Classify(aquatic)
	if aquatic.GrowthHabit == nil || *aquatic.GrowthHabit != "fully-aquatic" {
		t.Fatalf("growthHabit %v", aquatic.GrowthHabit)
	}
	if aquatic.CO2 == nil || *aquatic.CO2 != "beneficial" {
		t.Fatalf("aquatic co2 %v", aquatic.CO2)
	}
}

func TestClassifyPropagationIsTotal(t *testing.T) {
	c := NewClassifier(vocab.Default())

	fern := &internal.PlantRecord{Name: "Asplenium", Category: internal.TagList{"Ferns"}}
	c.Classify(fern)
	if fern.Propagation == nil || *fern.Propagation != "Spores, Division" {
		t.Fatalf("fern propagation %v", fern.Propagation)
	}

	unknown := &internal.PlantRecord{Name: "Zamioculcas zamiifolia"}
	c.Classify(unknown)
	if unknown.Propagation == nil || *unknown.Propagation != "Stem cuttings, Division" {
		t.Fatalf("fallback propagation %v", unknown.Propagation)
	}

	preset := &internal.PlantRecord{Name: "Zamioculcas zamiifolia", Propagation: util.StringPtr("Leaf cuttings, Division")}
	c.Classify(preset)
	if *preset.Propagation != "Leaf cuttings, Division" {
		t.Fatalf("valid propagation overwritten: %q", *preset.Propagation)
	}

	bogus := &internal.PlantRecord{Name: "Zamioculcas zamiifolia", Propagation: util.StringPtr("ask the seller")}
	c.Classify(bogus)
	if *bogus.Propagation != "Stem cuttings, Division" {
		t.Fatalf("invalid propagation kept: %q", *bogus.Propagation)
	}
}

// Whatever goes in, every classified value must come out of the closed
// vocabularies or stay null.
func TestClassifyOutputStaysInVocabulary(t *testing.T) {
	v := vocab.Default()
	c := NewClassifier(v)

	records := []*internal.PlantRecord{
		{Name: "Phalaenopsis", Taxonomy: &internal.Taxonomy{Family: util.StringPtr("Orchidaceae")}, Category: internal.TagList{"Orchids"}},
		{Name: "Marimo Moss Ball", Description: "A ball of algae, not a moss."},
		{Name: "String of Hearts", Description: "Trailing succulent, very rare variegated form."},
		{Name: "Unlabelled cutting", PlantType: util.StringPtr("???"), Rarity: util.StringPtr("mythic")},
	}

	checks := map[string]func(*internal.PlantRecord) *string{
		vocab.FieldPlantType:       func(r *internal.PlantRecord) *string { return r.PlantType },
		vocab.FieldGrowthPattern:   func(r *internal.PlantRecord) *string { return r.GrowthPattern },
		vocab.FieldGrowthHabit:     func(r *internal.PlantRecord) *string { return r.GrowthHabit },
		vocab.FieldHazard:          func(r *internal.PlantRecord) *string { return r.Hazard },
		vocab.FieldRarity:          func(r *internal.PlantRecord) *string { return r.Rarity },
		vocab.FieldFloweringPeriod: func(r *internal.PlantRecord) *string { return r.FloweringPeriod },
		vocab.FieldCO2:             func(r *internal.PlantRecord) *string { return r.CO2 },
	}

	for _, record := range records {
		c.Classify(record)
		for field, get := range checks {
			if value := get(record); value != nil && !v.IsValid(field, *value) {
				t.Errorf("%s: %s = %q not in vocabulary", record.Name, field, *value)
			}
		}
		if record.Propagation == nil {
			t.Errorf("%s: propagation is null", record.Name)
			continue
		}
		for _, part := range strings.Split(*record.Propagation, ",") {
			part = strings.TrimSpace(part)
			found := false
			for _, method := range v.Propagations {
				if method == part {
					found = true
				}
			}
			if !found {
				t.Errorf("%s: propagation method %q not in vocabulary", record.Name, part)
			}
		}
	}

	marimo := records[1]
	if marimo.PlantType == nil || *marimo.PlantType != "algae" {
		t.Fatalf("marimo plantType %v", marimo.PlantType)
	}
}

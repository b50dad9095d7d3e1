package pipeline

import (
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/util"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

// IsNonPlantProduct reports whether a record name describes shop inventory
// (kits, tools, substrates, gift cards) rather than a plant. Patterns match
// whole words; the exception list protects real plants whose trade names
// collide with product words.
func IsNonPlantProduct(name string, v vocab.Vocabulary) bool {
	folded := util.Fold(name)
	if folded == "" {
		return false
	}

	for _, exception := range v.NonPlantExceptions {
		if strings.Contains(folded, util.Fold(exception)) {
			return false
		}
	}

	padded := " " + folded + " "
	for _, pattern := range v.NonPlantPatterns {
		p := util.Fold(pattern)
		if p == "" {
			continue
		}
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

// FilterNonPlants splits a snapshot into plants (kept, in load order) and
// non-plant products (dropped from the corpus before grouping).
func FilterNonPlants(records []*internal.PlantRecord, v vocab.Vocabulary) (plants, nonPlants []*internal.PlantRecord) {
	plants = make([]*internal.PlantRecord, 0, len(records))
	for _, record := range records {
		if IsNonPlantProduct(record.Name, v) {
			nonPlants = append(nonPlants, record)
			continue
		}
		plants = append(plants, record)
	}
	return plants, nonPlants
}

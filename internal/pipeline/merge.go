package pipeline

import (
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/vocab"
)

// Merge folds one merged-away duplicate into the survivor. Every field rule
// is a deterministic keep-if-strictly-better comparison, so folding losers
// in any order produces the same survivor. Fields not listed here stay
// untouched; the loser is discarded by the caller afterwards.
func Merge(survivor, loser *internal.PlantRecord, v vocab.Vocabulary) {
	if len(loser.Description) > len(survivor.Description) {
		survivor.Description = loser.Description
	}

	// Longer scientific name tends to carry the infraspecific epithet.
	if len(strings.TrimSpace(loser.ScientificName)) > len(strings.TrimSpace(survivor.ScientificName)) {
		survivor.ScientificName = loser.ScientificName
	}

	survivor.Images = unionImages(survivor.Images, loser.Images)

	if loser.Taxonomy.PopulatedRanks() > survivor.Taxonomy.PopulatedRanks() {
		survivor.Taxonomy = loser.Taxonomy
	}

	survivor.LightRequirements = mergeCareField(survivor.LightRequirements, loser.LightRequirements, v)
	survivor.Humidity = mergeCareField(survivor.Humidity, loser.Humidity, v)
	survivor.Temperature = mergeCareField(survivor.Temperature, loser.Temperature, v)
}

// unionImages keeps the survivor's ordering (its first image stays the
// display image) and appends the loser's unseen paths in their original
// order.
func unionImages(survivor, loser []string) []string {
	seen := make(map[string]struct{}, len(survivor))
	out := make([]string, 0, len(survivor)+len(loser))
	for _, path := range survivor {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, path := range loser {
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}

// mergeCareField keeps the survivor's value unless it is a placeholder and
// the loser has a real one.
func mergeCareField(survivor, loser *string, v vocab.Vocabulary) *string {
	if !v.IsPlaceholder(survivor) {
		return survivor
	}
	if !v.IsPlaceholder(loser) {
		return loser
	}
	return survivor
}

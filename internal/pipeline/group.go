package pipeline

import (
	"log/slog"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/library"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/taxon"
)

// Group is one identity bucket after duplicate resolution. Survivor is nil
// for buckets that contain only variants.
type Group struct {
	Key      string
	Survivor *internal.PlantRecord
	Losers   []*internal.PlantRecord
	Variants []*internal.PlantRecord
}

// GroupResult carries every grouping decision for one snapshot. Consumed
// marks loser files so no later pass can resurrect a merged record within
// the same run.
type GroupResult struct {
	Groups   []Group
	Kept     []*internal.PlantRecord
	Merged   int
	Variants int
	Consumed map[string]struct{}
}

// GroupRecords buckets records by canonical key and resolves each bucket:
// true duplicates collapse into the highest-scoring survivor (first-seen
// wins ties), variants are stamped with lineage and kept as siblings, and
// records without identity stay untouched singletons.
func GroupRecords(records []*internal.PlantRecord) *GroupResult {
	result := &GroupResult{Consumed: map[string]struct{}{}}

	buckets := map[string][]*internal.PlantRecord{}
	keyOrder := make([]string, 0, len(records))
	for _, record := range records {
		key := library.KeyFor(record)
		if _, seen := buckets[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		buckets[key] = append(buckets[key], record)
	}

	for _, key := range keyOrder {
		members := buckets[key]

		// No usable identity: nothing safe to merge on.
		if key == "" {
			for _, record := range members {
				result.Kept = append(result.Kept, record)
				result.Groups = append(result.Groups, Group{Key: key, Survivor: record})
			}
			continue
		}

		var variants, nonVariants []*internal.PlantRecord
		for _, record := range members {
			if taxon.IsVariant(record) {
				variants = append(variants, record)
			} else {
				nonVariants = append(nonVariants, record)
			}
		}

		group := Group{Key: key}

		for _, variant := range variants {
			variant.VariantInfo = taxon.BuildVariantInfo(variant, key)
			group.Variants = append(group.Variants, variant)
			result.Kept = append(result.Kept, variant)
			result.Variants++
		}

		if len(nonVariants) == 1 {
			group.Survivor = nonVariants[0]
			result.Kept = append(result.Kept, nonVariants[0])
		} else if len(nonVariants) > 1 {
			survivor := pickSurvivor(nonVariants)
			group.Survivor = survivor
			result.Kept = append(result.Kept, survivor)
			for _, record := range nonVariants {
				if record == survivor {
					continue
				}
				group.Losers = append(group.Losers, record)
				result.Consumed[record.FileName] = struct{}{}
				result.Merged++
			}
		}

		result.Groups = append(result.Groups, group)
	}

	return result
}

// pickSurvivor returns the highest-scoring member; equal scores resolve to
// the earliest-loaded record. The tie-break scorer is consulted only as a
// diagnostic: when it ranks a different record on top, that is logged and
// the primary score still decides.
func pickSurvivor(candidates []*internal.PlantRecord) *internal.PlantRecord {
	survivor := candidates[0]
	best := Score(survivor)
	for _, candidate := range candidates[1:] {
		if score := Score(candidate); score > best {
			survivor = candidate
			best = score
		}
	}

	alt := candidates[0]
	altBest := TieBreakScore(alt)
	for _, candidate := range candidates[1:] {
		if score := TieBreakScore(candidate); score > altBest {
			alt = candidate
			altBest = score
		}
	}
	if alt != survivor {
		slog.Debug("duplicate scorers disagree, primary score decides",
			"survivor", survivor.FileName, "secondaryPick", alt.FileName)
	}

	return survivor
}

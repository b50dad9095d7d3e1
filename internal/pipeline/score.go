// Package pipeline implements the record reconciliation passes: scoring,
// duplicate grouping, merging, attribute classification, the near-duplicate
// review report, and the driver that runs them over a corpus snapshot.
package pipeline

import (
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
)

// Score rates a record's completeness. Description length is capped so one
// scraped essay cannot outweigh everything else; a scientific name is worth
// a flat bonus because it anchors the record's identity.
func Score(record *internal.PlantRecord) int {
	score := len(record.Description)
	if score > 1000 {
		score = 1000
	}
	score += 10 * len(record.Images)
	if strings.TrimSpace(record.ScientificName) != "" {
		score += 50
	}
	return score
}

// TieBreakScore is a secondary completeness measure consulted only between
// records already confirmed to be duplicates of each other. When it
// disagrees with Score, Score wins.
func TieBreakScore(record *internal.PlantRecord) int {
	return len(record.Description) + 3*len(record.ScientificName) + 10*len(record.Images)
}

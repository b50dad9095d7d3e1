package taxon

import (
	"regexp"
	"strings"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
)

var (
	reQuotedName = regexp.MustCompile(`['‘’"“”]([^'‘’"“”]+)['‘’"“”]`)
	reRankMarker = regexp.MustCompile(`(?i)\b(?:var\.?|cv\.?|f\.|form)\s+(\S[^,;]*)`)
)

// HasVariantMarker reports whether a name carries a cultivar/variety
// indicator: a quoted cultivar, an infraspecific rank marker with an epithet,
// or a variegation word.
func HasVariantMarker(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if reQuotedName.MatchString(name) {
		return true
	}
	if reRankMarker.MatchString(name) {
		return true
	}
	return reVariegated.MatchString(name)
}

// IsVariant checks both the display name and the scientific name.
func IsVariant(record *internal.PlantRecord) bool {
	return HasVariantMarker(record.Name) || HasVariantMarker(record.ScientificName)
}

// VariantName extracts the distinguishing cultivar/variety token, preferring
// the quoted cultivar, then the rank-marker epithet, then the variegation
// word itself.
func VariantName(name string) string {
	if m := reQuotedName.FindStringSubmatch(name); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := reRankMarker.FindStringSubmatch(name); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := reVariegated.FindString(name); m != "" {
		return capitalize(strings.ToLower(m))
	}
	return ""
}

// BuildVariantInfo stamps a record with its lineage. baseKey is the
// canonical key shared with the base species.
func BuildVariantInfo(record *internal.PlantRecord, baseKey string) *internal.VariantInfo {
	variantName := VariantName(record.ScientificName)
	if variantName == "" {
		variantName = VariantName(record.Name)
	}
	return &internal.VariantInfo{
		IsVariant:             true,
		BaseSpecies:           baseKey,
		VariantName:           variantName,
		VariantScientificName: strings.TrimSpace(record.ScientificName),
	}
}
